package utils

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/avialink/crewcert/models"
	"gorm.io/gorm"
)

const certificateSuffixLength = 6
const digitBytes = "0123456789"

// GenerateUniqueCertificateNumber produces a CRT-<year>-<digits> number
// that does not collide with any existing certificate.
func GenerateUniqueCertificateNumber(tx *gorm.DB) (string, error) {
	seededRand := rand.New(rand.NewSource(time.Now().UnixNano()))

	for {
		b := make([]byte, certificateSuffixLength)
		for i := range b {
			b[i] = digitBytes[seededRand.Intn(len(digitBytes))]
		}
		number := fmt.Sprintf("CRT-%d-%s", time.Now().Year(), string(b))

		var cert models.Certificate
		err := tx.Where("certificate_number = ?", number).First(&cert).Error
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return number, nil
			}
			return "", err
		}
	}
}
