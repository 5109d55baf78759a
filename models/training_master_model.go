package models

import (
	"time"

	"github.com/google/uuid"
)

// GeneralCertCode is the fallback training catalog entry used when a
// certificate is issued without an explicit training reference.
const GeneralCertCode = "GENERAL-CERT"

type TrainingMaster struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Code           string    `gorm:"size:50;not null;unique" json:"code"`
	Title          string    `gorm:"size:255;not null" json:"title"`
	Category       *string   `gorm:"size:100" json:"category"`
	ValidityMonths *int      `json:"validity_months"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
