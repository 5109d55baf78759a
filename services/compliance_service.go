package services

import (
	"errors"

	"github.com/avialink/crewcert/database"
	"github.com/avialink/crewcert/expiry"
	"github.com/avialink/crewcert/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrStaffNotFound = errors.New("staff member not found")

// CompletenessReport is what the employee form and the issuance gate
// consume. Applicable is false when the employee holds no working
// position, which is a different outcome from "all completed".
type CompletenessReport struct {
	Applicable   bool                    `json:"applicable"`
	AllCompleted bool                    `json:"all_completed"`
	MissingCount int                     `json:"missing_count"`
	Missing      []expiry.RequirementGap `json:"missing"`
}

// CheckRequiredTrainingsCompleted fetches the mandatory training set of
// the employee's position and their valid certificates, then runs the
// completeness check. Mirrors the hosted procedure of the same name.
func CheckRequiredTrainingsCompleted(staffID uuid.UUID) (CompletenessReport, error) {
	var staff models.Staff
	if err := database.DB.First(&staff, "id = ?", staffID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CompletenessReport{}, ErrStaffNotFound
		}
		return CompletenessReport{}, err
	}

	if staff.PositionID == nil {
		return CompletenessReport{Applicable: false, Missing: []expiry.RequirementGap{}}, nil
	}

	var requirements []models.PositionTraining
	err := database.DB.Preload("Training").
		Where("position_id = ?", *staff.PositionID).
		Find(&requirements).Error
	if err != nil {
		return CompletenessReport{}, err
	}

	required := make([]expiry.RequiredTraining, 0, len(requirements))
	for _, req := range requirements {
		required = append(required, expiry.RequiredTraining{
			TrainingMasterID: req.TrainingMasterID,
			Code:             req.Training.Code,
			Title:            req.Training.Title,
			Mandatory:        req.IsMandatory,
		})
	}

	var certs []models.Certificate
	err = database.DB.
		Where("staff_id = ? AND status = ?", staffID, models.CertStatusValid).
		Find(&certs).Error
	if err != nil {
		return CompletenessReport{}, err
	}

	result := expiry.CheckCompleteness(required, certs)
	return CompletenessReport{
		Applicable:   true,
		AllCompleted: result.AllCompleted,
		MissingCount: result.MissingCount,
		Missing:      result.Missing,
	}, nil
}
