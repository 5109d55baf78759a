package expiry

import (
	"github.com/avialink/crewcert/models"
	"github.com/google/uuid"
)

// RequiredTraining is one entry of a position's requirement set,
// resolved to its catalog code and title.
type RequiredTraining struct {
	TrainingMasterID uuid.UUID `json:"training_master_id"`
	Code             string    `json:"code"`
	Title            string    `json:"title"`
	Mandatory        bool      `json:"mandatory"`
}

// RequirementGap is a mandatory training the employee holds no valid
// certificate for.
type RequirementGap struct {
	TrainingMasterID uuid.UUID `json:"training_master_id"`
	Code             string    `json:"code"`
	Title            string    `json:"title"`
	Mandatory        bool      `json:"mandatory"`
}

type Completeness struct {
	AllCompleted bool             `json:"all_completed"`
	MissingCount int              `json:"missing_count"`
	Missing      []RequirementGap `json:"missing"`
}

// CheckCompleteness reports which mandatory trainings of the required
// set are not covered by a valid certificate. A requirement is
// satisfied by any certificate with status valid that references its
// training id; the expiry date is deliberately not consulted here —
// requirement satisfaction follows the administrative status field
// only, matching the hosted check_required_trainings_completed
// procedure. Recommended (non-mandatory) entries never count as gaps.
func CheckCompleteness(required []RequiredTraining, certs []models.Certificate) Completeness {
	held := make(map[uuid.UUID]bool)
	for _, cert := range certs {
		if cert.Status != models.CertStatusValid || cert.TrainingMasterID == nil {
			continue
		}
		held[*cert.TrainingMasterID] = true
	}

	result := Completeness{Missing: []RequirementGap{}}
	for _, req := range required {
		if !req.Mandatory {
			continue
		}
		if held[req.TrainingMasterID] {
			continue
		}
		result.Missing = append(result.Missing, RequirementGap{
			TrainingMasterID: req.TrainingMasterID,
			Code:             req.Code,
			Title:            req.Title,
			Mandatory:        req.Mandatory,
		})
	}
	result.MissingCount = len(result.Missing)
	result.AllCompleted = result.MissingCount == 0
	return result
}
