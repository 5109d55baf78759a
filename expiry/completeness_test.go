package expiry

import (
	"testing"
	"time"

	"github.com/avialink/crewcert/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func trainingID() uuid.UUID { return uuid.New() }

func validCertFor(id uuid.UUID) models.Certificate {
	return models.Certificate{Status: models.CertStatusValid, TrainingMasterID: &id}
}

func TestCheckCompletenessSuperset(t *testing.T) {
	a, b, extra := trainingID(), trainingID(), trainingID()
	required := []RequiredTraining{
		{TrainingMasterID: a, Code: "DGR", Title: "Dangerous Goods", Mandatory: true},
		{TrainingMasterID: b, Code: "SEC", Title: "Security Awareness", Mandatory: true},
	}
	certs := []models.Certificate{validCertFor(a), validCertFor(b), validCertFor(extra)}

	result := CheckCompleteness(required, certs)
	assert.True(t, result.AllCompleted)
	assert.Empty(t, result.Missing)
	assert.Equal(t, 0, result.MissingCount)
}

func TestCheckCompletenessNoCertificates(t *testing.T) {
	required := []RequiredTraining{
		{TrainingMasterID: trainingID(), Code: "DGR", Title: "Dangerous Goods", Mandatory: true},
		{TrainingMasterID: trainingID(), Code: "SEC", Title: "Security Awareness", Mandatory: true},
		{TrainingMasterID: trainingID(), Code: "FAM", Title: "Ramp Familiarization", Mandatory: true},
	}

	result := CheckCompleteness(required, nil)
	assert.False(t, result.AllCompleted)
	assert.Equal(t, 3, result.MissingCount)
}

func TestCheckCompletenessRecommendedNotCounted(t *testing.T) {
	a, b, c := trainingID(), trainingID(), trainingID()
	required := []RequiredTraining{
		{TrainingMasterID: a, Code: "A", Title: "Training A", Mandatory: true},
		{TrainingMasterID: b, Code: "B", Title: "Training B", Mandatory: true},
		{TrainingMasterID: c, Code: "C", Title: "Training C", Mandatory: false},
	}
	certs := []models.Certificate{validCertFor(a)}

	result := CheckCompleteness(required, certs)
	assert.False(t, result.AllCompleted)
	assert.Equal(t, 1, result.MissingCount)
	assert.Equal(t, "B", result.Missing[0].Code)
}

// Requirement satisfaction follows the administrative status only: a
// certificate whose date lapsed but is still marked valid satisfies
// its requirement, while a revoked one never does.
func TestCheckCompletenessIgnoresExpiryDate(t *testing.T) {
	a, b := trainingID(), trainingID()
	required := []RequiredTraining{
		{TrainingMasterID: a, Code: "A", Title: "Training A", Mandatory: true},
		{TrainingMasterID: b, Code: "B", Title: "Training B", Mandatory: true},
	}
	lapsed := validCertFor(a)
	lapsed.ExpiryDate = datePtr(2020, time.January, 1)
	revoked := models.Certificate{Status: models.CertStatusRevoked, TrainingMasterID: &b}

	result := CheckCompleteness(required, []models.Certificate{lapsed, revoked})
	assert.False(t, result.AllCompleted)
	assert.Equal(t, 1, result.MissingCount)
	assert.Equal(t, b, result.Missing[0].TrainingMasterID)
}

func TestCheckCompletenessGeneralCertDoesNotSatisfy(t *testing.T) {
	a := trainingID()
	required := []RequiredTraining{
		{TrainingMasterID: a, Code: "A", Title: "Training A", Mandatory: true},
	}
	general := models.Certificate{Status: models.CertStatusValid, TrainingMasterID: nil}

	result := CheckCompleteness(required, []models.Certificate{general})
	assert.Equal(t, 1, result.MissingCount)
}

func TestCheckCompletenessEmptyRequirementSet(t *testing.T) {
	result := CheckCompleteness(nil, []models.Certificate{validCertFor(trainingID())})
	assert.True(t, result.AllCompleted)
	assert.Empty(t, result.Missing)
}
