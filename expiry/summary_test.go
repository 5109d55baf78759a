package expiry

import (
	"testing"
	"time"

	"github.com/avialink/crewcert/models"
	"github.com/stretchr/testify/assert"
)

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil, date(2025, time.June, 1))

	assert.Nil(t, s.EarliestDate)
	assert.Equal(t, 0, s.ValidCount)
	assert.Equal(t, 0, s.ExpiringSoonCount)
	assert.False(t, s.HasExpired)
	assert.Equal(t, BadgeGrey, s.Badge(date(2025, time.June, 1)))
}

func TestSummarizePicksEarliestAmongValid(t *testing.T) {
	now := date(2025, time.June, 1)
	certs := []models.Certificate{
		{Status: models.CertStatusValid, ExpiryDate: datePtr(2025, time.September, 1)},
		{Status: models.CertStatusValid, ExpiryDate: datePtr(2025, time.June, 20)},
		{Status: models.CertStatusRevoked, ExpiryDate: datePtr(2025, time.June, 5)},
		{Status: models.CertStatusValid, ExpiryDate: nil},
	}

	s := Summarize(certs, now)
	assert.Equal(t, date(2025, time.June, 20), *s.EarliestDate)
	assert.Equal(t, 2, s.ValidCount)
	assert.Equal(t, 1, s.ExpiringSoonCount)
	assert.False(t, s.HasExpired)
	assert.Equal(t, BadgeAmber, s.Badge(now))
}

// A valid certificate whose date has lapsed but whose status was never
// flipped still raises the has-expired flag, while staying out of the
// earliest-date and valid-count computation. The two passes filter
// differently on purpose.
func TestSummarizeLapsedButStillValidStatus(t *testing.T) {
	now := date(2025, time.June, 1)
	certs := []models.Certificate{
		{Status: models.CertStatusValid, ExpiryDate: datePtr(2025, time.May, 1)},
		{Status: models.CertStatusValid, ExpiryDate: datePtr(2025, time.December, 1)},
	}

	s := Summarize(certs, now)
	assert.True(t, s.HasExpired)
	assert.Equal(t, 1, s.ValidCount)
	assert.Equal(t, date(2025, time.December, 1), *s.EarliestDate)
	assert.Equal(t, BadgeRed, s.Badge(now))
}

func TestSummarizeRevokedLapsedDoesNotFlag(t *testing.T) {
	now := date(2025, time.June, 1)
	certs := []models.Certificate{
		{Status: models.CertStatusRevoked, ExpiryDate: datePtr(2025, time.May, 1)},
		{Status: models.CertStatusExpired, ExpiryDate: datePtr(2025, time.April, 1)},
	}

	s := Summarize(certs, now)
	assert.False(t, s.HasExpired)
	assert.Nil(t, s.EarliestDate)
	assert.Equal(t, BadgeGrey, s.Badge(now))
}

func TestSummaryBadgeColors(t *testing.T) {
	now := date(2025, time.June, 1)

	testDefs := []struct {
		name     string
		summary  Summary
		expected string
	}{
		{"has expired wins", Summary{HasExpired: true, EarliestDate: datePtr(2026, time.June, 1)}, BadgeRed},
		{"earliest within week", Summary{EarliestDate: datePtr(2025, time.June, 6)}, BadgeRed},
		{"earliest within month", Summary{EarliestDate: datePtr(2025, time.June, 25)}, BadgeAmber},
		{"earliest beyond month", Summary{EarliestDate: datePtr(2025, time.October, 1)}, BadgeGreen},
		{"nothing qualifying", Summary{}, BadgeGrey},
	}

	for _, def := range testDefs {
		t.Run(def.name, func(t *testing.T) {
			assert.Equal(t, def.expected, def.summary.Badge(now))
		})
	}
}
