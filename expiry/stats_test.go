package expiry

import (
	"testing"
	"time"

	"github.com/avialink/crewcert/models"
	"github.com/stretchr/testify/assert"
)

func certExpiring(expiry *time.Time) models.Certificate {
	return models.Certificate{Status: models.CertStatusValid, ExpiryDate: expiry}
}

func TestAggregateEmptyInput(t *testing.T) {
	assert.Equal(t, Stats{}, Aggregate(nil, date(2025, time.June, 1)))
	assert.Equal(t, Stats{}, Aggregate([]models.Certificate{}, date(2025, time.June, 1)))
}

func TestAggregateTotalMatchesInput(t *testing.T) {
	now := date(2025, time.June, 1)
	certs := []models.Certificate{
		certExpiring(nil),
		certExpiring(datePtr(2025, time.May, 1)),
		certExpiring(datePtr(2025, time.June, 3)),
		certExpiring(datePtr(2025, time.June, 20)),
		certExpiring(datePtr(2025, time.August, 1)),
		certExpiring(datePtr(2026, time.January, 1)),
	}

	stats := Aggregate(certs, now)
	assert.Equal(t, len(certs), stats.Total)
	assert.Equal(t, 1, stats.NoExpiry)
	assert.Equal(t, 1, stats.Expired)
	assert.Equal(t, 1, stats.Critical)
	assert.Equal(t, 1, stats.Warning)
	assert.Equal(t, 1, stats.Upcoming)
	assert.Equal(t, 1, stats.Future)

	// Buckets are mutually exclusive and cover every record.
	sum := stats.NoExpiry + stats.Expired + stats.Critical + stats.Warning + stats.Upcoming + stats.Future
	assert.Equal(t, stats.Total, sum)
}

func TestAggregateRollingWindows(t *testing.T) {
	now := date(2025, time.June, 1)
	certs := []models.Certificate{
		certExpiring(datePtr(2025, time.May, 31)),  // lapsed, outside every window
		certExpiring(datePtr(2025, time.June, 1)),  // today
		certExpiring(datePtr(2025, time.June, 8)),  // day 7
		certExpiring(datePtr(2025, time.June, 15)), // day 14
		certExpiring(datePtr(2025, time.July, 1)),  // day 30
		certExpiring(datePtr(2025, time.July, 2)),  // day 31, outside 30-day window
	}

	stats := Aggregate(certs, now)
	assert.Equal(t, 1, stats.DueToday)
	assert.Equal(t, 2, stats.DueIn7Days)
	assert.Equal(t, 4, stats.DueIn30Days)

	// The windows overlap the buckets: the day-7 certificate is both
	// Critical and inside the 30-day window.
	assert.Equal(t, 2, stats.Critical)
	assert.GreaterOrEqual(t, stats.DueIn30Days, stats.Critical)
}

func TestAggregateBy(t *testing.T) {
	now := date(2025, time.June, 1)
	ramp := "RAMP"
	security := "SECURITY"
	certs := []models.Certificate{
		{Status: models.CertStatusValid, ExpiryDate: datePtr(2025, time.June, 3), Training: &models.TrainingMaster{Category: &ramp}},
		{Status: models.CertStatusValid, ExpiryDate: datePtr(2025, time.August, 1), Training: &models.TrainingMaster{Category: &ramp}},
		{Status: models.CertStatusValid, ExpiryDate: datePtr(2025, time.May, 1), Training: &models.TrainingMaster{Category: &security}},
		{Status: models.CertStatusValid, ExpiryDate: datePtr(2025, time.June, 4)},
	}

	byCategory := AggregateBy(certs, func(c models.Certificate) string {
		if c.Training == nil || c.Training.Category == nil {
			return "uncategorized"
		}
		return *c.Training.Category
	}, now)

	assert.Len(t, byCategory, 3)
	assert.Equal(t, 2, byCategory["RAMP"].Total)
	assert.Equal(t, 1, byCategory["RAMP"].Critical)
	assert.Equal(t, 1, byCategory["SECURITY"].Expired)
	assert.Equal(t, 1, byCategory["uncategorized"].Total)
}
