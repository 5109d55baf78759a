package expiry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func datePtr(year int, month time.Month, day int) *time.Time {
	d := date(year, month, day)
	return &d
}

func TestClassify(t *testing.T) {
	now := date(2025, time.June, 1)

	testDefs := []struct {
		name     string
		expiry   *time.Time
		expected Bucket
	}{
		{"nil expiry", nil, NoExpiry},
		{"lapsed yesterday", datePtr(2025, time.May, 31), Expired},
		{"lapsed long ago", datePtr(2020, time.January, 1), Expired},
		{"expires today", datePtr(2025, time.June, 1), Critical},
		{"expires in 7 days", datePtr(2025, time.June, 8), Critical},
		{"expires in 8 days", datePtr(2025, time.June, 9), Warning},
		{"expires in 30 days", datePtr(2025, time.July, 1), Warning},
		{"expires in 31 days", datePtr(2025, time.July, 2), Upcoming},
		{"expires in 90 days", datePtr(2025, time.August, 30), Upcoming},
		{"expires in 91 days", datePtr(2025, time.August, 31), Future},
		{"expires next year", datePtr(2026, time.June, 1), Future},
	}

	for _, def := range testDefs {
		t.Run(def.name, func(t *testing.T) {
			assert.Equal(t, def.expected, Classify(def.expiry, now))
		})
	}
}

func TestClassifyNilExpiryIgnoresNow(t *testing.T) {
	assert.Equal(t, NoExpiry, Classify(nil, date(1970, time.January, 1)))
	assert.Equal(t, NoExpiry, Classify(nil, date(2099, time.December, 31)))
}

func TestDaysUntil(t *testing.T) {
	now := date(2025, time.June, 1)

	assert.Equal(t, 0, DaysUntil(date(2025, time.June, 1), now))
	assert.Equal(t, 7, DaysUntil(date(2025, time.June, 8), now))
	assert.Equal(t, -1, DaysUntil(date(2025, time.May, 31), now))

	// Partial days round toward negative infinity, so a certificate
	// that lapsed an hour ago already counts as a day in the past.
	assert.Equal(t, -1, DaysUntil(now.Add(-time.Hour), now))
	assert.Equal(t, 0, DaysUntil(now.Add(time.Hour), now))
}
