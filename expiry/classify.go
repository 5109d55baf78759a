package expiry

import (
	"math"
	"time"
)

// Bucket describes how soon a certificate needs renewal.
type Bucket string

const (
	NoExpiry Bucket = "no_expiry"
	Expired  Bucket = "expired"
	Critical Bucket = "critical"
	Warning  Bucket = "warning"
	Upcoming Bucket = "upcoming"
	Future   Bucket = "future"
)

// DaysUntil returns the whole-day difference between expiry and now,
// rounded toward negative infinity. A certificate expiring later today
// yields 0; one that lapsed yesterday yields -1.
func DaysUntil(expiry, now time.Time) int {
	return int(math.Floor(expiry.Sub(now).Hours() / 24))
}

// Classify maps an expiry date to an urgency bucket relative to now.
// A nil expiry means the certificate never expires. The reference time
// is always an explicit argument so callers stay deterministic.
func Classify(expiry *time.Time, now time.Time) Bucket {
	if expiry == nil {
		return NoExpiry
	}
	days := DaysUntil(*expiry, now)
	switch {
	case days < 0:
		return Expired
	case days <= 7:
		return Critical
	case days <= 30:
		return Warning
	case days <= 90:
		return Upcoming
	default:
		return Future
	}
}
