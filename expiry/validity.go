package expiry

import "time"

// DefaultValidityMonths applies when a training catalog entry carries
// no validity period of its own.
const DefaultValidityMonths = 12

// AddMonths performs calendar month addition with end-of-month
// clamping: Jan 31 + 1 month is Feb 28 (or 29), never Mar 2. The
// stdlib AddDate normalizes overflow days into the next month, which
// is wrong for certificate validity periods.
func AddMonths(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	hour, min, sec := t.Clock()

	anchor := time.Date(year, month, 1, 0, 0, 0, 0, t.Location()).AddDate(0, months, 0)
	if last := lastDayOfMonth(anchor.Year(), anchor.Month()); day > last {
		day = last
	}
	return time.Date(anchor.Year(), anchor.Month(), day, hour, min, sec, t.Nanosecond(), t.Location())
}

// DerivedExpiry computes the expiry a certificate gets when issued
// without an explicit one: issue date plus the training's validity
// period, defaulting to twelve months.
func DerivedExpiry(issue time.Time, validityMonths *int) time.Time {
	months := DefaultValidityMonths
	if validityMonths != nil {
		months = *validityMonths
	}
	return AddMonths(issue, months)
}

func lastDayOfMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
