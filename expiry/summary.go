package expiry

import (
	"time"

	"github.com/avialink/crewcert/models"
)

// Badge colors shown next to an employee in list views.
const (
	BadgeRed   = "red"
	BadgeAmber = "amber"
	BadgeGreen = "green"
	BadgeGrey  = "grey"
)

// Summary condenses an employee's certificate set into the fields the
// staff list renders: the next renewal date, how many certificates are
// still in play, and whether anything has already lapsed.
type Summary struct {
	EarliestDate      *time.Time `json:"earliest_date"`
	ValidCount        int        `json:"valid_count"`
	ExpiringSoonCount int        `json:"expiring_soon_count"`
	HasExpired        bool       `json:"has_expired"`
}

// Summarize runs two separate passes over the certificate set.
//
// The earliest/valid-count pass considers only certificates whose
// status is valid, that carry an expiry date, and whose date has not
// yet lapsed. The has-expired pass scans the full set for any valid
// certificate with a lapsed date, so a certificate whose status was
// never flipped to expired still raises the alert badge while staying
// out of the earliest-date computation. The two filters differ on
// purpose; do not unify them.
func Summarize(certs []models.Certificate, now time.Time) Summary {
	var s Summary
	for _, cert := range certs {
		if cert.Status != models.CertStatusValid || cert.ExpiryDate == nil {
			continue
		}
		days := DaysUntil(*cert.ExpiryDate, now)
		if days < 0 {
			continue
		}
		s.ValidCount++
		if days <= 30 {
			s.ExpiringSoonCount++
		}
		if s.EarliestDate == nil || cert.ExpiryDate.Before(*s.EarliestDate) {
			d := *cert.ExpiryDate
			s.EarliestDate = &d
		}
	}

	for _, cert := range certs {
		if cert.Status != models.CertStatusValid || cert.ExpiryDate == nil {
			continue
		}
		if DaysUntil(*cert.ExpiryDate, now) < 0 {
			s.HasExpired = true
			break
		}
	}
	return s
}

// Badge returns the list-view color for this summary: red when
// something lapsed or the next renewal is within a week, amber within
// a month, green beyond that, grey when nothing qualifies.
func (s Summary) Badge(now time.Time) string {
	if s.HasExpired {
		return BadgeRed
	}
	if s.EarliestDate == nil {
		return BadgeGrey
	}
	days := DaysUntil(*s.EarliestDate, now)
	switch {
	case days <= 7:
		return BadgeRed
	case days <= 30:
		return BadgeAmber
	default:
		return BadgeGreen
	}
}
