package expiry

import (
	"time"

	"github.com/avialink/crewcert/models"
)

// Stats holds the per-bucket breakdown of a certificate set plus the
// rolling-window counts the dashboard cards show. The windows overlap
// the buckets on purpose: DueIn30Days includes certificates that the
// bucket breakdown files under Critical, so the windows are computed
// independently rather than derived from the bucket counts.
type Stats struct {
	Total    int `json:"total"`
	NoExpiry int `json:"no_expiry"`
	Expired  int `json:"expired"`
	Critical int `json:"critical"`
	Warning  int `json:"warning"`
	Upcoming int `json:"upcoming"`
	Future   int `json:"future"`

	DueToday    int `json:"due_today"`
	DueIn7Days  int `json:"due_in_7_days"`
	DueIn30Days int `json:"due_in_30_days"`
}

// Aggregate classifies every certificate independently and sums the
// results. Empty input yields an all-zero Stats.
func Aggregate(certs []models.Certificate, now time.Time) Stats {
	var s Stats
	s.Total = len(certs)
	for _, cert := range certs {
		switch Classify(cert.ExpiryDate, now) {
		case NoExpiry:
			s.NoExpiry++
		case Expired:
			s.Expired++
		case Critical:
			s.Critical++
		case Warning:
			s.Warning++
		case Upcoming:
			s.Upcoming++
		case Future:
			s.Future++
		}

		if cert.ExpiryDate == nil {
			continue
		}
		days := DaysUntil(*cert.ExpiryDate, now)
		if days == 0 {
			s.DueToday++
		}
		if days >= 0 && days <= 7 {
			s.DueIn7Days++
		}
		if days >= 0 && days <= 30 {
			s.DueIn30Days++
		}
	}
	return s
}

// AggregateBy groups certificates by an arbitrary key (training
// category, department) and aggregates each group separately.
func AggregateBy(certs []models.Certificate, keyFn func(models.Certificate) string, now time.Time) map[string]Stats {
	grouped := make(map[string][]models.Certificate)
	for _, cert := range certs {
		key := keyFn(cert)
		grouped[key] = append(grouped[key], cert)
	}

	result := make(map[string]Stats, len(grouped))
	for key, group := range grouped {
		result[key] = Aggregate(group, now)
	}
	return result
}
