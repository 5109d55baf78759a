package expiry

import (
	"log"
	"sort"
	"time"

	"github.com/google/uuid"
)

// PlanRow is one expiring certificate or training as delivered by the
// yearly reporting query. ExpiryDate stays the raw string from the
// query so a single bad row can be skipped instead of failing the
// whole batch.
type PlanRow struct {
	Source            string    `json:"source"`
	CertificateNumber string    `json:"certificate_number"`
	StaffID           uuid.UUID `json:"staff_id"`
	StaffName         string    `json:"staff_name"`
	TrainingCode      string    `json:"training_code"`
	TrainingTitle     string    `json:"training_title"`
	Airport           string    `json:"airport"`
	ExpiryDate        string    `json:"expiry_date"`
	Scheduled         bool      `json:"scheduled"`
}

type MonthGroup struct {
	Month      time.Month `json:"month"`
	Rows       []PlanRow  `json:"rows"`
	StaffCount int        `json:"staff_count"`
}

type AirportGroup struct {
	Airport    string    `json:"airport"`
	Rows       []PlanRow `json:"rows"`
	StaffCount int       `json:"staff_count"`
}

// Schedule is the yearly renewal work plan: the same rows bucketed
// three ways, plus derived headcounts. Summaries are counts only.
type Schedule struct {
	Year       int            `json:"year"`
	ByMonth    []MonthGroup   `json:"by_month"`
	ByAirport  []AirportGroup `json:"by_airport"`
	All        []PlanRow      `json:"all"`
	TotalInput int            `json:"total_input"`
	Skipped    int            `json:"skipped"`
	StaffCount int            `json:"staff_count"`
}

// Row sources fed into BuildYearlyPlan.
const (
	PlanSourceCertificate = "certificate"
	PlanSourceTraining    = "training"
)

// BuildYearlyPlan buckets expiring certificate and training rows by
// calendar month and by airport for the given year. Rows with a
// missing or unparseable expiry date are logged and skipped. An empty
// months or airports filter means all.
func BuildYearlyPlan(certRows, trainingRows []PlanRow, year int, months []time.Month, airports []string) Schedule {
	wantMonth := make(map[time.Month]bool, len(months))
	for _, m := range months {
		wantMonth[m] = true
	}
	wantAirport := make(map[string]bool, len(airports))
	for _, a := range airports {
		wantAirport[a] = true
	}

	schedule := Schedule{
		Year:       year,
		TotalInput: len(certRows) + len(trainingRows),
	}

	byMonth := make(map[time.Month][]PlanRow)
	byAirport := make(map[string][]PlanRow)
	allStaff := make(map[uuid.UUID]bool)

	consume := func(rows []PlanRow, source string) {
		for _, row := range rows {
			row.Source = source
			if row.ExpiryDate == "" {
				schedule.Skipped++
				continue
			}
			due, err := time.Parse(time.DateOnly, row.ExpiryDate)
			if err != nil {
				log.Printf("yearly plan: skipping row %q, bad expiry date %q: %v", row.CertificateNumber, row.ExpiryDate, err)
				schedule.Skipped++
				continue
			}
			if len(wantMonth) > 0 && !wantMonth[due.Month()] {
				continue
			}
			if len(wantAirport) > 0 && !wantAirport[row.Airport] {
				continue
			}

			byMonth[due.Month()] = append(byMonth[due.Month()], row)
			byAirport[row.Airport] = append(byAirport[row.Airport], row)
			schedule.All = append(schedule.All, row)
			allStaff[row.StaffID] = true
		}
	}
	consume(certRows, PlanSourceCertificate)
	consume(trainingRows, PlanSourceTraining)

	for m := time.January; m <= time.December; m++ {
		if len(wantMonth) > 0 && !wantMonth[m] {
			continue
		}
		rows := byMonth[m]
		sortRows(rows)
		schedule.ByMonth = append(schedule.ByMonth, MonthGroup{
			Month:      m,
			Rows:       rows,
			StaffCount: distinctStaff(rows),
		})
	}

	names := make([]string, 0, len(byAirport))
	for name := range byAirport {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		rows := byAirport[name]
		sortRows(rows)
		schedule.ByAirport = append(schedule.ByAirport, AirportGroup{
			Airport:    name,
			Rows:       rows,
			StaffCount: distinctStaff(rows),
		})
	}

	sortRows(schedule.All)
	schedule.StaffCount = len(allStaff)
	return schedule
}

func sortRows(rows []PlanRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].ExpiryDate != rows[j].ExpiryDate {
			return rows[i].ExpiryDate < rows[j].ExpiryDate
		}
		return rows[i].CertificateNumber < rows[j].CertificateNumber
	})
}

func distinctStaff(rows []PlanRow) int {
	seen := make(map[uuid.UUID]bool, len(rows))
	for _, row := range rows {
		seen[row.StaffID] = true
	}
	return len(seen)
}
