package expiry

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func planRow(number, name, airport, expiry string) PlanRow {
	return PlanRow{
		CertificateNumber: number,
		StaffID:           uuid.New(),
		StaffName:         name,
		Airport:           airport,
		ExpiryDate:        expiry,
	}
}

func monthGroup(t *testing.T, s Schedule, m time.Month) MonthGroup {
	t.Helper()
	for _, g := range s.ByMonth {
		if g.Month == m {
			return g
		}
	}
	t.Fatalf("no group for month %s", m)
	return MonthGroup{}
}

func TestBuildYearlyPlanBucketsByMonth(t *testing.T) {
	certs := []PlanRow{
		planRow("CRT-001", "Ana", "BEG", "2025-03-12"),
		planRow("CRT-002", "Marko", "BEG", "2025-03-20"),
		planRow("CRT-003", "Ivana", "INI", "2025-07-01"),
	}
	trainings := []PlanRow{
		planRow("TRN-001", "Ana", "BEG", "2025-03-05"),
	}

	s := BuildYearlyPlan(certs, trainings, 2025, nil, nil)

	require.Len(t, s.ByMonth, 12)
	march := monthGroup(t, s, time.March)
	require.Len(t, march.Rows, 3)
	// Chronological within the month.
	assert.Equal(t, "TRN-001", march.Rows[0].CertificateNumber)
	assert.Equal(t, PlanSourceTraining, march.Rows[0].Source)
	assert.Equal(t, 3, march.StaffCount)

	july := monthGroup(t, s, time.July)
	require.Len(t, july.Rows, 1)
	assert.Empty(t, monthGroup(t, s, time.January).Rows)

	assert.Equal(t, 4, s.TotalInput)
	assert.Equal(t, 0, s.Skipped)
	assert.Len(t, s.All, 4)
	assert.Equal(t, 4, s.StaffCount)
}

func TestBuildYearlyPlanSkipsBadDates(t *testing.T) {
	certs := []PlanRow{
		planRow("CRT-001", "Ana", "BEG", "2025-05-10"),
		planRow("CRT-002", "Marko", "BEG", ""),
		planRow("CRT-003", "Ivana", "BEG", "not-a-date"),
	}

	s := BuildYearlyPlan(certs, nil, 2025, nil, nil)

	assert.Equal(t, 3, s.TotalInput)
	assert.Equal(t, 2, s.Skipped)
	assert.Len(t, s.All, 1)
	for _, g := range s.ByMonth {
		for _, row := range g.Rows {
			assert.Equal(t, "CRT-001", row.CertificateNumber)
		}
	}
}

func TestBuildYearlyPlanGroupsByAirport(t *testing.T) {
	certs := []PlanRow{
		planRow("CRT-001", "Ana", "BEG", "2025-02-01"),
		planRow("CRT-002", "Marko", "INI", "2025-02-10"),
		planRow("CRT-003", "Ivana", "BEG", "2025-04-01"),
	}

	s := BuildYearlyPlan(certs, nil, 2025, nil, nil)

	require.Len(t, s.ByAirport, 2)
	// Alphabetical airport order.
	assert.Equal(t, "BEG", s.ByAirport[0].Airport)
	assert.Len(t, s.ByAirport[0].Rows, 2)
	assert.Equal(t, 2, s.ByAirport[0].StaffCount)
	assert.Equal(t, "INI", s.ByAirport[1].Airport)
}

func TestBuildYearlyPlanFilters(t *testing.T) {
	certs := []PlanRow{
		planRow("CRT-001", "Ana", "BEG", "2025-02-01"),
		planRow("CRT-002", "Marko", "INI", "2025-02-10"),
		planRow("CRT-003", "Ivana", "BEG", "2025-04-01"),
	}

	s := BuildYearlyPlan(certs, nil, 2025, []time.Month{time.February}, []string{"BEG"})

	require.Len(t, s.ByMonth, 1)
	assert.Equal(t, time.February, s.ByMonth[0].Month)
	require.Len(t, s.All, 1)
	assert.Equal(t, "CRT-001", s.All[0].CertificateNumber)
}
