package handlers

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/avialink/crewcert/database"
	"github.com/avialink/crewcert/expiry"
	"github.com/avialink/crewcert/models"
	"github.com/gofiber/fiber/v2"
)

// GetYearlySchedule builds the renewal work plan for a year: every
// certificate and instructor certification expiring that year,
// bucketed by month and by airport.
func GetYearlySchedule(c *fiber.Ctx) error {
	year, err := strconv.Atoi(c.Params("year"))
	if err != nil || year < 2000 || year > 2100 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid year"})
	}

	months, err := parseMonthsFilter(c.Query("months"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	airports := parseAirportsFilter(c.Query("airports"))

	schedule, err := buildSchedule(year, months, airports)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(schedule)
}

// ExportScheduleCSV downloads the yearly plan in the legacy column
// order.
func ExportScheduleCSV(c *fiber.Ctx) error {
	year, err := strconv.Atoi(c.Params("year"))
	if err != nil || year < 2000 || year > 2100 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid year"})
	}

	months, err := parseMonthsFilter(c.Query("months"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	airports := parseAirportsFilter(c.Query("airports"))

	schedule, err := buildSchedule(year, months, airports)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	writer.Write([]string{"Broj sertifikata", "Zaposleni", "Obuka", "Aerodrom", "Datum isteka", "Izvor", "Već zakazano"})
	for _, row := range schedule.All {
		scheduled := "ne"
		if row.Scheduled {
			scheduled = "da"
		}
		writer.Write([]string{
			row.CertificateNumber,
			row.StaffName,
			row.TrainingTitle,
			row.Airport,
			row.ExpiryDate,
			row.Source,
			scheduled,
		})
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to write CSV"})
	}

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="work_schedule_%d.csv"`, year))
	return c.Send(buf.Bytes())
}

func buildSchedule(year int, months []time.Month, airports []string) (expiry.Schedule, error) {
	certRows, err := fetchExpiringCertificateRows(year)
	if err != nil {
		return expiry.Schedule{}, err
	}
	trainingRows, err := fetchExpiringInstructorRows(year)
	if err != nil {
		return expiry.Schedule{}, err
	}
	return expiry.BuildYearlyPlan(certRows, trainingRows, year, months, airports), nil
}

// fetchExpiringCertificateRows mirrors the hosted
// get_certificates_expiring_in_year procedure.
func fetchExpiringCertificateRows(year int) ([]expiry.PlanRow, error) {
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(1, 0, 0)

	var certs []models.Certificate
	err := database.DB.
		Preload("Staff").
		Preload("Staff.Position").
		Preload("Training").
		Where("status = ? AND expiry_date IS NOT NULL AND expiry_date >= ? AND expiry_date < ?",
			models.CertStatusValid, from, to).
		Find(&certs).Error
	if err != nil {
		return nil, err
	}

	rows := make([]expiry.PlanRow, 0, len(certs))
	for _, cert := range certs {
		row := expiry.PlanRow{
			CertificateNumber: cert.CertificateNumber,
			StaffID:           cert.StaffID,
			StaffName:         cert.Staff.FullName,
			Scheduled:         cert.RenewalScheduled,
		}
		if cert.Training != nil {
			row.TrainingCode = cert.Training.Code
			row.TrainingTitle = cert.Training.Title
		}
		if cert.Staff.Position != nil && cert.Staff.Position.Department != nil {
			row.Airport = *cert.Staff.Position.Department
		}
		if cert.ExpiryDate != nil {
			row.ExpiryDate = cert.ExpiryDate.Format(time.DateOnly)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func fetchExpiringInstructorRows(year int) ([]expiry.PlanRow, error) {
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(1, 0, 0)

	var instructors []models.Instructor
	err := database.DB.
		Preload("Staff").
		Preload("Staff.Position").
		Where("status = ? AND certification_expiry IS NOT NULL AND certification_expiry >= ? AND certification_expiry < ?",
			"active", from, to).
		Find(&instructors).Error
	if err != nil {
		return nil, err
	}

	rows := make([]expiry.PlanRow, 0, len(instructors))
	for _, instructor := range instructors {
		row := expiry.PlanRow{
			StaffID:       instructor.StaffID,
			StaffName:     instructor.Staff.FullName,
			TrainingCode:  instructor.InstructorCode,
			TrainingTitle: "Instructor certification",
		}
		if instructor.CertificationNumber != nil {
			row.CertificateNumber = *instructor.CertificationNumber
		}
		if instructor.Staff.Position != nil && instructor.Staff.Position.Department != nil {
			row.Airport = *instructor.Staff.Position.Department
		}
		if instructor.CertificationExpiry != nil {
			row.ExpiryDate = instructor.CertificationExpiry.Format(time.DateOnly)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseMonthsFilter(raw string) ([]time.Month, error) {
	if raw == "" {
		return nil, nil
	}
	var months []time.Month
	for _, part := range strings.Split(raw, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 1 || n > 12 {
			return nil, fmt.Errorf("months must be numbers between 1 and 12")
		}
		months = append(months, time.Month(n))
	}
	return months, nil
}

func parseAirportsFilter(raw string) []string {
	if raw == "" {
		return nil
	}
	var airports []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			airports = append(airports, trimmed)
		}
	}
	return airports
}
