package handlers

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/avialink/crewcert/database"
	"github.com/avialink/crewcert/expiry"
	"github.com/avialink/crewcert/models"
	"github.com/gofiber/fiber/v2"
)

// GetExpiryStats returns the dashboard's bucket breakdown and rolling
// windows over all certificates, optionally grouped by training
// category or staff department.
func GetExpiryStats(c *fiber.Ctx) error {
	var certs []models.Certificate
	err := database.DB.
		Preload("Training").
		Preload("Staff").
		Preload("Staff.Position").
		Find(&certs).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}

	now := time.Now()

	switch c.Query("group_by") {
	case "":
		return c.JSON(expiry.Aggregate(certs, now))
	case "category":
		return c.JSON(expiry.AggregateBy(certs, func(cert models.Certificate) string {
			if cert.Training == nil || cert.Training.Category == nil {
				return "uncategorized"
			}
			return *cert.Training.Category
		}, now))
	case "department":
		return c.JSON(expiry.AggregateBy(certs, func(cert models.Certificate) string {
			if cert.Staff.Position == nil || cert.Staff.Position.Department == nil {
				return "unassigned"
			}
			return *cert.Staff.Position.Department
		}, now))
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "group_by must be category or department"})
	}
}

// ListExpiring returns valid certificates due within the next N days,
// today inclusive on both ends.
func ListExpiring(c *fiber.Ctx) error {
	window, err := strconv.Atoi(c.Query("window", "30"))
	if err != nil || window < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "window must be a non-negative number of days"})
	}

	certs, err := fetchExpiring(window)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}

	now := time.Now()
	items := make([]CertificateListItem, 0, len(certs))
	for _, cert := range certs {
		item := CertificateListItem{Certificate: cert, Bucket: expiry.Classify(cert.ExpiryDate, now)}
		if cert.ExpiryDate != nil {
			days := expiry.DaysUntil(*cert.ExpiryDate, now)
			item.DaysLeft = &days
		}
		items = append(items, item)
	}
	return c.JSON(items)
}

// ExportExpiringCSV downloads the training-expiry screen as CSV. The
// column order is fixed, the header matches the legacy dashboard.
func ExportExpiringCSV(c *fiber.Ctx) error {
	window, err := strconv.Atoi(c.Query("window", "30"))
	if err != nil || window < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "window must be a non-negative number of days"})
	}

	certs, err := fetchExpiring(window)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}

	now := time.Now()
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	writer.Write([]string{"Broj sertifikata", "Zaposleni", "Broj zaposlenog", "Obuka", "Datum izdavanja", "Datum isteka", "Dana do isteka", "Već zakazano"})
	for _, cert := range certs {
		trainingTitle := ""
		if cert.Training != nil {
			trainingTitle = cert.Training.Title
		}
		expiryText, daysText := "", ""
		if cert.ExpiryDate != nil {
			expiryText = cert.ExpiryDate.Format("2006-01-02")
			daysText = strconv.Itoa(expiry.DaysUntil(*cert.ExpiryDate, now))
		}
		scheduled := "ne"
		if cert.RenewalScheduled {
			scheduled = "da"
		}
		writer.Write([]string{
			cert.CertificateNumber,
			cert.Staff.FullName,
			cert.Staff.EmployeeNumber,
			trainingTitle,
			cert.IssueDate.Format("2006-01-02"),
			expiryText,
			daysText,
			scheduled,
		})
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to write CSV"})
	}

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="expiring_%dd.csv"`, window))
	return c.Send(buf.Bytes())
}

func fetchExpiring(window int) ([]models.Certificate, error) {
	today := time.Now().Truncate(24 * time.Hour)
	until := today.AddDate(0, 0, window)

	var certs []models.Certificate
	err := database.DB.
		Preload("Staff").
		Preload("Training").
		Where("status = ? AND expiry_date IS NOT NULL AND expiry_date >= ? AND expiry_date <= ?",
			models.CertStatusValid, today, until).
		Order("expiry_date asc").
		Find(&certs).Error
	return certs, err
}
