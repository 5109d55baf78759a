package jobs

import (
	"fmt"
	"log"
	"time"

	config "github.com/avialink/crewcert/configs"
	"github.com/avialink/crewcert/database"
	"github.com/avialink/crewcert/expiry"
	"github.com/avialink/crewcert/models"
	"github.com/avialink/crewcert/notifications"
	"github.com/avialink/crewcert/websocket"
)

// SendExpiryReminders notifies staff whose certificates enter the
// 30-day warning window and pushes critical ones to connected
// dashboards. The job only notifies; it never flips the
// administrator-owned status field.
func SendExpiryReminders() {
	log.Println("Running job: SendExpiryReminders...")

	now := time.Now()
	today := now.Truncate(24 * time.Hour)
	until := today.AddDate(0, 0, 30)

	var certs []models.Certificate
	err := database.DB.
		Preload("Staff").
		Preload("Training").
		Where("status = ? AND expiry_date IS NOT NULL AND expiry_date >= ? AND expiry_date <= ?",
			models.CertStatusValid, today, until).
		Find(&certs).Error
	if err != nil {
		log.Printf("Error checking for expiring certificates: %v", err)
		return
	}

	if len(certs) == 0 {
		log.Println("No expiring certificates found.")
		return
	}

	criticalCount := 0
	for _, cert := range certs {
		bucket := expiry.Classify(cert.ExpiryDate, now)
		days := expiry.DaysUntil(*cert.ExpiryDate, now)

		trainingTitle := "General certificate"
		if cert.Training != nil {
			trainingTitle = cert.Training.Title
		}

		if bucket == expiry.Critical {
			criticalCount++
			websocket.PushAlert(&websocket.Alert{
				Kind:              "certificate_expiry",
				Bucket:            string(bucket),
				CertificateNumber: cert.CertificateNumber,
				StaffName:         cert.Staff.FullName,
				TrainingTitle:     trainingTitle,
				ExpiryDate:        cert.ExpiryDate.Format(time.DateOnly),
				DaysLeft:          days,
			})
		}

		if cert.Staff.Email == nil {
			continue
		}
		emailSubject := fmt.Sprintf("Certificate renewal due: %s", trainingTitle)
		emailBody := fmt.Sprintf(
			"<h1>Certificate Renewal Reminder</h1><p>Hi %s,</p><p>Your certificate <b>%s</b> (%s) expires on %s — %d day(s) from now. Please arrange renewal training with your supervisor.</p>",
			cert.Staff.FullName, cert.CertificateNumber, trainingTitle, cert.ExpiryDate.Format("January 2, 2006"), days,
		)
		go notifications.SendEmail(cert.Staff.FullName, *cert.Staff.Email, emailSubject, emailBody)
	}

	if hrEmail := config.Config("HR_DISTRIBUTION_EMAIL"); hrEmail != "" && criticalCount > 0 {
		subject := fmt.Sprintf("%d certificate(s) expiring within 7 days", criticalCount)
		body := fmt.Sprintf("<p>%d certificate(s) are in the critical renewal window. Review the expiry report for details.</p>", criticalCount)
		go notifications.SendEmail("HR", hrEmail, subject, body)
	}

	log.Printf("Processed %d expiring certificate(s), %d critical.", len(certs), criticalCount)
}
