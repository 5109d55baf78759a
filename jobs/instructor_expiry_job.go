package jobs

import (
	"fmt"
	"log"
	"time"

	"github.com/avialink/crewcert/database"
	"github.com/avialink/crewcert/expiry"
	"github.com/avialink/crewcert/models"
	"github.com/avialink/crewcert/notifications"
)

// CheckInstructorCertifications reminds active instructors whose own
// certification enters the 30-day window.
func CheckInstructorCertifications() {
	log.Println("Running job: CheckInstructorCertifications...")

	now := time.Now()
	today := now.Truncate(24 * time.Hour)
	until := today.AddDate(0, 0, 30)

	var instructors []models.Instructor
	err := database.DB.
		Preload("Staff").
		Where("status = ? AND certification_expiry IS NOT NULL AND certification_expiry >= ? AND certification_expiry <= ?",
			"active", today, until).
		Find(&instructors).Error
	if err != nil {
		log.Printf("Error checking instructor certifications: %v", err)
		return
	}

	if len(instructors) == 0 {
		return
	}

	for _, instructor := range instructors {
		bucket := expiry.Classify(instructor.CertificationExpiry, now)
		days := expiry.DaysUntil(*instructor.CertificationExpiry, now)

		if instructor.Staff.Email == nil {
			continue
		}
		emailSubject := "Instructor certification renewal due"
		emailBody := fmt.Sprintf(
			"<h1>Certification Renewal Reminder</h1><p>Hi %s,</p><p>Your instructor certification (%s) expires on %s — %d day(s) from now. Urgency: %s.</p>",
			instructor.Staff.FullName, instructor.InstructorCode,
			instructor.CertificationExpiry.Format("January 2, 2006"), days, bucket,
		)
		go notifications.SendEmail(instructor.Staff.FullName, *instructor.Staff.Email, emailSubject, emailBody)
	}

	log.Printf("Sent reminders for %d instructor certification(s).", len(instructors))
}
