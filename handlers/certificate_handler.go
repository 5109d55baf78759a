package handlers

import (
	"errors"
	"fmt"
	"time"

	"github.com/avialink/crewcert/database"
	"github.com/avialink/crewcert/expiry"
	"github.com/avialink/crewcert/models"
	"github.com/avialink/crewcert/services"
	"github.com/avialink/crewcert/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type IssueCertificateRequest struct {
	StaffID          string  `json:"staff_id" validate:"required,uuid"`
	TrainingMasterID *string `json:"training_master_id,omitempty" validate:"omitempty,uuid"`
	IssueDate        string  `json:"issue_date" validate:"required,datetime=2006-01-02"`
	ExpiryDate       *string `json:"expiry_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	NoExpiry         bool    `json:"no_expiry,omitempty"`
	IssuedBy         *string `json:"issued_by,omitempty"`
	Notes            *string `json:"notes,omitempty"`
	Override         bool    `json:"override,omitempty"`
}

type UpdateCertificateRequest struct {
	ExpiryDate       *string `json:"expiry_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Status           *string `json:"status,omitempty" validate:"omitempty,oneof=valid expired revoked"`
	Notes            *string `json:"notes,omitempty"`
	IssuedBy         *string `json:"issued_by,omitempty"`
	RenewalScheduled *bool   `json:"renewal_scheduled,omitempty"`
}

// CertificateListItem carries the computed urgency alongside the raw
// row so no screen re-derives the classification rules.
type CertificateListItem struct {
	models.Certificate
	Bucket   expiry.Bucket `json:"bucket"`
	DaysLeft *int          `json:"days_left"`
}

// IssueCertificate creates a certificate for an employee. Issuance is
// gated on the position's mandatory trainings being covered; the
// caller can override, which records a warning note on the new
// certificate instead of blocking.
func IssueCertificate(c *fiber.Ctx) error {
	var req IssueCertificateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	staffID, _ := uuid.Parse(req.StaffID)
	var staff models.Staff
	if err := database.DB.First(&staff, "id = ?", staffID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Staff member not found"})
	}

	report, err := services.CheckRequiredTrainingsCompleted(staffID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to check training completeness"})
	}
	overrideNote := ""
	if report.Applicable && !report.AllCompleted {
		if !req.Override {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error":   "Employee is missing mandatory trainings for their position",
				"missing": report.Missing,
				"hint":    "Repeat the request with override=true to issue anyway",
			})
		}
		overrideNote = fmt.Sprintf("Issued with %d mandatory training(s) outstanding.", report.MissingCount)
	}

	var training models.TrainingMaster
	if req.TrainingMasterID != nil {
		trainingID, _ := uuid.Parse(*req.TrainingMasterID)
		if err := database.DB.First(&training, "id = ?", trainingID).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Training not found"})
		}
	} else {
		err := database.DB.Where("code = ?", models.GeneralCertCode).First(&training).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			training = models.TrainingMaster{Code: models.GeneralCertCode, Title: "General certificate"}
			if err := database.DB.Create(&training).Error; err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create general training entry"})
			}
		} else if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
		}
	}

	issueDate, _ := time.Parse("2006-01-02", req.IssueDate)

	var expiryDate *time.Time
	switch {
	case req.ExpiryDate != nil:
		parsed, _ := time.Parse("2006-01-02", *req.ExpiryDate)
		if parsed.Before(issueDate) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Expiry date must not precede issue date"})
		}
		expiryDate = &parsed
	case req.NoExpiry:
		expiryDate = nil
	default:
		derived := expiry.DerivedExpiry(issueDate, training.ValidityMonths)
		expiryDate = &derived
	}

	notes := req.Notes
	if overrideNote != "" {
		if notes != nil {
			combined := *notes + "\n" + overrideNote
			notes = &combined
		} else {
			notes = &overrideNote
		}
	}

	var cert models.Certificate
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		number, err := utils.GenerateUniqueCertificateNumber(tx)
		if err != nil {
			return err
		}
		cert = models.Certificate{
			CertificateNumber: number,
			StaffID:           staffID,
			TrainingMasterID:  &training.ID,
			IssueDate:         issueDate,
			ExpiryDate:        expiryDate,
			Status:            models.CertStatusValid,
			Notes:             notes,
			IssuedBy:          req.IssuedBy,
		}
		return tx.Create(&cert).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to issue certificate"})
	}

	cert.Staff = staff
	cert.Training = &training
	go services.GenerateCertificatePDF(cert)

	return c.Status(fiber.StatusCreated).JSON(cert)
}

func ListCertificates(c *fiber.Ctx) error {
	query := database.DB.Preload("Staff").Preload("Training")

	if staffID := c.Query("staff_id"); staffID != "" {
		query = query.Where("staff_id = ?", staffID)
	}
	if trainingID := c.Query("training_id"); trainingID != "" {
		query = query.Where("training_master_id = ?", trainingID)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var certs []models.Certificate
	if err := query.Order("issue_date desc").Find(&certs).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}

	now := time.Now()
	bucketFilter := expiry.Bucket(c.Query("bucket"))

	items := make([]CertificateListItem, 0, len(certs))
	for _, cert := range certs {
		bucket := expiry.Classify(cert.ExpiryDate, now)
		if bucketFilter != "" && bucket != bucketFilter {
			continue
		}
		item := CertificateListItem{Certificate: cert, Bucket: bucket}
		if cert.ExpiryDate != nil {
			days := expiry.DaysUntil(*cert.ExpiryDate, now)
			item.DaysLeft = &days
		}
		items = append(items, item)
	}

	return c.JSON(items)
}

func GetCertificate(c *fiber.Ctx) error {
	var cert models.Certificate
	err := database.DB.Preload("Staff").Preload("Training").
		First(&cert, "id = ?", c.Params("certificateId")).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Certificate not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}

	now := time.Now()
	item := CertificateListItem{Certificate: cert, Bucket: expiry.Classify(cert.ExpiryDate, now)}
	if cert.ExpiryDate != nil {
		days := expiry.DaysUntil(*cert.ExpiryDate, now)
		item.DaysLeft = &days
	}
	return c.JSON(item)
}

func UpdateCertificate(c *fiber.Ctx) error {
	var cert models.Certificate
	if err := database.DB.First(&cert, "id = ?", c.Params("certificateId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Certificate not found"})
	}

	var req UpdateCertificateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if req.ExpiryDate != nil {
		parsed, _ := time.Parse("2006-01-02", *req.ExpiryDate)
		cert.ExpiryDate = &parsed
	}
	if req.Status != nil {
		cert.Status = *req.Status
	}
	if req.Notes != nil {
		cert.Notes = req.Notes
	}
	if req.IssuedBy != nil {
		cert.IssuedBy = req.IssuedBy
	}
	if req.RenewalScheduled != nil {
		cert.RenewalScheduled = *req.RenewalScheduled
	}

	if err := database.DB.Save(&cert).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update certificate"})
	}

	return c.JSON(cert)
}

// RevokeCertificate flips the administrative status. Certificates are
// never hard-deleted.
func RevokeCertificate(c *fiber.Ctx) error {
	type RevokeRequest struct {
		Reason *string `json:"reason,omitempty"`
	}

	var cert models.Certificate
	if err := database.DB.First(&cert, "id = ?", c.Params("certificateId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Certificate not found"})
	}

	var req RevokeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	cert.Status = models.CertStatusRevoked
	if req.Reason != nil {
		note := "Revoked: " + *req.Reason
		if cert.Notes != nil {
			note = *cert.Notes + "\n" + note
		}
		cert.Notes = &note
	}

	if err := database.DB.Save(&cert).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to revoke certificate"})
	}

	return c.JSON(cert)
}

// GetCertificatePDF redirects to the stored PDF, generated
// asynchronously after issuance.
func GetCertificatePDF(c *fiber.Ctx) error {
	var cert models.Certificate
	if err := database.DB.First(&cert, "id = ?", c.Params("certificateId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Certificate not found"})
	}

	if cert.CertificateURL == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "PDF not generated yet"})
	}

	return c.Redirect(*cert.CertificateURL, fiber.StatusTemporaryRedirect)
}
