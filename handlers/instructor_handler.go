package handlers

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/avialink/crewcert/database"
	"github.com/avialink/crewcert/expiry"
	"github.com/avialink/crewcert/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type CreateInstructorRequest struct {
	StaffID             string   `json:"staff_id" validate:"required,uuid"`
	InstructorCode      string   `json:"instructor_code" validate:"required"`
	Specializations     []string `json:"specializations,omitempty"`
	CertificationNumber *string  `json:"certification_number,omitempty"`
	CertificationExpiry *string  `json:"certification_expiry,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

type UpdateInstructorRequest struct {
	Status              *string  `json:"status,omitempty" validate:"omitempty,oneof=active inactive pending"`
	Specializations     []string `json:"specializations,omitempty"`
	CertificationNumber *string  `json:"certification_number,omitempty"`
	CertificationExpiry *string  `json:"certification_expiry,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// InstructorListItem adds the urgency bucket of the instructor's own
// certification, classified with the same rules as certificates.
type InstructorListItem struct {
	models.Instructor
	CertificationBucket expiry.Bucket `json:"certification_bucket"`
}

func CreateInstructor(c *fiber.Ctx) error {
	var req CreateInstructorRequest
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

	var existing models.Instructor
	err := database.DB.Where("staff_id = ?", staffID).First(&existing).Error
	if err == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Staff member already has an instructor profile"})
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}

	instructor := models.Instructor{
		StaffID:             staffID,
		InstructorCode:      req.InstructorCode,
		Status:              "pending",
		CertificationNumber: req.CertificationNumber,
	}
	if req.Specializations != nil {
		raw, _ := json.Marshal(req.Specializations)
		instructor.Specializations = datatypes.JSON(raw)
	}
	if req.CertificationExpiry != nil {
		parsed, _ := time.Parse("2006-01-02", *req.CertificationExpiry)
		instructor.CertificationExpiry = &parsed
	}

	if err := database.DB.Create(&instructor).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create instructor"})
	}

	return c.Status(fiber.StatusCreated).JSON(instructor)
}

func ListInstructors(c *fiber.Ctx) error {
	query := database.DB.Preload("Staff")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var instructors []models.Instructor
	if err := query.Order("instructor_code asc").Find(&instructors).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}

	now := time.Now()
	items := make([]InstructorListItem, 0, len(instructors))
	for _, instructor := range instructors {
		items = append(items, InstructorListItem{
			Instructor:          instructor,
			CertificationBucket: expiry.Classify(instructor.CertificationExpiry, now),
		})
	}
	return c.JSON(items)
}

func GetInstructor(c *fiber.Ctx) error {
	var instructor models.Instructor
	err := database.DB.Preload("Staff").First(&instructor, "id = ?", c.Params("instructorId")).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Instructor not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}

	return c.JSON(InstructorListItem{
		Instructor:          instructor,
		CertificationBucket: expiry.Classify(instructor.CertificationExpiry, time.Now()),
	})
}

func UpdateInstructor(c *fiber.Ctx) error {
	var instructor models.Instructor
	if err := database.DB.First(&instructor, "id = ?", c.Params("instructorId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Instructor not found"})
	}

	var req UpdateInstructorRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if req.Status != nil {
		instructor.Status = *req.Status
	}
	if req.Specializations != nil {
		raw, _ := json.Marshal(req.Specializations)
		instructor.Specializations = datatypes.JSON(raw)
	}
	if req.CertificationNumber != nil {
		instructor.CertificationNumber = req.CertificationNumber
	}
	if req.CertificationExpiry != nil {
		parsed, _ := time.Parse("2006-01-02", *req.CertificationExpiry)
		instructor.CertificationExpiry = &parsed
	}

	if err := database.DB.Save(&instructor).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update instructor"})
	}
	return c.JSON(instructor)
}
