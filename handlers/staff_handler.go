package handlers

import (
	"errors"
	"time"

	"github.com/avialink/crewcert/database"
	"github.com/avialink/crewcert/expiry"
	"github.com/avialink/crewcert/models"
	"github.com/avialink/crewcert/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateStaffRequest struct {
	EmployeeNumber string  `json:"employee_number" validate:"required"`
	FullName       string  `json:"full_name" validate:"required,min=3"`
	Email          *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone          *string `json:"phone,omitempty"`
	Status         string  `json:"status" validate:"omitempty,oneof=active inactive on_leave terminated"`
	PositionID     *string `json:"position_id,omitempty" validate:"omitempty,uuid"`
	HireDate       *string `json:"hire_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

type UpdateStaffRequest struct {
	FullName   *string `json:"full_name,omitempty" validate:"omitempty,min=3"`
	Email      *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone      *string `json:"phone,omitempty"`
	Status     *string `json:"status,omitempty" validate:"omitempty,oneof=active inactive on_leave terminated"`
	PositionID *string `json:"position_id,omitempty" validate:"omitempty,uuid"`
}

// StaffListItem is a staff row with the expiry summary the list view
// renders next to each employee.
type StaffListItem struct {
	models.Staff
	ExpirySummary expiry.Summary `json:"expiry_summary"`
	Badge         string         `json:"badge"`
}

func CreateStaff(c *fiber.Ctx) error {
	var req CreateStaffRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var count int64
	if err := database.DB.Model(&models.Staff{}).Where("employee_number = ?", req.EmployeeNumber).Count(&count).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	if count > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Employee number already in use"})
	}

	newStaff := models.Staff{
		EmployeeNumber: req.EmployeeNumber,
		FullName:       req.FullName,
		Email:          req.Email,
		Phone:          req.Phone,
		Status:         "active",
	}
	if req.Status != "" {
		newStaff.Status = req.Status
	}
	if req.PositionID != nil {
		positionID, err := uuid.Parse(*req.PositionID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid position id"})
		}
		var position models.WorkingPosition
		if err := database.DB.First(&position, "id = ?", positionID).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Working position not found"})
		}
		newStaff.PositionID = &positionID
	}
	if req.HireDate != nil {
		hireDate, _ := time.Parse("2006-01-02", *req.HireDate)
		newStaff.HireDate = &hireDate
	}

	if err := database.DB.Create(&newStaff).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create staff member"})
	}

	return c.Status(fiber.StatusCreated).JSON(newStaff)
}

func ListStaff(c *fiber.Ctx) error {
	query := database.DB.Preload("Position").Preload("Certificates")

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if positionID := c.Query("position_id"); positionID != "" {
		query = query.Where("position_id = ?", positionID)
	}
	if q := c.Query("q"); q != "" {
		like := "%" + q + "%"
		query = query.Where("full_name ILIKE ? OR employee_number ILIKE ?", like, like)
	}

	var staff []models.Staff
	if err := query.Order("full_name asc").Find(&staff).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}

	now := time.Now()
	items := make([]StaffListItem, 0, len(staff))
	for _, member := range staff {
		summary := expiry.Summarize(member.Certificates, now)
		items = append(items, StaffListItem{
			Staff:         member,
			ExpirySummary: summary,
			Badge:         summary.Badge(now),
		})
	}

	return c.JSON(items)
}

func GetStaff(c *fiber.Ctx) error {
	staffID := c.Params("staffId")

	var staff models.Staff
	err := database.DB.
		Preload("Position").
		Preload("Position.RequiredTrainings").
		Preload("Position.RequiredTrainings.Training").
		Preload("Certificates").
		Preload("Certificates.Training").
		Preload("Instructor").
		First(&staff, "id = ?", staffID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Staff member not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}

	now := time.Now()
	summary := expiry.Summarize(staff.Certificates, now)

	return c.JSON(fiber.Map{
		"staff":          staff,
		"expiry_summary": summary,
		"badge":          summary.Badge(now),
	})
}

func UpdateStaff(c *fiber.Ctx) error {
	staffID := c.Params("staffId")

	var staff models.Staff
	if err := database.DB.First(&staff, "id = ?", staffID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Staff member not found"})
	}

	var req UpdateStaffRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if req.FullName != nil {
		staff.FullName = *req.FullName
	}
	if req.Email != nil {
		staff.Email = req.Email
	}
	if req.Phone != nil {
		staff.Phone = req.Phone
	}
	if req.Status != nil {
		staff.Status = *req.Status
	}
	if req.PositionID != nil {
		if *req.PositionID == "" {
			staff.PositionID = nil
		} else {
			positionID, err := uuid.Parse(*req.PositionID)
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid position id"})
			}
			var position models.WorkingPosition
			if err := database.DB.First(&position, "id = ?", positionID).Error; err != nil {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Working position not found"})
			}
			staff.PositionID = &positionID
		}
	}

	if err := database.DB.Save(&staff).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update staff member"})
	}

	return c.JSON(staff)
}

// GetStaffCompleteness renders the completeness badge on the employee
// form: which mandatory trainings of the position are still missing.
func GetStaffCompleteness(c *fiber.Ctx) error {
	staffID, err := uuid.Parse(c.Params("staffId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid staff id"})
	}

	report, err := services.CheckRequiredTrainingsCompleted(staffID)
	if err != nil {
		if errors.Is(err, services.ErrStaffNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Staff member not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}

	return c.JSON(report)
}
