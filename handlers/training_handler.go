package handlers

import (
	"errors"

	"github.com/avialink/crewcert/database"
	"github.com/avialink/crewcert/models"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CreateTrainingRequest struct {
	Code           string  `json:"code" validate:"required"`
	Title          string  `json:"title" validate:"required"`
	Category       *string `json:"category,omitempty"`
	ValidityMonths *int    `json:"validity_months,omitempty" validate:"omitempty,min=1"`
}

type UpdateTrainingRequest struct {
	Title          *string `json:"title,omitempty"`
	Category       *string `json:"category,omitempty"`
	ValidityMonths *int    `json:"validity_months,omitempty" validate:"omitempty,min=1"`
}

func CreateTraining(c *fiber.Ctx) error {
	var req CreateTrainingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var count int64
	if err := database.DB.Model(&models.TrainingMaster{}).Where("code = ?", req.Code).Count(&count).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	if count > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Training code already in use"})
	}

	training := models.TrainingMaster{
		Code:           req.Code,
		Title:          req.Title,
		Category:       req.Category,
		ValidityMonths: req.ValidityMonths,
	}
	if err := database.DB.Create(&training).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create training"})
	}

	return c.Status(fiber.StatusCreated).JSON(training)
}

func ListTrainings(c *fiber.Ctx) error {
	query := database.DB.Order("code asc")
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	var trainings []models.TrainingMaster
	if err := query.Find(&trainings).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(trainings)
}

func GetTraining(c *fiber.Ctx) error {
	var training models.TrainingMaster
	err := database.DB.First(&training, "id = ?", c.Params("trainingId")).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Training not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(training)
}

func UpdateTraining(c *fiber.Ctx) error {
	var training models.TrainingMaster
	if err := database.DB.First(&training, "id = ?", c.Params("trainingId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Training not found"})
	}

	var req UpdateTrainingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if req.Title != nil {
		training.Title = *req.Title
	}
	if req.Category != nil {
		training.Category = req.Category
	}
	if req.ValidityMonths != nil {
		training.ValidityMonths = req.ValidityMonths
	}

	if err := database.DB.Save(&training).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update training"})
	}
	return c.JSON(training)
}
