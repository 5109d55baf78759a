package handlers

import (
	"errors"

	"github.com/avialink/crewcert/database"
	"github.com/avialink/crewcert/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreatePositionRequest struct {
	Code       string  `json:"code" validate:"required"`
	Title      string  `json:"title" validate:"required"`
	Department *string `json:"department,omitempty"`
}

type RequirementEntry struct {
	TrainingMasterID string `json:"training_master_id" validate:"required,uuid"`
	IsMandatory      bool   `json:"is_mandatory"`
}

type ReplaceRequirementsRequest struct {
	Requirements []RequirementEntry `json:"requirements" validate:"required,dive"`
}

func CreatePosition(c *fiber.Ctx) error {
	var req CreatePositionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var count int64
	if err := database.DB.Model(&models.WorkingPosition{}).Where("code = ?", req.Code).Count(&count).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	if count > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Position code already in use"})
	}

	position := models.WorkingPosition{
		Code:       req.Code,
		Title:      req.Title,
		Department: req.Department,
	}
	if err := database.DB.Create(&position).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create position"})
	}

	return c.Status(fiber.StatusCreated).JSON(position)
}

func ListPositions(c *fiber.Ctx) error {
	query := database.DB.Preload("RequiredTrainings").Preload("RequiredTrainings.Training").Order("code asc")
	if department := c.Query("department"); department != "" {
		query = query.Where("department = ?", department)
	}

	var positions []models.WorkingPosition
	if err := query.Find(&positions).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(positions)
}

func GetPosition(c *fiber.Ctx) error {
	var position models.WorkingPosition
	err := database.DB.
		Preload("RequiredTrainings").
		Preload("RequiredTrainings.Training").
		First(&position, "id = ?", c.Params("positionId")).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Position not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(position)
}

func UpdatePosition(c *fiber.Ctx) error {
	var position models.WorkingPosition
	if err := database.DB.First(&position, "id = ?", c.Params("positionId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Position not found"})
	}

	var req CreatePositionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	position.Code = req.Code
	position.Title = req.Title
	position.Department = req.Department

	if err := database.DB.Save(&position).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update position"})
	}
	return c.JSON(position)
}

// ReplaceRequirements swaps the position's required-training set
// atomically.
func ReplaceRequirements(c *fiber.Ctx) error {
	positionID, err := uuid.Parse(c.Params("positionId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid position id"})
	}

	var position models.WorkingPosition
	if err := database.DB.First(&position, "id = ?", positionID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Position not found"})
	}

	var req ReplaceRequirementsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("position_id = ?", positionID).Delete(&models.PositionTraining{}).Error; err != nil {
			return err
		}
		for _, entry := range req.Requirements {
			trainingID, err := uuid.Parse(entry.TrainingMasterID)
			if err != nil {
				return err
			}
			var training models.TrainingMaster
			if err := tx.First(&training, "id = ?", trainingID).Error; err != nil {
				return err
			}
			requirement := models.PositionTraining{
				PositionID:       positionID,
				TrainingMasterID: trainingID,
				IsMandatory:      entry.IsMandatory,
			}
			if err := tx.Create(&requirement).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to replace requirements"})
	}

	var requirements []models.PositionTraining
	database.DB.Preload("Training").Where("position_id = ?", positionID).Find(&requirements)
	return c.JSON(requirements)
}
