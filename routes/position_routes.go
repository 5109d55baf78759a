package routes

import (
	"github.com/avialink/crewcert/handlers"
	"github.com/avialink/crewcert/middleware"
	"github.com/gofiber/fiber/v2"
)

func PositionRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	positions := api.Group("/positions", middleware.Protected())
	positions.Get("", handlers.ListPositions)
	positions.Get("/:positionId", handlers.GetPosition)
	positions.Post("", middleware.HRRequired(), handlers.CreatePosition)
	positions.Put("/:positionId", middleware.HRRequired(), handlers.UpdatePosition)
	positions.Put("/:positionId/requirements", middleware.HRRequired(), handlers.ReplaceRequirements)
}
