package routes

import (
	"github.com/avialink/crewcert/handlers"
	"github.com/avialink/crewcert/middleware"
	"github.com/gofiber/fiber/v2"
)

func TrainingRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	trainings := api.Group("/trainings", middleware.Protected())
	trainings.Get("", handlers.ListTrainings)
	trainings.Get("/:trainingId", handlers.GetTraining)
	trainings.Post("", middleware.HRRequired(), handlers.CreateTraining)
	trainings.Put("/:trainingId", middleware.HRRequired(), handlers.UpdateTraining)
}
