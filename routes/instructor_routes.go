package routes

import (
	"github.com/avialink/crewcert/handlers"
	"github.com/avialink/crewcert/middleware"
	"github.com/gofiber/fiber/v2"
)

func InstructorRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	instructors := api.Group("/instructors", middleware.Protected())
	instructors.Get("", handlers.ListInstructors)
	instructors.Get("/:instructorId", handlers.GetInstructor)
	instructors.Post("", middleware.HRRequired(), handlers.CreateInstructor)
	instructors.Put("/:instructorId", middleware.HRRequired(), handlers.UpdateInstructor)
}
