package routes

import (
	"github.com/avialink/crewcert/handlers"
	"github.com/avialink/crewcert/middleware"
	"github.com/gofiber/fiber/v2"
)

func StaffRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	staff := api.Group("/staff", middleware.Protected())
	staff.Get("", handlers.ListStaff)
	staff.Get("/:staffId", handlers.GetStaff)
	staff.Get("/:staffId/completeness", handlers.GetStaffCompleteness)
	staff.Post("", middleware.HRRequired(), handlers.CreateStaff)
	staff.Put("/:staffId", middleware.HRRequired(), handlers.UpdateStaff)
}
