package routes

import (
	"github.com/avialink/crewcert/handlers"
	"github.com/avialink/crewcert/middleware"
	"github.com/gofiber/fiber/v2"
)

func ReportRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	reports := api.Group("/reports", middleware.Protected())
	reports.Get("/expiry", handlers.GetExpiryStats)
	reports.Get("/expiry/list", handlers.ListExpiring)
	reports.Get("/expiry/export", handlers.ExportExpiringCSV)
	reports.Get("/schedule/:year", handlers.GetYearlySchedule)
	reports.Get("/schedule/:year/export", handlers.ExportScheduleCSV)
}
