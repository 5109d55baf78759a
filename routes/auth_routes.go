package routes

import (
	"github.com/avialink/crewcert/handlers"
	"github.com/avialink/crewcert/middleware"
	"github.com/gofiber/fiber/v2"
)

func AuthRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	api.Post("/auth/login", handlers.LoginUser)

	auth := api.Group("/auth", middleware.Protected())
	auth.Post("/register", middleware.AdminRequired(), handlers.RegisterUser)
	auth.Get("/me", handlers.GetMe)
}
