package routes

import (
	"github.com/avialink/crewcert/handlers"
	"github.com/avialink/crewcert/middleware"
	"github.com/gofiber/fiber/v2"
)

func CertificateRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	certificates := api.Group("/certificates", middleware.Protected())
	certificates.Get("", handlers.ListCertificates)
	certificates.Get("/:certificateId", handlers.GetCertificate)
	certificates.Get("/:certificateId/pdf", handlers.GetCertificatePDF)
	certificates.Post("", middleware.HRRequired(), handlers.IssueCertificate)
	certificates.Put("/:certificateId", middleware.HRRequired(), handlers.UpdateCertificate)
	certificates.Post("/:certificateId/revoke", middleware.HRRequired(), handlers.RevokeCertificate)
}
