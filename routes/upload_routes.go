package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/knockandknow/backend/handlers"
	"github.com/knockandknow/backend/middleware"
)

func UploadRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	uploads := api.Group("/uploads", middleware.Protected())
	uploads.Get("/avatar-signature", handlers.GenerateAvatarUploadSignature)
}
