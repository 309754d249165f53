package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/knockandknow/backend/handlers"
	"github.com/knockandknow/backend/middleware"
)

// InternalRoutes carries the scoring service's write path; it is guarded by
// a shared service key instead of a user session.
func InternalRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	internal := api.Group("/internal", middleware.ServiceKeyRequired())
	internal.Post("/quizzes/:quizId/participants", handlers.IngestParticipant)
}
