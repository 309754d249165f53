package routes

import (
	contribws "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/knockandknow/backend/handlers"
	"github.com/knockandknow/backend/middleware"
	"github.com/knockandknow/backend/websocket"
)

func ResultsRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	results := api.Group("/quizzes/:quizId", middleware.Protected(), middleware.TeacherRequired())
	results.Get("/participants", handlers.ListParticipants)
	results.Get("/scoreboard", handlers.GetScoreboard)
	results.Get("/stats", handlers.GetQuizStats)
	results.Get("/report", handlers.GetResultsReport)

	ws := api.Group("/ws/quizzes/:quizId", middleware.Protected(), middleware.TeacherRequired())
	ws.Get("/scoreboard", handlers.ScoreboardSocketGate, contribws.New(websocket.ServeScoreboard))
}
