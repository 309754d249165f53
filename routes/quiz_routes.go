package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/knockandknow/backend/handlers"
	"github.com/knockandknow/backend/middleware"
)

func QuizRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	quizzes := api.Group("/quizzes", middleware.Protected(), middleware.TeacherRequired())
	quizzes.Post("", handlers.CreateQuiz)
	quizzes.Get("", handlers.ListQuizzes)
	quizzes.Get("/:quizId", handlers.GetQuiz)
	quizzes.Get("/:quizId/form", handlers.GetQuizForm)
	quizzes.Put("/:quizId", handlers.UpdateQuiz)
	quizzes.Delete("/:quizId", handlers.DeleteQuiz)
}
