package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/knockandknow/backend/cache"
	"github.com/knockandknow/backend/database"
	"github.com/knockandknow/backend/models"
	"github.com/knockandknow/backend/services"
)

// ScoreboardCache is wired in from main; nil disables caching.
var ScoreboardCache *cache.ScoreboardCache

func fetchParticipants(quizID string) ([]models.Participant, error) {
	var participants []models.Participant
	err := database.DB.
		Where("quiz_id = ?", quizID).
		Order("score desc").
		Find(&participants).Error
	return participants, err
}

func ListParticipants(c *fiber.Ctx) error {
	quiz, errResp := findOwnedQuiz(c, false)
	if quiz == nil {
		return errResp
	}

	participants, err := fetchParticipants(quiz.ID.String())
	if err != nil {
		log.Printf("Error fetching participants for quiz %s: %v", quiz.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch participants"})
	}

	return c.JSON(participants)
}

func GetScoreboard(c *fiber.Ctx) error {
	quiz, errResp := findOwnedQuiz(c, false)
	if quiz == nil {
		return errResp
	}

	if ranked, ok := ScoreboardCache.Get(c.Context(), quiz.ID.String()); ok {
		return c.JSON(ranked)
	}

	participants, err := fetchParticipants(quiz.ID.String())
	if err != nil {
		log.Printf("Error fetching scoreboard for quiz %s: %v", quiz.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch scoreboard"})
	}

	ranked := services.Rank(participants)
	ScoreboardCache.Set(c.Context(), quiz.ID.String(), ranked)

	return c.JSON(ranked)
}

func GetQuizStats(c *fiber.Ctx) error {
	quiz, errResp := findOwnedQuiz(c, true)
	if quiz == nil {
		return errResp
	}

	participants, err := fetchParticipants(quiz.ID.String())
	if err != nil {
		log.Printf("Error fetching stats for quiz %s: %v", quiz.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch quiz statistics"})
	}

	return c.JSON(services.ComputeStats(participants, len(quiz.Questions)))
}

// GetResultsReport renders the results report PDF, uploads it and returns the
// download URL. Report generation is synchronous; the review view shows a
// spinner while it runs.
func GetResultsReport(c *fiber.Ctx) error {
	quiz, errResp := findOwnedQuiz(c, true)
	if quiz == nil {
		return errResp
	}

	participants, err := fetchParticipants(quiz.ID.String())
	if err != nil {
		log.Printf("Error fetching report data for quiz %s: %v", quiz.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch report data"})
	}

	reportURL, err := services.GenerateResultsReport(*quiz, participants)
	if err != nil {
		log.Printf("Error generating report for quiz %s: %v", quiz.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to generate report"})
	}

	return c.JSON(fiber.Map{"report_url": reportURL})
}

// ScoreboardSocketGate runs before the websocket upgrade: it verifies the
// requester owns the quiz and stashes the quiz id for the hub.
func ScoreboardSocketGate(c *fiber.Ctx) error {
	quiz, errResp := findOwnedQuiz(c, false)
	if quiz == nil {
		return errResp
	}

	c.Locals("quiz_id", quiz.ID)
	return c.Next()
}
