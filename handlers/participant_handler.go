package handlers

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/knockandknow/backend/database"
	"github.com/knockandknow/backend/models"
	"github.com/knockandknow/backend/services"
	"github.com/knockandknow/backend/websocket"
)

type IngestParticipantRequest struct {
	ID          *string   `json:"id"`
	Name        string    `json:"name" validate:"required"`
	Score       int       `json:"score" validate:"min=0"`
	Avatar      string    `json:"avatar"`
	CompletedAt time.Time `json:"completed_at"`
}

// IngestParticipant is the scoring service's write path. It upserts one
// participant record, drops the cached scoreboard and pushes the recomputed
// ranking to subscribed review sessions.
func IngestParticipant(c *fiber.Ctx) error {
	quizID, err := uuid.Parse(c.Params("quizId"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Quiz not found"})
	}

	var quiz models.Quiz
	if err := database.DB.First(&quiz, "id = ?", quizID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Quiz not found"})
	}

	var req IngestParticipantRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	completedAt := req.CompletedAt
	if completedAt.IsZero() {
		completedAt = time.Now()
	}

	var participant models.Participant
	created := false
	if req.ID != nil {
		participantID, err := uuid.Parse(*req.ID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid participant id"})
		}
		err = database.DB.First(&participant, "id = ? AND quiz_id = ?", participantID, quizID).Error
		if err == nil {
			participant.DisplayName = req.Name
			participant.Score = req.Score
			participant.Avatar = req.Avatar
			participant.CompletedAt = completedAt
			if err := database.DB.Save(&participant).Error; err != nil {
				log.Printf("Error updating participant %s: %v", participantID, err)
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to record participant"})
			}
		} else {
			participant = models.Participant{
				ID:          participantID,
				QuizID:      quizID,
				DisplayName: req.Name,
				Score:       req.Score,
				Avatar:      req.Avatar,
				CompletedAt: completedAt,
			}
			created = true
		}
	} else {
		participant = models.Participant{
			QuizID:      quizID,
			DisplayName: req.Name,
			Score:       req.Score,
			Avatar:      req.Avatar,
			CompletedAt: completedAt,
		}
		created = true
	}

	if created {
		if err := database.DB.Create(&participant).Error; err != nil {
			log.Printf("Error creating participant for quiz %s: %v", quizID, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to record participant"})
		}
	}

	ScoreboardCache.Invalidate(c.Context(), quizID.String())

	participants, err := fetchParticipants(quizID.String())
	if err != nil {
		log.Printf("Error refreshing scoreboard for quiz %s: %v", quizID, err)
	} else {
		ranked := services.Rank(participants)
		ScoreboardCache.Set(c.Context(), quizID.String(), ranked)
		websocket.Broadcast <- &websocket.ScoreboardUpdate{QuizID: quizID, Scoreboard: ranked}
	}

	status := fiber.StatusOK
	if created {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(participant)
}
