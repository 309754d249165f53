package jobs

import (
	"log"
	"time"

	"github.com/knockandknow/backend/database"
	"github.com/knockandknow/backend/models"
)

// PublishScheduledQuizzes moves drafts whose start time has passed into the
// published state. Drafts without rooms are skipped; they are not joinable.
func PublishScheduledQuizzes() {
	now := time.Now()

	var due []models.Quiz
	err := database.DB.
		Joins("JOIN rooms ON rooms.quiz_id = quizzes.id").
		Where("quizzes.status = ? AND quizzes.start_date_time <= ?", models.QuizStatusDraft, now).
		Distinct("quizzes.*").
		Find(&due).Error
	if err != nil {
		log.Printf("Error checking for publishable quizzes: %v", err)
		return
	}

	for _, quiz := range due {
		quiz.Status = models.QuizStatusPublished
		database.DB.Save(&quiz)
	}

	if len(due) > 0 {
		log.Printf("Published %d scheduled quiz(es).", len(due))
	}
}

// CompleteExpiredQuizzes closes published quizzes whose end time has passed.
func CompleteExpiredQuizzes() {
	now := time.Now()

	result := database.DB.
		Model(&models.Quiz{}).
		Where("status = ? AND end_date_time < ?", models.QuizStatusPublished, now).
		Update("status", models.QuizStatusCompleted)
	if result.Error != nil {
		log.Printf("Error completing expired quizzes: %v", result.Error)
		return
	}

	if result.RowsAffected > 0 {
		log.Printf("Marked %d quiz(es) as completed.", result.RowsAffected)
	}
}

// CloseExpiredRooms completes rooms whose time limit has elapsed since start.
func CloseExpiredRooms() {
	now := time.Now()

	var rooms []models.Room
	err := database.DB.
		Where("status = ? AND started_at IS NOT NULL", models.RoomStatusInProgress).
		Find(&rooms).Error
	if err != nil {
		log.Printf("Error checking for expired rooms: %v", err)
		return
	}

	closed := 0
	for _, room := range rooms {
		deadline := room.StartedAt.Add(time.Duration(room.TimeLimitMinutes) * time.Minute)
		if deadline.After(now) {
			continue
		}
		room.Status = models.RoomStatusCompleted
		database.DB.Save(&room)
		closed++
	}

	if closed > 0 {
		log.Printf("Closed %d expired room(s).", closed)
	}
}
