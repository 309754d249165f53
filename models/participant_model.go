package models

import (
	"time"

	"github.com/google/uuid"
)

// Participant records are written only by the scoring service through the
// internal ingest endpoint. Teacher-facing APIs read them, never mutate them.
type Participant struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	QuizID      uuid.UUID `gorm:"type:uuid;not null;index" json:"quiz_id"`
	DisplayName string    `gorm:"size:255;not null" json:"name"`
	Score       int       `gorm:"not null;default:0" json:"score"`
	Avatar      string    `gorm:"size:255" json:"avatar"`
	CompletedAt time.Time `json:"completed_at"`
}
