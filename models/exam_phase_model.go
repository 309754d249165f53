package models

import "github.com/google/uuid"

const (
	QuestionTypeMultipleChoice = "multipleChoice"
	QuestionTypeTrueFalse      = "trueFalse"
)

// ExamPhase groups questions of one answer type. Questions reference their
// phase by 1-based position, not by id, so positions are reassigned on save.
type ExamPhase struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	QuizID           uuid.UUID `gorm:"type:uuid;not null;index" json:"quiz_id"`
	Position         int       `gorm:"not null" json:"position"`
	Type             string    `gorm:"size:20;not null;default:'multipleChoice'" json:"type"`
	Instructions     string    `gorm:"type:text" json:"instructions"`
	TimeLimitSeconds int       `gorm:"not null;default:30" json:"time_limit_seconds"`
}
