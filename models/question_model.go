package models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Question mirrors the type of its owning phase. A trueFalse question stores
// its correct answer as "true"/"false"; the form layer exposes a real boolean.
type Question struct {
	ID               uuid.UUID                   `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	QuizID           uuid.UUID                   `gorm:"type:uuid;not null;index" json:"quiz_id"`
	Type             string                      `gorm:"size:20;not null;default:'multipleChoice'" json:"type"`
	Text             string                      `gorm:"type:text;not null" json:"text"`
	Options          datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"options"`
	CorrectAnswer    string                      `gorm:"type:text;not null" json:"correct_answer"`
	TimeLimitSeconds int                         `gorm:"not null;default:30" json:"time_limit_seconds"`
	Phase            int                         `gorm:"not null;default:1" json:"phase"`
}
