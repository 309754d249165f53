package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	QuizStatusDraft     = "draft"
	QuizStatusPublished = "published"
	QuizStatusCompleted = "completed"
)

type Quiz struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Status      string    `gorm:"size:20;not null;default:'draft'" json:"status"`

	StartDateTime time.Time `gorm:"not null" json:"start_date_time"`
	EndDateTime   time.Time `gorm:"not null" json:"end_date_time"`

	TeacherID uuid.UUID `gorm:"type:uuid;not null;index" json:"teacher_id"`

	ExamPhases []ExamPhase `gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE" json:"exam_phases"`
	Questions  []Question  `gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE" json:"questions"`
	Rooms      []Room      `gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE" json:"rooms"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
