package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoomStatusPending    = "pending"
	RoomStatusInProgress = "inProgress"
	RoomStatusCompleted  = "completed"
)

type Room struct {
	ID               uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	QuizID           uuid.UUID  `gorm:"type:uuid;not null;index" json:"quiz_id"`
	Name             string     `gorm:"size:255;not null" json:"name"`
	Capacity         int        `gorm:"not null;default:1" json:"capacity"`
	TimeLimitMinutes int        `gorm:"not null;default:60" json:"time_limit_minutes"`
	Passcode         string     `gorm:"size:255;not null" json:"passcode"`
	JoinCode         string     `gorm:"size:10;not null;unique" json:"join_code"`
	Status           string     `gorm:"size:20;not null;default:'pending'" json:"status"`
	StartedAt        *time.Time `json:"started_at"`
}
