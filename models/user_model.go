package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	FirstName string    `gorm:"size:100;not null" json:"first_name"`
	LastName  string    `gorm:"size:100;not null" json:"last_name"`
	Email     string    `gorm:"size:255;not null;unique" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	Role      string    `gorm:"size:20;not null;default:'student'" json:"role"`
	Avatar    string    `gorm:"size:255;not null" json:"avatar"`
	School    string    `gorm:"size:255;not null" json:"school"`

	EmailVerified               bool       `gorm:"default:false" json:"email_verified"`
	VerifyEmailToken            *string    `gorm:"size:255;unique" json:"-"`
	VerifyEmailTokenExpiresAt   *time.Time `json:"-"`
	ResetPasswordToken          *string    `gorm:"size:255;unique" json:"-"`
	ResetPasswordTokenExpiresAt *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
