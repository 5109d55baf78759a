package models

import (
	"time"

	"github.com/google/uuid"
)

type WorkingPosition struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Code       string    `gorm:"size:50;not null;unique" json:"code"`
	Title      string    `gorm:"size:255;not null" json:"title"`
	Department *string   `gorm:"size:255" json:"department"`

	RequiredTrainings []PositionTraining `gorm:"foreignkey:PositionID" json:"required_trainings,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
