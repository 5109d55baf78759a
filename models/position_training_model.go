package models

import (
	"time"

	"github.com/google/uuid"
)

type PositionTraining struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	PositionID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_position_training" json:"position_id"`
	TrainingMasterID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_position_training" json:"training_master_id"`
	IsMandatory      bool      `gorm:"not null;default:true" json:"is_mandatory"`

	Training TrainingMaster `gorm:"foreignkey:TrainingMasterID" json:"training,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
