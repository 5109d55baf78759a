package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Instructor struct {
	ID              uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	StaffID         uuid.UUID      `gorm:"type:uuid;not null;unique" json:"staff_id"`
	InstructorCode  string         `gorm:"size:50;not null;unique" json:"instructor_code"`
	Specializations datatypes.JSON `gorm:"type:jsonb" json:"specializations"`
	Status          string         `gorm:"size:20;not null;default:'pending'" json:"status"`

	CertificationNumber *string    `gorm:"size:50" json:"certification_number"`
	CertificationExpiry *time.Time `gorm:"type:date" json:"certification_expiry"`

	Staff Staff `gorm:"foreignkey:StaffID" json:"staff,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
