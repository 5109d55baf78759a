package models

import (
	"time"

	"github.com/google/uuid"
)

type Staff struct {
	ID             uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	EmployeeNumber string     `gorm:"size:50;not null;unique" json:"employee_number"`
	FullName       string     `gorm:"size:255;not null" json:"full_name"`
	Email          *string    `gorm:"size:255" json:"email"`
	Phone          *string    `gorm:"size:50" json:"phone"`
	Status         string     `gorm:"size:20;not null;default:'active'" json:"status"`
	HireDate       *time.Time `gorm:"type:date" json:"hire_date"`

	PositionID *uuid.UUID       `gorm:"type:uuid" json:"position_id"`
	Position   *WorkingPosition `gorm:"foreignkey:PositionID" json:"position,omitempty"`

	Certificates []Certificate `gorm:"foreignkey:StaffID" json:"certificates,omitempty"`
	Instructor   *Instructor   `gorm:"foreignkey:StaffID" json:"instructor,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
