package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	CertStatusValid   = "valid"
	CertStatusExpired = "expired"
	CertStatusRevoked = "revoked"
)

type Certificate struct {
	ID                uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CertificateNumber string     `gorm:"size:50;not null;unique" json:"certificate_number"`
	StaffID           uuid.UUID  `gorm:"type:uuid;not null;index" json:"staff_id"`
	TrainingMasterID  *uuid.UUID `gorm:"type:uuid" json:"training_master_id"`
	IssueDate         time.Time  `gorm:"type:date;not null" json:"issue_date"`
	ExpiryDate        *time.Time `gorm:"type:date" json:"expiry_date"`
	Status            string     `gorm:"size:20;not null;default:'valid'" json:"status"`
	Notes             *string    `gorm:"type:text" json:"notes"`
	IssuedBy          *string    `gorm:"size:255" json:"issued_by"`
	CertificateURL    *string    `gorm:"type:text" json:"certificate_url"`
	RenewalScheduled  bool       `gorm:"not null;default:false" json:"renewal_scheduled"`

	Staff    Staff           `gorm:"foreignkey:StaffID" json:"staff,omitempty"`
	Training *TrainingMaster `gorm:"foreignkey:TrainingMasterID" json:"training,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
