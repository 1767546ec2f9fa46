package models

import (
	"time"

	"github.com/google/uuid"
)

type PaymentProof struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID          uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	FileLocator     string    `gorm:"type:varchar(1024);not null"`
	Status          string    `gorm:"type:varchar(50);not null;default:'pending';index"`
	RejectionReason *string   `gorm:"type:varchar(1024)"`
	SubmittedAt     time.Time
	ReviewedAt      *time.Time
}
