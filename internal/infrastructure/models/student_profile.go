package models

import (
	"github.com/google/uuid"
)

type StudentProfile struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	FirstName string    `gorm:"type:varchar(100);not null"`
	LastName  string    `gorm:"type:varchar(100);not null"`
	Phone     string    `gorm:"type:varchar(50)"`
	Location  string    `gorm:"type:varchar(255)"`
}
