package entities

import "github.com/google/uuid"

// StudentProfile holds the applicant's personal data. It is created once at
// registration and never mutated afterwards.
type StudentProfile struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Phone     string    `json:"phone"`
	Location  string    `json:"location"`
}

// RegisterInput represents the applicant's registration form. The payment
// proof file itself travels separately as a stream.
type RegisterInput struct {
	Email     string `form:"email" binding:"required,email"`
	FirstName string `form:"first_name" binding:"required"`
	LastName  string `form:"last_name" binding:"required"`
	Phone     string `form:"phone" binding:"required"`
	Location  string `form:"location" binding:"required"`
}
