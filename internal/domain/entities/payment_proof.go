package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// PaymentStatus represents the adjudication state of a payment proof.
// Approved and rejected are terminal.
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusApproved PaymentStatus = "approved"
	PaymentStatusRejected PaymentStatus = "rejected"
)

// VerificationAction is the admin decision on a pending proof
type VerificationAction string

const (
	VerificationActionApprove VerificationAction = "approve"
	VerificationActionReject  VerificationAction = "reject"
)

// PaymentProof is the evidence of payment submitted at registration.
// FileLocator is opaque; the storage backend decides its shape.
type PaymentProof struct {
	ID              uuid.UUID     `json:"id"`
	UserID          uuid.UUID     `json:"userId"`
	FileLocator     string        `json:"fileLocator"`
	Status          PaymentStatus `json:"status"`
	RejectionReason null.String   `json:"rejectionReason,omitempty"`
	SubmittedAt     time.Time     `json:"submittedAt"`
	ReviewedAt      null.Time     `json:"reviewedAt,omitempty"`
}

// VerificationInput represents the admin's decision payload
type VerificationInput struct {
	Action string `json:"action" binding:"required"`
	Reason string `json:"reason"`
}

// VerificationResult reports which terminal state the proof reached
type VerificationResult struct {
	UserID  uuid.UUID     `json:"userId"`
	Status  PaymentStatus `json:"status"`
	Message string        `json:"message"`
}
