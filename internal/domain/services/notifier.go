package services

import "context"

// NotificationKind identifies the outbound notification templates
type NotificationKind string

const (
	NotificationRegistrationReceived NotificationKind = "registration_received"
	NotificationApproved             NotificationKind = "approved"
	NotificationRejected             NotificationKind = "rejected"
)

// NotificationPayload carries template data. TempPassword is only set for
// approval notifications and must never be persisted or logged.
type NotificationPayload struct {
	FullName     string
	TempPassword string
	Reason       string
}

// Notifier delivers notifications to applicants. Implementations are
// best-effort: delivery failures are logged by the implementation and never
// surfaced to the workflows that trigger them.
type Notifier interface {
	Send(ctx context.Context, kind NotificationKind, recipient string, payload NotificationPayload)
}
