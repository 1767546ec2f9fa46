package mail

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"go.uber.org/zap"
	"student-portal.backend/internal/config"
	"student-portal.backend/internal/domain/services"
	"student-portal.backend/pkg/logger"
)

const defaultRejectionReason = "Your payment proof could not be verified."

var sendMail = smtp.SendMail

// SMTPNotifier delivers notifications over SMTP. It is best-effort by
// contract: failures are logged and swallowed, never returned to the
// workflows that trigger a send. The plaintext temporary password appears
// only in the message body, never in logs.
type SMTPNotifier struct {
	cfg config.SMTPConfig
}

// NewSMTPNotifier creates a new SMTP notifier
func NewSMTPNotifier(cfg config.SMTPConfig) *SMTPNotifier {
	return &SMTPNotifier{cfg: cfg}
}

// Send renders and delivers the notification for the given kind
func (n *SMTPNotifier) Send(ctx context.Context, kind services.NotificationKind, recipient string, payload services.NotificationPayload) {
	subject, body := n.render(kind, recipient, payload)
	if subject == "" {
		logger.Warn(ctx, "Unknown notification kind", zap.String("kind", string(kind)))
		return
	}

	msg := strings.Join([]string{
		fmt.Sprintf("From: %s <%s>", n.cfg.FromName, n.cfg.From),
		fmt.Sprintf("To: %s", recipient),
		fmt.Sprintf("Subject: %s", subject),
		"MIME-Version: 1.0",
		`Content-Type: text/html; charset="UTF-8"`,
		"",
		body,
	}, "\r\n")

	var auth smtp.Auth
	if n.cfg.Username != "" {
		auth = smtp.PlainAuth("", n.cfg.Username, n.cfg.Password, n.cfg.Host)
	}

	if err := sendMail(n.cfg.Addr(), auth, n.cfg.From, []string{recipient}, []byte(msg)); err != nil {
		logger.Error(ctx, "Failed to send notification",
			zap.String("kind", string(kind)),
			zap.String("recipient", recipient),
			zap.Error(err),
		)
		return
	}

	logger.Info(ctx, "Notification sent",
		zap.String("kind", string(kind)),
		zap.String("recipient", recipient),
	)
}

func (n *SMTPNotifier) render(kind services.NotificationKind, recipient string, payload services.NotificationPayload) (subject, body string) {
	switch kind {
	case services.NotificationRegistrationReceived:
		return "Registration Received",
			fmt.Sprintf(`<h1>Thank you, %s!</h1>
<p>We received your registration and payment proof.</p>
<p>Your account will be activated once an administrator verifies the payment.</p>`,
				payload.FullName)

	case services.NotificationApproved:
		return "Account Approved - Credentials",
			fmt.Sprintf(`<h1>Welcome!</h1>
<p>Your account has been approved.</p>
<p><b>Username:</b> %s</p>
<p><b>Temporary Password:</b> %s</p>
<p>Please login and change your password immediately.</p>`,
				recipient, payload.TempPassword)

	case services.NotificationRejected:
		reason := payload.Reason
		if reason == "" {
			reason = defaultRejectionReason
		}
		return "Registration Rejected",
			fmt.Sprintf(`<h1>Registration Update</h1>
<p>Unfortunately your registration was not approved.</p>
<p><b>Reason:</b> %s</p>`,
				reason)
	}
	return "", ""
}
