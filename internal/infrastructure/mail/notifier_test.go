package mail

import (
	"context"
	"net/smtp"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"student-portal.backend/internal/config"
	"student-portal.backend/internal/domain/services"
	"student-portal.backend/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init("production")
	os.Exit(m.Run())
}

type capturedMail struct {
	addr string
	auth smtp.Auth
	from string
	to   []string
	msg  string
}

func captureSendMail(t *testing.T) *capturedMail {
	t.Helper()
	orig := sendMail
	t.Cleanup(func() { sendMail = orig })

	captured := &capturedMail{}
	sendMail = func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error {
		captured.addr = addr
		captured.auth = auth
		captured.from = from
		captured.to = to
		captured.msg = string(msg)
		return nil
	}
	return captured
}

func testConfig() config.SMTPConfig {
	return config.SMTPConfig{
		Host:     "smtp.example.com",
		Port:     587,
		From:     "no-reply@example.com",
		FromName: "Student Portal",
	}
}

func TestSend_RegistrationReceived(t *testing.T) {
	captured := captureSendMail(t)
	n := NewSMTPNotifier(testConfig())

	n.Send(context.Background(), services.NotificationRegistrationReceived, "jane@example.com", services.NotificationPayload{
		FullName: "Jane Doe",
	})

	assert.Equal(t, "smtp.example.com:587", captured.addr)
	assert.Equal(t, "no-reply@example.com", captured.from)
	assert.Equal(t, []string{"jane@example.com"}, captured.to)
	assert.Contains(t, captured.msg, "Subject: Registration Received")
	assert.Contains(t, captured.msg, "Jane Doe")
	assert.Nil(t, captured.auth)
}

func TestSend_ApprovedCarriesCredentials(t *testing.T) {
	captured := captureSendMail(t)
	n := NewSMTPNotifier(testConfig())

	n.Send(context.Background(), services.NotificationApproved, "jane@example.com", services.NotificationPayload{
		TempPassword: "Temp1234XYZ",
	})

	assert.Contains(t, captured.msg, "Subject: Account Approved - Credentials")
	assert.Contains(t, captured.msg, "jane@example.com")
	assert.Contains(t, captured.msg, "Temp1234XYZ")
	assert.Contains(t, captured.msg, "change your password")
}

func TestSend_RejectedWithAndWithoutReason(t *testing.T) {
	captured := captureSendMail(t)
	n := NewSMTPNotifier(testConfig())

	n.Send(context.Background(), services.NotificationRejected, "jane@example.com", services.NotificationPayload{
		Reason: "illegible receipt",
	})
	assert.Contains(t, captured.msg, "illegible receipt")

	n.Send(context.Background(), services.NotificationRejected, "jane@example.com", services.NotificationPayload{})
	assert.Contains(t, captured.msg, defaultRejectionReason)
}

func TestSend_UsesPlainAuthWhenConfigured(t *testing.T) {
	captured := captureSendMail(t)
	cfg := testConfig()
	cfg.Username = "mailer"
	cfg.Password = "mailer-pw"
	n := NewSMTPNotifier(cfg)

	n.Send(context.Background(), services.NotificationRegistrationReceived, "jane@example.com", services.NotificationPayload{})
	require.NotNil(t, captured.auth)
}

func TestSend_UnknownKindSendsNothing(t *testing.T) {
	captured := captureSendMail(t)
	n := NewSMTPNotifier(testConfig())

	n.Send(context.Background(), services.NotificationKind("carrier_pigeon"), "jane@example.com", services.NotificationPayload{})
	assert.Empty(t, captured.msg)
}

func TestSend_DeliveryFailureIsSwallowed(t *testing.T) {
	orig := sendMail
	t.Cleanup(func() { sendMail = orig })
	sendMail = func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error {
		return assert.AnError
	}

	n := NewSMTPNotifier(testConfig())
	assert.NotPanics(t, func() {
		n.Send(context.Background(), services.NotificationApproved, "jane@example.com", services.NotificationPayload{TempPassword: "x"})
	})
}
