package services

import (
	"context"
	"fmt"

	"github.com/jarahq/jara-backend/internal/clients/sendgrid"
	"github.com/jarahq/jara-backend/internal/logger"
	"github.com/jarahq/jara-backend/internal/types"
)

// Mailer delivers one-time codes to users. The auth service never fails a
// request on delivery problems alone; callers log and move on.
type Mailer interface {
	SendOTP(ctx context.Context, email, name, code string, purpose types.OTPPurpose) error
}

// NewMailerFromEnv returns the SendGrid-backed mailer when SENDGRID_API_KEY
// is configured and a log-only development mailer otherwise, so local stacks
// work without an email account.
func NewMailerFromEnv(log *logger.Logger) (Mailer, error) {
	client, err := sendgrid.NewFromEnv(log)
	if err != nil {
		log.Warn("SendGrid not configured, one-time codes will be logged instead of emailed", "error", err)
		return &logMailer{log: log.With("service", "Mailer")}, nil
	}
	return &sendgridMailer{log: log.With("service", "Mailer"), client: client}, nil
}

type sendgridMailer struct {
	log    *logger.Logger
	client sendgrid.Client
}

func (m *sendgridMailer) SendOTP(ctx context.Context, email, name, code string, purpose types.OTPPurpose) error {
	subject := "Your verification code"
	intro := "Use this code to verify your email address."
	if purpose == types.OTPPurposeRecovery {
		subject = "Your password reset code"
		intro = "Use this code to reset your password. If you did not request a reset you can ignore this email."
	}
	return m.client.Send(ctx, sendgrid.SendEmailRequest{
		To:      []sendgrid.EmailAddress{{Email: email, Name: name}},
		Subject: subject,
		Text:    fmt.Sprintf("%s\n\nYour code: %s\n\nThe code expires in 10 minutes.", intro, code),
	})
}

type logMailer struct {
	log *logger.Logger
}

func (m *logMailer) SendOTP(ctx context.Context, email, name, code string, purpose types.OTPPurpose) error {
	m.log.Info("One-time code issued (dev mailer)", "purpose", string(purpose), "code", code)
	return nil
}
