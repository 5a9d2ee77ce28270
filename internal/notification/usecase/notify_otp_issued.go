package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sethvargo/go-retry"
	"github.com/upasthit/upasthit-api/internal/pkg/goerror"
	"github.com/upasthit/upasthit-api/internal/pkg/mail"
)

type NotifyOtpIssuedInput struct {
	Email     string `validate:"required,email"`
	Name      string `validate:"required,max=100"`
	Code      string `validate:"required,len=6,numeric"`
	Purpose   string `validate:"required,oneof=password_reset email_verification"`
	TTLMinute int    `validate:"required,min=1"`
}

// NotifyOtpIssued emails a freshly issued verification code. Delivery is
// retried with backoff; SMTP blips must not cost the user their code.
func (s *Usecase) NotifyOtpIssued(ctx context.Context, in NotifyOtpIssuedInput) error {
	ctx, span := s.startSpan(ctx, "NotifyOtpIssued")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	subject := "Verify your email address"
	intro := "Use this code to verify your email address."
	if in.Purpose == "password_reset" {
		subject = "Your password reset code"
		intro = "Use this code to reset your password. If you did not request this, ignore this email."
	}

	msg := mail.Message{
		To:      []string{in.Email},
		Subject: subject,
		TextBody: fmt.Sprintf("Hi %s,\n\n%s\n\nCode: %s\n\nThe code expires in %d minutes.\n",
			in.Name, intro, in.Code, in.TTLMinute),
		HTMLBody: fmt.Sprintf(
			`<p>Hi %s,</p><p>%s</p><p style="font-size:24px;letter-spacing:4px"><strong>%s</strong></p><p>The code expires in %d minutes.</p>`,
			in.Name, intro, in.Code, in.TTLMinute),
	}

	backoff := retry.WithMaxRetries(3, retry.NewExponential(500*time.Millisecond))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := s.mailer.Send(ctx, msg); err != nil {
			slog.WarnContext(ctx, "mail send attempt failed", "purpose", in.Purpose, "error", err)
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to send verification code email", "purpose", in.Purpose, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}
