package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/upasthit/upasthit-api/internal/pkg/config"
	"github.com/upasthit/upasthit-api/internal/pkg/goerror"
	"github.com/upasthit/upasthit-api/internal/pkg/instrument"
	"github.com/upasthit/upasthit-api/internal/pkg/mail"
	"github.com/upasthit/upasthit-api/internal/pkg/validator"
)

type fakeMail struct {
	sent      []mail.Message
	failFirst int // number of leading attempts that fail
	attempts  int
}

func (f *fakeMail) Send(_ context.Context, msg mail.Message) error {
	f.attempts++
	if f.attempts <= f.failFirst {
		return errors.New("smtp unavailable")
	}
	f.sent = append(f.sent, msg)
	return nil
}

func (f *fakeMail) Close() error { return nil }

func newTestUsecase(t *testing.T, mailer *fakeMail) *Usecase {
	t.Helper()

	v, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("failed to build validator: %v", err)
	}

	cfg, err := config.NewViperFromBytes("yaml", []byte("{}"))
	if err != nil {
		t.Fatalf("failed to build config: %v", err)
	}

	return New(Dependency{
		Mailer:     mailer,
		Validator:  v,
		Config:     cfg,
		Instrument: instrument.NewNoop(),
	})
}

func validInput() NotifyOtpIssuedInput {
	return NotifyOtpIssuedInput{
		Email:     "aisha@college.test",
		Name:      "Aisha",
		Code:      "482915",
		Purpose:   "password_reset",
		TTLMinute: 5,
	}
}

func TestNotifyOtpIssued(t *testing.T) {
	// Arrange
	mailer := &fakeMail{}
	uc := newTestUsecase(t, mailer)

	// Act
	err := uc.NotifyOtpIssued(context.Background(), validInput())

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mailer.sent) != 1 {
		t.Fatalf("sent %d mails, want 1", len(mailer.sent))
	}

	msg := mailer.sent[0]
	if msg.To[0] != "aisha@college.test" {
		t.Fatalf("to = %q", msg.To[0])
	}
	if msg.Subject != "Your password reset code" {
		t.Fatalf("subject = %q", msg.Subject)
	}
	if !strings.Contains(msg.HTMLBody, "482915") || !strings.Contains(msg.TextBody, "482915") {
		t.Fatal("both bodies must carry the code")
	}
	if !strings.Contains(msg.TextBody, "5 minutes") {
		t.Fatalf("text body must state the expiry: %q", msg.TextBody)
	}
}

func TestNotifyOtpIssuedVerificationSubject(t *testing.T) {
	// Arrange
	mailer := &fakeMail{}
	uc := newTestUsecase(t, mailer)

	in := validInput()
	in.Purpose = "email_verification"

	// Act
	err := uc.NotifyOtpIssued(context.Background(), in)

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mailer.sent[0].Subject != "Verify your email address" {
		t.Fatalf("subject = %q", mailer.sent[0].Subject)
	}
}

func TestNotifyOtpIssuedRetriesTransientFailures(t *testing.T) {
	// Arrange: two failing attempts, then success
	mailer := &fakeMail{failFirst: 2}
	uc := newTestUsecase(t, mailer)

	// Act
	err := uc.NotifyOtpIssued(context.Background(), validInput())

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mailer.attempts != 3 {
		t.Fatalf("attempts = %d, want 3", mailer.attempts)
	}
	if len(mailer.sent) != 1 {
		t.Fatalf("sent %d mails, want 1", len(mailer.sent))
	}
}

func TestNotifyOtpIssuedGivesUpEventually(t *testing.T) {
	// Arrange: every attempt fails
	mailer := &fakeMail{failFirst: 10}
	uc := newTestUsecase(t, mailer)

	// Act
	err := uc.NotifyOtpIssued(context.Background(), validInput())

	// Assert
	if err == nil {
		t.Fatal("expected an error")
	}
	if mailer.attempts != 4 {
		t.Fatalf("attempts = %d, want 4", mailer.attempts)
	}
}

func TestNotifyOtpIssuedValidation(t *testing.T) {
	// Arrange
	mailer := &fakeMail{}
	uc := newTestUsecase(t, mailer)

	in := validInput()
	in.Email = "not-an-email"

	// Act
	err := uc.NotifyOtpIssued(context.Background(), in)

	// Assert
	var gerr *goerror.Error
	if !errors.As(err, &gerr) || gerr.Code() != goerror.CodeInvalidInput {
		t.Fatalf("expected invalid input, got %v", err)
	}
	if mailer.attempts != 0 {
		t.Fatal("invalid input must not reach the mailer")
	}
}
