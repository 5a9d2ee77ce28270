package usecase

import (
	"context"
	"log/slog"

	"github.com/upasthit/upasthit-api/internal/identity/entity"
	"github.com/upasthit/upasthit-api/internal/pkg/goerror"
)

type OtpSendInput struct {
	Role       string `validate:"required,oneof=student teacher"`
	Identifier string `validate:"required,max=100"`
	Purpose    string `validate:"omitempty,oneof=password_reset email_verification"`
}

type OtpSendOutput struct {
	ExpiresInMinute int
}

func (s *Usecase) OtpSend(ctx context.Context, in OtpSendInput) (*OtpSendOutput, error) {
	ctx, span := s.startSpan(ctx, "OtpSend")
	defer span.End()

	return s.issueChallenge(ctx, in)
}

// issueChallenge generates a fresh code and installs it as the subject's only
// active challenge. Any outstanding code for the same subject is superseded,
// so at most one code can ever verify.
func (s *Usecase) issueChallenge(ctx context.Context, in OtpSendInput) (*OtpSendOutput, error) {
	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	purpose := entity.ParseOtpPurpose(in.Purpose)
	if purpose == entity.OtpPurposeUnknown {
		purpose = entity.OtpPurposePasswordReset
	}

	role := entity.ParseRole(in.Role)
	subject, err := s.resolveSubject(ctx, role, in.Identifier)
	if err != nil {
		return nil, err
	}

	code, err := s.otp.Generate()
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate otp code", "subject_id", subject.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	codeHash, err := s.otpHash.Hash(code)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash otp code", "subject_id", subject.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	ttlMinute := int(s.cfg.GetMinute("modules.identity.otp_ttl_minutes").Minutes())
	now := s.clock.Now()

	if err := s.repoDB.UpsertOtpChallenge(ctx, entity.OtpChallenge{
		ID:        s.uid.Generate(),
		SubjectID: subject.ID,
		Role:      role,
		Purpose:   purpose,
		CodeHash:  string(codeHash),
		IssuedAt:  now,
		ExpiresAt: now.Add(s.cfg.GetMinute("modules.identity.otp_ttl_minutes")),
	}); err != nil {
		slog.ErrorContext(ctx, "failed to repo upsert otp challenge", "subject_id", subject.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	// delivery is decoupled; a broker hiccup must not fail the request
	if err := s.repoMessaging.PublishOtpIssued(ctx, OtpIssuedEvent{
		SubjectID: subject.ID,
		Role:      role.String(),
		Email:     subject.Email,
		Name:      subject.Name,
		Code:      code,
		Purpose:   purpose.String(),
		TTLMinute: ttlMinute,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to publish otp issued event", "subject_id", subject.ID, "error", err)
	}

	return &OtpSendOutput{ExpiresInMinute: ttlMinute}, nil
}
