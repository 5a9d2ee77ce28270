package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/upasthit/upasthit-api/internal/identity/entity"
	"github.com/upasthit/upasthit-api/internal/pkg/goerror"
)

type OtpVerifyInput struct {
	Role       string `validate:"required,oneof=student teacher"`
	Identifier string `validate:"required,max=100"`
	Code       string `validate:"required,len=6,numeric"`
}

type OtpVerifyOutput struct {
	SubjectID int64
	Role      string
	Purpose   string
}

func (s *Usecase) OtpVerify(ctx context.Context, in OtpVerifyInput) (*OtpVerifyOutput, error) {
	ctx, span := s.startSpan(ctx, "OtpVerify")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	identity, err := s.verifyAndConsume(ctx, entity.ParseRole(in.Role), in.Identifier, in.Code)
	if err != nil {
		return nil, err
	}

	return &OtpVerifyOutput{
		SubjectID: identity.SubjectID,
		Role:      identity.Role.String(),
		Purpose:   identity.Purpose.String(),
	}, nil
}

// verifyAndConsume checks the code against the subject's active challenge.
// Expired rows are deleted on sight (lazy expiry), a match consumes the row
// so the code is single-use, and a mismatch leaves the row untouched.
func (s *Usecase) verifyAndConsume(ctx context.Context, role entity.Role, identifier, code string) (*entity.VerifiedIdentity, error) {
	subject, err := s.resolveSubject(ctx, role, identifier)
	if err != nil {
		return nil, err
	}

	challenge, err := s.repoDB.GetOtpChallenge(ctx, subject.ID, role)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "no active otp challenge", "subject_id", subject.ID, "role", role.String())
		return nil, goerror.NewBusiness("no active verification code", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get otp challenge", "subject_id", subject.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if challenge.Expired(s.clock.Now()) {
		if err := s.repoDB.DeleteOtpChallenge(ctx, challenge.ID); err != nil {
			slog.ErrorContext(ctx, "failed to repo delete expired otp challenge", "challenge_id", challenge.ID, "error", err)
			return nil, goerror.NewServer(err)
		}

		slog.WarnContext(ctx, "otp challenge expired", "subject_id", subject.ID, "role", role.String())
		return nil, goerror.NewBusiness("verification code expired", goerror.CodeUnauthorized)
	}

	if !s.otpHash.Verify(challenge.CodeHash, code) {
		slog.WarnContext(ctx, "otp code does not match", "subject_id", subject.ID, "role", role.String())
		return nil, goerror.NewBusiness("verification code is incorrect", goerror.CodeUnauthorized)
	}

	if err := s.repoDB.DeleteOtpChallenge(ctx, challenge.ID); err != nil {
		slog.ErrorContext(ctx, "failed to repo consume otp challenge", "challenge_id", challenge.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &entity.VerifiedIdentity{
		SubjectID: subject.ID,
		Role:      role,
		Purpose:   challenge.Purpose,
	}, nil
}
