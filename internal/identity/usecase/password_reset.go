package usecase

import (
	"context"
	"log/slog"

	"github.com/upasthit/upasthit-api/internal/identity/entity"
	"github.com/upasthit/upasthit-api/internal/pkg/goerror"
)

type PasswordResetInput struct {
	Role        string `validate:"required,oneof=student teacher"`
	Identifier  string `validate:"required,max=100"`
	Code        string `validate:"required,len=6,numeric"`
	NewPassword string `validate:"required,password"`
}

// PasswordReset proves possession of the active code and replaces the
// credential in the same request. The code is consumed even when the
// password update later fails; the caller requests a fresh one.
func (s *Usecase) PasswordReset(ctx context.Context, in PasswordResetInput) error {
	ctx, span := s.startSpan(ctx, "PasswordReset")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	identity, err := s.verifyAndConsume(ctx, entity.ParseRole(in.Role), in.Identifier, in.Code)
	if err != nil {
		return err
	}

	newHash, err := s.bcrypt.Hash(in.NewPassword)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash new password", "subject_id", identity.SubjectID, "error", err)
		return goerror.NewServer(err)
	}

	if err := s.repoDB.UpdatePassword(ctx, identity.SubjectID, identity.Role, string(newHash)); err != nil {
		slog.ErrorContext(ctx, "failed to repo update password", "subject_id", identity.SubjectID, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}
