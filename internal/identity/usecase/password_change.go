package usecase

import (
	"context"
	"log/slog"

	"github.com/upasthit/upasthit-api/internal/identity/entity"
	"github.com/upasthit/upasthit-api/internal/pkg/goerror"
)

type PasswordChangeInput struct {
	OldPassword string `validate:"required"`
	NewPassword string `validate:"required,password,nefield=OldPassword"`
}

func (s *Usecase) PasswordChange(ctx context.Context, in PasswordChangeInput) error {
	ctx, span := s.startSpan(ctx, "PasswordChange")
	defer span.End()

	clm, err := s.authenticated(ctx)
	if err != nil {
		return err
	}

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	role := entity.ParseRole(clm.Role)
	subject, err := s.repoDB.GetSubjectByID(ctx, clm.SubjectID, role)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get subject", "subject_id", clm.SubjectID, "error", err)
		return goerror.NewServer(err)
	}

	if !s.bcrypt.Verify(subject.PasswordHash, in.OldPassword) {
		slog.WarnContext(ctx, "old password does not match", "subject_id", subject.ID)
		return goerror.NewBusiness("old password is incorrect", goerror.CodeUnauthorized)
	}

	newHash, err := s.bcrypt.Hash(in.NewPassword)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash new password", "subject_id", subject.ID, "error", err)
		return goerror.NewServer(err)
	}

	if err := s.repoDB.UpdatePassword(ctx, subject.ID, role, string(newHash)); err != nil {
		slog.ErrorContext(ctx, "failed to repo update password", "subject_id", subject.ID, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}
