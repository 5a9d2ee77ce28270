package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/upasthit/upasthit-api/internal/identity/entity"
	"github.com/upasthit/upasthit-api/internal/pkg/goerror"
)

type LoginInput struct {
	Role       string `validate:"required,oneof=student teacher"`
	Identifier string `validate:"required,max=100"`
	Password   string `validate:"required"`
}

type LoginOutput struct {
	AccessToken string
	Name        string
	Role        string
}

func (s *Usecase) Login(ctx context.Context, in LoginInput) (*LoginOutput, error) {
	ctx, span := s.startSpan(ctx, "Login")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	role := entity.ParseRole(in.Role)
	subject, err := s.resolveSubject(ctx, role, in.Identifier)
	if err != nil {
		var gerr *goerror.Error
		if errors.As(err, &gerr) && gerr.Code() == goerror.CodeNotFound {
			// a wrong identifier and a wrong password look the same to a caller
			return nil, goerror.NewBusiness("invalid credentials", goerror.CodeUnauthorized)
		}
		return nil, err
	}

	if !s.bcrypt.Verify(subject.PasswordHash, in.Password) {
		slog.WarnContext(ctx, "password does not match", "subject_id", subject.ID, "role", role.String())
		return nil, goerror.NewBusiness("invalid credentials", goerror.CodeUnauthorized)
	}

	token, err := s.jwt.Generate(subject.ID, role.String(), subject.Email)
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate access jwt token", "subject_id", subject.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &LoginOutput{
		AccessToken: token,
		Name:        subject.Name,
		Role:        role.String(),
	}, nil
}
