package usecase

import (
	"context"
	"net/http"
	"testing"

	"github.com/upasthit/upasthit-api/internal/pkg/jwt"
)

func authCtx(subjectID int64, role, email string) context.Context {
	return jwt.SetAuth(context.Background(), jwt.Claims{
		SubjectID: subjectID,
		Role:      role,
		Email:     email,
	})
}

func TestPasswordChange(t *testing.T) {
	// Arrange
	pack := newTestUsecase(t)
	pack.db.addSubject(studentFixture())
	ctx := authCtx(101, "student", "aisha@college.test")

	// Act
	err := pack.uc.PasswordChange(ctx, PasswordChangeInput{
		OldPassword: "OldSecret1!",
		NewPassword: "NewSecret2@",
	})

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pack.db.passwords[101] != "hashed:NewSecret2@" {
		t.Fatalf("expected new password digest, got %q", pack.db.passwords[101])
	}
}

func TestPasswordChangeWrongOldPassword(t *testing.T) {
	// Arrange
	pack := newTestUsecase(t)
	pack.db.addSubject(studentFixture())
	ctx := authCtx(101, "student", "aisha@college.test")

	// Act
	err := pack.uc.PasswordChange(ctx, PasswordChangeInput{
		OldPassword: "WrongOld0!",
		NewPassword: "NewSecret2@",
	})

	// Assert
	gerr := asGoError(t, err)
	if gerr.StatusCode() != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", gerr.StatusCode())
	}
}

func TestPasswordChangeUnauthenticated(t *testing.T) {
	// Arrange
	pack := newTestUsecase(t)

	// Act
	err := pack.uc.PasswordChange(context.Background(), PasswordChangeInput{
		OldPassword: "OldSecret1!",
		NewPassword: "NewSecret2@",
	})

	// Assert
	gerr := asGoError(t, err)
	if gerr.StatusCode() != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", gerr.StatusCode())
	}
}
