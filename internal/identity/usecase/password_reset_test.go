package usecase

import (
	"context"
	"net/http"
	"testing"
)

func TestPasswordReset(t *testing.T) {
	// Arrange
	pack := newTestUsecase(t)
	pack.db.addSubject(studentFixture())
	issueCode(t, pack, "student", "22BCS1042")

	// Act
	err := pack.uc.PasswordReset(context.Background(), PasswordResetInput{
		Role:        "student",
		Identifier:  "22BCS1042",
		Code:        "482915",
		NewPassword: "FreshSecret7!",
	})

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pack.db.passwords[101] != "hashed:FreshSecret7!" {
		t.Fatalf("expected new password digest to be stored, got %q", pack.db.passwords[101])
	}
	if pack.db.challenge != nil {
		t.Fatal("reset must consume the challenge")
	}

	// logging in with the new password works
	if _, err := pack.uc.Login(context.Background(), LoginInput{
		Role: "student", Identifier: "22BCS1042", Password: "FreshSecret7!",
	}); err != nil {
		t.Fatalf("login with new password failed: %v", err)
	}
}

func TestPasswordResetWrongCode(t *testing.T) {
	// Arrange
	pack := newTestUsecase(t)
	pack.db.addSubject(studentFixture())
	issueCode(t, pack, "student", "22BCS1042")

	// Act
	err := pack.uc.PasswordReset(context.Background(), PasswordResetInput{
		Role:        "student",
		Identifier:  "22BCS1042",
		Code:        "111111",
		NewPassword: "FreshSecret7!",
	})

	// Assert
	gerr := asGoError(t, err)
	if gerr.StatusCode() != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", gerr.StatusCode())
	}
	if _, ok := pack.db.passwords[101]; ok {
		t.Fatal("password must not change on a wrong code")
	}
	if pack.db.challenge == nil {
		t.Fatal("a wrong code must not consume the challenge")
	}
}

func TestPasswordResetWeakPassword(t *testing.T) {
	// Arrange
	pack := newTestUsecase(t)
	pack.db.addSubject(studentFixture())
	issueCode(t, pack, "student", "22BCS1042")

	// Act
	err := pack.uc.PasswordReset(context.Background(), PasswordResetInput{
		Role:        "student",
		Identifier:  "22BCS1042",
		Code:        "482915",
		NewPassword: "short",
	})

	// Assert
	gerr := asGoError(t, err)
	if gerr.StatusCode() != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", gerr.StatusCode())
	}
	if pack.db.challenge == nil {
		t.Fatal("validation failures must not touch the challenge")
	}
}
