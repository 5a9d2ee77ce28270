package usecase

import (
	"context"
	"net/http"
	"testing"
)

func TestLogin(t *testing.T) {
	// Arrange
	pack := newTestUsecase(t)
	pack.db.addSubject(teacherFixture())

	// Act
	out, err := pack.uc.Login(context.Background(), LoginInput{
		Role:       "teacher",
		Identifier: "rao@college.test",
		Password:   "TeachPass9!",
	})

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.AccessToken == "" {
		t.Fatal("expected an access token")
	}
	if out.Role != "teacher" || out.Name != "Prof. Rao" {
		t.Fatalf("unexpected output: %+v", out)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	// Arrange
	pack := newTestUsecase(t)
	pack.db.addSubject(studentFixture())

	// Act
	_, err := pack.uc.Login(context.Background(), LoginInput{
		Role:       "student",
		Identifier: "22BCS1042",
		Password:   "nope",
	})

	// Assert
	gerr := asGoError(t, err)
	if gerr.StatusCode() != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", gerr.StatusCode())
	}
}

func TestLoginUnknownSubject(t *testing.T) {
	// Arrange
	pack := newTestUsecase(t)

	// Act
	_, err := pack.uc.Login(context.Background(), LoginInput{
		Role:       "student",
		Identifier: "22BCS0000",
		Password:   "whatever",
	})

	// Assert: unknown identifier reads the same as a wrong password
	gerr := asGoError(t, err)
	if gerr.StatusCode() != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", gerr.StatusCode())
	}
}
