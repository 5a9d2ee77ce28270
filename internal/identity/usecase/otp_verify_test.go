package usecase

import (
	"context"
	"net/http"
	"testing"
	"time"
)

func issueCode(t *testing.T, pack *testPack, role, identifier string) {
	t.Helper()

	if _, err := pack.uc.OtpSend(context.Background(), OtpSendInput{
		Role: role, Identifier: identifier,
	}); err != nil {
		t.Fatalf("failed to issue code: %v", err)
	}
}

func TestOtpVerifyConsumesChallenge(t *testing.T) {
	// Arrange
	pack := newTestUsecase(t)
	pack.db.addSubject(studentFixture())
	issueCode(t, pack, "student", "22BCS1042")

	// Act
	out, err := pack.uc.OtpVerify(context.Background(), OtpVerifyInput{
		Role: "student", Identifier: "22BCS1042", Code: "482915",
	})

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.SubjectID != 101 || out.Purpose != "password_reset" {
		t.Fatalf("unexpected verified identity: %+v", out)
	}
	if pack.db.challenge != nil {
		t.Fatal("a successful verify must consume the challenge")
	}

	// the same code cannot be used twice
	_, err = pack.uc.OtpVerify(context.Background(), OtpVerifyInput{
		Role: "student", Identifier: "22BCS1042", Code: "482915",
	})
	gerr := asGoError(t, err)
	if gerr.StatusCode() != http.StatusNotFound {
		t.Fatalf("expected 404 on second use, got %d", gerr.StatusCode())
	}
}

func TestOtpVerifyMismatchLeavesChallengeIntact(t *testing.T) {
	// Arrange
	pack := newTestUsecase(t)
	pack.db.addSubject(studentFixture())
	issueCode(t, pack, "student", "22BCS1042")

	// Act
	_, err := pack.uc.OtpVerify(context.Background(), OtpVerifyInput{
		Role: "student", Identifier: "22BCS1042", Code: "000000",
	})

	// Assert
	gerr := asGoError(t, err)
	if gerr.StatusCode() != http.StatusUnauthorized {
		t.Fatalf("expected 401 on mismatch, got %d", gerr.StatusCode())
	}
	if pack.db.challenge == nil {
		t.Fatal("a mismatch must not consume the challenge")
	}

	// the correct code still works afterwards
	if _, err := pack.uc.OtpVerify(context.Background(), OtpVerifyInput{
		Role: "student", Identifier: "22BCS1042", Code: "482915",
	}); err != nil {
		t.Fatalf("correct code must still verify after a mismatch: %v", err)
	}
}

func TestOtpVerifyExpiredChallengeIsDeleted(t *testing.T) {
	// Arrange
	pack := newTestUsecase(t)
	pack.db.addSubject(studentFixture())
	issueCode(t, pack, "student", "22BCS1042")

	pack.clock.now = pack.clock.now.Add(5*time.Minute + time.Second)

	// Act
	_, err := pack.uc.OtpVerify(context.Background(), OtpVerifyInput{
		Role: "student", Identifier: "22BCS1042", Code: "482915",
	})

	// Assert
	gerr := asGoError(t, err)
	if gerr.StatusCode() != http.StatusUnauthorized {
		t.Fatalf("expected 401 for expired code, got %d", gerr.StatusCode())
	}
	if pack.db.challenge != nil {
		t.Fatal("an expired challenge must be deleted on verify")
	}
}

func TestOtpVerifyExactExpiryBoundary(t *testing.T) {
	// Arrange
	pack := newTestUsecase(t)
	pack.db.addSubject(studentFixture())
	issueCode(t, pack, "student", "22BCS1042")

	// expiry is strict: at exactly expiresAt the code is still good
	pack.clock.now = pack.db.challenge.ExpiresAt

	// Act
	out, err := pack.uc.OtpVerify(context.Background(), OtpVerifyInput{
		Role: "student", Identifier: "22BCS1042", Code: "482915",
	})

	// Assert
	if err != nil {
		t.Fatalf("a code at the exact expiry instant must verify: %v", err)
	}
	if out.SubjectID != 101 {
		t.Fatalf("expected subject 101, got %d", out.SubjectID)
	}

	// one nanosecond later it is dead
	issueCode(t, pack, "student", "22BCS1042")
	pack.clock.now = pack.db.challenge.ExpiresAt.Add(time.Nanosecond)

	_, err = pack.uc.OtpVerify(context.Background(), OtpVerifyInput{
		Role: "student", Identifier: "22BCS1042", Code: "482915",
	})
	gerr := asGoError(t, err)
	if gerr.StatusCode() != http.StatusUnauthorized {
		t.Fatalf("expected 401 past the expiry instant, got %d", gerr.StatusCode())
	}
}

func TestOtpVerifyValidation(t *testing.T) {
	// Arrange
	pack := newTestUsecase(t)

	// Act
	_, err := pack.uc.OtpVerify(context.Background(), OtpVerifyInput{
		Role: "student", Identifier: "22BCS1042", Code: "12345",
	})

	// Assert
	gerr := asGoError(t, err)
	if gerr.StatusCode() != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for short code, got %d", gerr.StatusCode())
	}
}
