package usecase

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/upasthit/upasthit-api/internal/chatbot/entity"
	"github.com/upasthit/upasthit-api/internal/pkg/jwt"
)

func TestAsk(t *testing.T) {
	// Arrange
	pack := newTestUsecase(t)

	// Act
	out, err := pack.uc.Ask(studentCtx(), AskInput{Question: "what is ohm's law?"})

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Denied != nil {
		t.Fatalf("expected admission, got denial: %+v", out.Denied)
	}
	if out.Answer == "" || out.RemainingToday != 9 || out.DailyLimit != 10 {
		t.Fatalf("unexpected output: %+v", out)
	}
	if len(pack.db.usage) != 1 {
		t.Fatalf("expected one usage event, got %d", len(pack.db.usage))
	}
	if pack.db.usage[0].Question != "what is ohm's law?" {
		t.Fatalf("unexpected usage event: %+v", pack.db.usage[0])
	}
}

func TestAskDailyQuotaBoundary(t *testing.T) {
	// Arrange
	pack := newTestUsecase(t)

	// the 10th question of the day is still admitted
	for i := 0; i < 10; i++ {
		out, err := pack.uc.Ask(studentCtx(), AskInput{Question: "question"})
		if err != nil {
			t.Fatalf("ask %d failed: %v", i+1, err)
		}
		if out.Denied != nil {
			t.Fatalf("ask %d should be admitted, got: %+v", i+1, out.Denied)
		}

		// step past the cooldown between questions
		pack.clock.now = pack.clock.now.Add(2*time.Minute + time.Second)
	}

	// Act: the 11th is denied
	out, err := pack.uc.Ask(studentCtx(), AskInput{Question: "question"})

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Denied == nil {
		t.Fatal("expected the 11th question to be denied")
	}
	if out.Denied.Reason != entity.DenyReasonDailyLimit {
		t.Fatalf("expected daily_limit denial, got %s", out.Denied.Reason)
	}
	if out.Denied.RemainingToday != 0 {
		t.Fatalf("expected zero remaining, got %d", out.Denied.RemainingToday)
	}

	// the denied attempt is not charged
	count, _ := pack.cache.GetDailyUsage(context.Background(), 101, pack.clock.now.Format("2006-01-02"))
	if count != 10 {
		t.Fatalf("denied attempt must be refunded, counter is %d", count)
	}
	if len(pack.db.usage) != 10 {
		t.Fatalf("expected 10 usage events, got %d", len(pack.db.usage))
	}
}

func TestAskCooldownDenied(t *testing.T) {
	// Arrange
	pack := newTestUsecase(t)
	if _, err := pack.uc.Ask(studentCtx(), AskInput{Question: "first"}); err != nil {
		t.Fatalf("first ask failed: %v", err)
	}

	// Act: a second ask lands inside the cooldown window
	pack.clock.now = pack.clock.now.Add(30 * time.Second)
	out, err := pack.uc.Ask(studentCtx(), AskInput{Question: "second"})

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Denied == nil || out.Denied.Reason != entity.DenyReasonCooldown {
		t.Fatalf("expected cooldown denial, got %+v", out)
	}
	if out.Denied.WaitSeconds <= 0 || out.Denied.WaitSeconds > 120 {
		t.Fatalf("waitSeconds must be in (0, width], got %d", out.Denied.WaitSeconds)
	}
	if out.Denied.RemainingToday != 9 {
		t.Fatalf("expected 9 remaining after refund, got %d", out.Denied.RemainingToday)
	}

	// the cooldown attempt is not charged
	count, _ := pack.cache.GetDailyUsage(context.Background(), 101, pack.clock.now.Format("2006-01-02"))
	if count != 1 {
		t.Fatalf("denied attempt must be refunded, counter is %d", count)
	}

	// once the window passes, asking works again
	pack.clock.now = pack.clock.now.Add(2 * time.Minute)
	if out, err := pack.uc.Ask(studentCtx(), AskInput{Question: "third"}); err != nil || out.Denied != nil {
		t.Fatalf("ask after cooldown should be admitted: err=%v out=%+v", err, out)
	}
}

func TestAskAnswerFailureIsNotCharged(t *testing.T) {
	// Arrange
	pack := newTestUsecase(t)
	pack.rag.fail = errors.New("upstream timeout")

	// Act
	_, err := pack.uc.Ask(studentCtx(), AskInput{Question: "doomed"})

	// Assert
	gerr := asGoError(t, err)
	if gerr.StatusCode() != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", gerr.StatusCode())
	}
	if len(pack.db.usage) != 0 {
		t.Fatal("no usage event may be logged for a failed answer")
	}

	count, _ := pack.cache.GetDailyUsage(context.Background(), 101, pack.clock.now.Format("2006-01-02"))
	if count != 0 {
		t.Fatalf("quota must be refunded on answer failure, counter is %d", count)
	}

	// the cooldown slot is released: a retry right away is admitted
	pack.rag.fail = nil
	out, err := pack.uc.Ask(studentCtx(), AskInput{Question: "retry"})
	if err != nil || out.Denied != nil {
		t.Fatalf("retry after failure should be admitted: err=%v out=%+v", err, out)
	}
}

func TestAskAdmissionStoreFailureFailsClosed(t *testing.T) {
	// Arrange
	pack := newTestUsecase(t)
	pack.cache.failIncr = errors.New("redis down")

	// Act
	_, err := pack.uc.Ask(studentCtx(), AskInput{Question: "question"})

	// Assert
	gerr := asGoError(t, err)
	if gerr.StatusCode() != http.StatusInternalServerError {
		t.Fatalf("expected 500 when the admission store is down, got %d", gerr.StatusCode())
	}
	if pack.rag.calls != 0 {
		t.Fatal("the answering service must not be called when admission fails")
	}
}

func TestAskTeacherForbidden(t *testing.T) {
	// Arrange
	pack := newTestUsecase(t)
	ctx := jwt.SetAuth(context.Background(), jwt.Claims{SubjectID: 201, Role: "teacher"})

	// Act
	_, err := pack.uc.Ask(ctx, AskInput{Question: "question"})

	// Assert
	gerr := asGoError(t, err)
	if gerr.StatusCode() != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", gerr.StatusCode())
	}
}

func TestAskQuestionTooLong(t *testing.T) {
	// Arrange
	pack := newTestUsecase(t)
	long := make([]byte, 501)
	for i := range long {
		long[i] = 'a'
	}

	// Act
	_, err := pack.uc.Ask(studentCtx(), AskInput{Question: string(long)})

	// Assert
	gerr := asGoError(t, err)
	if gerr.StatusCode() != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", gerr.StatusCode())
	}
}
