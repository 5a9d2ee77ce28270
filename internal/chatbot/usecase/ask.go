package usecase

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/upasthit/upasthit-api/internal/chatbot/entity"
	"github.com/upasthit/upasthit-api/internal/pkg/goerror"
)

type AskInput struct {
	Question string `validate:"required,max=500"`
}

type AskOutput struct {
	Answer         string
	RemainingToday int64
	DailyLimit     int64

	// Denied is set instead of Answer when admission was refused.
	Denied *entity.Decision
}

// Ask admits the question through the daily quota and the cooldown slot,
// then forwards it to the answering service. Accounting is asymmetric on
// purpose: admission state is charged up front and refunded on failure,
// while the durable usage log is written only after a successful answer.
func (s *Usecase) Ask(ctx context.Context, in AskInput) (*AskOutput, error) {
	ctx, span := s.startSpan(ctx, "Ask")
	defer span.End()

	clm, err := s.authenticatedStudent(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	quota := s.cfg.GetInt64("modules.chatbot.daily_quota")
	width := s.cfg.GetSecond("modules.chatbot.cooldown_seconds")
	day, endOfDay := s.dayWindow()

	count, err := s.repoCache.IncrDailyUsage(ctx, clm.SubjectID, day, endOfDay)
	if err != nil {
		slog.ErrorContext(ctx, "failed to charge daily quota", "subject_id", clm.SubjectID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if count > quota {
		s.refundQuota(ctx, clm.SubjectID, day)
		return &AskOutput{
			DailyLimit: quota,
			Denied: &entity.Decision{
				Reason:         entity.DenyReasonDailyLimit,
				RemainingToday: 0,
			},
		}, nil
	}

	acquired, err := s.repoCache.AcquireCooldown(ctx, clm.SubjectID, width)
	if err != nil {
		slog.ErrorContext(ctx, "failed to reserve cooldown slot", "subject_id", clm.SubjectID, "error", err)
		s.refundQuota(ctx, clm.SubjectID, day)
		return nil, goerror.NewServer(err)
	}

	if !acquired {
		s.refundQuota(ctx, clm.SubjectID, day)

		ttl, err := s.repoCache.CooldownTTL(ctx, clm.SubjectID)
		if err != nil {
			slog.WarnContext(ctx, "failed to read cooldown ttl", "subject_id", clm.SubjectID, "error", err)
			ttl = width
		}

		waitSeconds := int64(math.Ceil(ttl.Seconds()))
		if waitSeconds < 1 {
			waitSeconds = 1
		}

		return &AskOutput{
			DailyLimit: quota,
			Denied: &entity.Decision{
				Reason:         entity.DenyReasonCooldown,
				WaitSeconds:    waitSeconds,
				RemainingToday: quota - count + 1,
			},
		}, nil
	}

	askCtx, cancel := context.WithTimeout(ctx, s.cfg.GetSecond("modules.chatbot.answer_timeout_seconds"))
	defer cancel()

	answer, err := s.repoAnswering.Ask(askCtx, in.Question)
	if err != nil {
		slog.ErrorContext(ctx, "answering service call failed", "subject_id", clm.SubjectID, "error", err)

		// the attempt must not count against the student
		if rerr := s.repoCache.ReleaseCooldown(ctx, clm.SubjectID); rerr != nil {
			slog.ErrorContext(ctx, "failed to release cooldown after answer failure", "subject_id", clm.SubjectID, "error", rerr)
		}
		s.refundQuota(ctx, clm.SubjectID, day)

		return nil, goerror.NewUnavailable(err, "answering service is unavailable, please try again later")
	}

	now := s.clock.Now()
	if err := s.repoDB.InsertUsage(ctx, entity.UsageEvent{
		ID:         s.uid.Generate(),
		SubjectID:  clm.SubjectID,
		Question:   in.Question,
		Answer:     answer.Text,
		TokensUsed: answer.TokensUsed,
		CreatedAt:  now,
	}); err != nil {
		// the answer is already produced; losing the log entry is the lesser harm
		slog.ErrorContext(ctx, "failed to append usage log", "subject_id", clm.SubjectID, "error", err)
	}

	year, month, dayNum := now.Date()
	dayStart := time.Date(year, month, dayNum, 0, 0, 0, 0, now.Location())
	if err := s.repoDB.UpsertDailyStat(ctx, dayStart, int64(answer.TokensUsed)); err != nil {
		slog.ErrorContext(ctx, "failed to bump daily stats", "error", err)
	}

	return &AskOutput{
		Answer:         answer.Text,
		RemainingToday: quota - count,
		DailyLimit:     quota,
	}, nil
}

func (s *Usecase) refundQuota(ctx context.Context, subjectID int64, day string) {
	if err := s.repoCache.DecrDailyUsage(ctx, subjectID, day); err != nil {
		slog.ErrorContext(ctx, "failed to refund daily quota", "subject_id", subjectID, "error", err)
	}
}
