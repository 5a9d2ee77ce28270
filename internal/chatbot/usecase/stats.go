package usecase

import (
	"context"
	"log/slog"
	"math"

	"github.com/upasthit/upasthit-api/internal/pkg/goerror"
)

type StatsOutput struct {
	TodayCount      int64
	TotalCount      int64
	RemainingToday  int64
	DailyLimit      int64
	CanAskNow       bool
	WaitSeconds     int64
	RecentQuestions []string
}

func (s *Usecase) Stats(ctx context.Context) (*StatsOutput, error) {
	ctx, span := s.startSpan(ctx, "Stats")
	defer span.End()

	clm, err := s.authenticatedStudent(ctx)
	if err != nil {
		return nil, err
	}

	quota := s.cfg.GetInt64("modules.chatbot.daily_quota")
	day, _ := s.dayWindow()

	todayCount, err := s.repoCache.GetDailyUsage(ctx, clm.SubjectID, day)
	if err != nil {
		slog.ErrorContext(ctx, "failed to read daily usage", "subject_id", clm.SubjectID, "error", err)
		return nil, goerror.NewServer(err)
	}

	remaining := quota - todayCount
	if remaining < 0 {
		remaining = 0
	}

	ttl, err := s.repoCache.CooldownTTL(ctx, clm.SubjectID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to read cooldown ttl", "subject_id", clm.SubjectID, "error", err)
		return nil, goerror.NewServer(err)
	}
	waitSeconds := int64(math.Ceil(ttl.Seconds()))

	totalCount, err := s.repoDB.CountUsageTotal(ctx, clm.SubjectID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to count usage", "subject_id", clm.SubjectID, "error", err)
		return nil, goerror.NewServer(err)
	}

	recent, err := s.repoDB.GetRecentQuestions(ctx, clm.SubjectID, 5)
	if err != nil {
		slog.ErrorContext(ctx, "failed to get recent questions", "subject_id", clm.SubjectID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &StatsOutput{
		TodayCount:      todayCount,
		TotalCount:      totalCount,
		RemainingToday:  remaining,
		DailyLimit:      quota,
		CanAskNow:       waitSeconds == 0 && remaining > 0,
		WaitSeconds:     waitSeconds,
		RecentQuestions: recent,
	}, nil
}
