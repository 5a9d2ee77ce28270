package usecase

import (
	"context"
	"log/slog"

	"github.com/upasthit/upasthit-api/internal/chatbot/entity"
	"github.com/upasthit/upasthit-api/internal/pkg/goerror"
)

type HistoryInput struct {
	Limit  int32 `validate:"omitempty,min=1,max=100"`
	Offset int32 `validate:"omitempty,min=0"`
}

type HistoryOutput struct {
	Items []entity.UsageEvent
	Total int64
}

func (s *Usecase) History(ctx context.Context, in HistoryInput) (*HistoryOutput, error) {
	ctx, span := s.startSpan(ctx, "History")
	defer span.End()

	clm, err := s.authenticatedStudent(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	if in.Limit == 0 {
		in.Limit = 20
	}

	items, err := s.repoDB.GetUsagePage(ctx, clm.SubjectID, in.Limit, in.Offset)
	if err != nil {
		slog.ErrorContext(ctx, "failed to get usage page", "subject_id", clm.SubjectID, "error", err)
		return nil, goerror.NewServer(err)
	}

	total, err := s.repoDB.CountUsageTotal(ctx, clm.SubjectID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to count usage", "subject_id", clm.SubjectID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &HistoryOutput{Items: items, Total: total}, nil
}
