package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/upasthit/upasthit-api/internal/academic/entity"
	"github.com/upasthit/upasthit-api/internal/pkg/goerror"
)

// Home returns the caller's landing-screen profile, cache-aside with a long
// TTL since names and class assignments rarely change.
func (s *Usecase) Home(ctx context.Context) (*entity.HomeProfile, error) {
	ctx, span := s.startSpan(ctx, "Home")
	defer span.End()

	clm, err := s.authenticated(ctx)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("%s:home:%d", clm.Role, clm.SubjectID)

	var cached entity.HomeProfile
	if s.cache.GetJSON(ctx, key, &cached) {
		return &cached, nil
	}

	var profile *entity.HomeProfile
	switch clm.Role {
	case "student":
		profile, err = s.repoDB.GetStudentHome(ctx, clm.SubjectID)
	case "teacher":
		profile, err = s.repoDB.GetTeacherHome(ctx, clm.SubjectID)
	default:
		return nil, goerror.NewBusiness("not available for your role", goerror.CodeForbidden)
	}

	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "subject not found for home profile", "subject_id", clm.SubjectID, "role", clm.Role)
		return nil, goerror.NewBusiness("account not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get home profile", "subject_id", clm.SubjectID, "error", err)
		return nil, goerror.NewServer(err)
	}

	s.cache.SetJSON(ctx, key, profile, s.cfg.GetDay("modules.academic.home_cache_ttl_days"))

	return profile, nil
}
