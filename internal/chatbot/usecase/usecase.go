package usecase

import (
	"context"
	"time"

	"github.com/upasthit/upasthit-api/internal/chatbot/entity"
	"github.com/upasthit/upasthit-api/internal/pkg/clock"
	"github.com/upasthit/upasthit-api/internal/pkg/config"
	"github.com/upasthit/upasthit-api/internal/pkg/goerror"
	"github.com/upasthit/upasthit-api/internal/pkg/instrument"
	"github.com/upasthit/upasthit-api/internal/pkg/jwt"
	"github.com/upasthit/upasthit-api/internal/pkg/uid"
	"github.com/upasthit/upasthit-api/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

// Answer is what the answering service produced for one question.
type Answer struct {
	Text       string
	TokensUsed int32
}

type repoAnswering interface {
	Ask(ctx context.Context, question string) (*Answer, error)
}

type repoCache interface {
	IncrDailyUsage(ctx context.Context, subjectID int64, day string, expireAt time.Time) (int64, error)
	DecrDailyUsage(ctx context.Context, subjectID int64, day string) error
	GetDailyUsage(ctx context.Context, subjectID int64, day string) (int64, error)

	AcquireCooldown(ctx context.Context, subjectID int64, width time.Duration) (bool, error)
	CooldownTTL(ctx context.Context, subjectID int64) (time.Duration, error)
	ReleaseCooldown(ctx context.Context, subjectID int64) error
}

type repoDB interface {
	InsertUsage(ctx context.Context, usage entity.UsageEvent) error
	UpsertDailyStat(ctx context.Context, day time.Time, tokens int64) error

	CountUsageSince(ctx context.Context, subjectID int64, since time.Time) (int64, error)
	CountUsageTotal(ctx context.Context, subjectID int64) (int64, error)
	GetUsagePage(ctx context.Context, subjectID int64, limit, offset int32) ([]entity.UsageEvent, error)
	GetRecentQuestions(ctx context.Context, subjectID int64, limit int32) ([]string, error)
}

type Usecase struct {
	repoDB        repoDB
	repoCache     repoCache
	repoAnswering repoAnswering
	validator     validator.Validator
	cfg           config.Config
	uid           uid.NumberID
	clock         clock.Clocker
	ins           instrument.Instrumentation
}

type Dependency struct {
	RepoDB        repoDB
	RepoCache     repoCache
	RepoAnswering repoAnswering
	Validator     validator.Validator
	Config        config.Config
	UID           uid.NumberID
	Clock         clock.Clocker
	Instrument    instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:        dep.RepoDB,
		repoCache:     dep.RepoCache,
		repoAnswering: dep.RepoAnswering,
		validator:     dep.Validator,
		cfg:           dep.Config,
		uid:           dep.UID,
		clock:         dep.Clock,
		ins:           dep.Instrument,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("chatbot.usecase").Start(ctx, name)
}

// authenticatedStudent rejects unauthenticated callers and teachers; the
// chatbot is a student-facing feature.
func (s *Usecase) authenticatedStudent(ctx context.Context) (*jwt.Claims, error) {
	clm := jwt.GetAuth(ctx)
	if clm == nil {
		return nil, goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}

	if clm.Role != "student" {
		return nil, goerror.NewBusiness("chatbot is available to students only", goerror.CodeForbidden)
	}

	return clm, nil
}

// dayWindow returns the local-day bucket key and the instant the bucket dies.
func (s *Usecase) dayWindow() (string, time.Time) {
	now := s.clock.Now()
	year, month, day := now.Date()
	endOfDay := time.Date(year, month, day, 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)

	return now.Format("2006-01-02"), endOfDay
}
