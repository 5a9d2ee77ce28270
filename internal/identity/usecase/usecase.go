package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/upasthit/upasthit-api/internal/identity/entity"
	"github.com/upasthit/upasthit-api/internal/pkg/clock"
	"github.com/upasthit/upasthit-api/internal/pkg/config"
	"github.com/upasthit/upasthit-api/internal/pkg/goerror"
	"github.com/upasthit/upasthit-api/internal/pkg/hash"
	"github.com/upasthit/upasthit-api/internal/pkg/instrument"
	"github.com/upasthit/upasthit-api/internal/pkg/jwt"
	"github.com/upasthit/upasthit-api/internal/pkg/otp"
	"github.com/upasthit/upasthit-api/internal/pkg/uid"
	"github.com/upasthit/upasthit-api/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

type OtpIssuedEvent struct {
	SubjectID int64
	Role      string
	Email     string
	Name      string
	Code      string
	Purpose   string
	TTLMinute int
}

type repoMessaging interface {
	PublishOtpIssued(ctx context.Context, msg OtpIssuedEvent) error
}

type repoDB interface {
	GetStudentByRollNo(ctx context.Context, rollNo string) (*entity.Subject, error)
	GetTeacherByEmail(ctx context.Context, email string) (*entity.Subject, error)
	GetSubjectByID(ctx context.Context, id int64, role entity.Role) (*entity.Subject, error)
	GetOtpChallenge(ctx context.Context, subjectID int64, role entity.Role) (*entity.OtpChallenge, error)

	UpsertOtpChallenge(ctx context.Context, challenge entity.OtpChallenge) error
	UpdatePassword(ctx context.Context, id int64, role entity.Role, passwordHash string) error

	DeleteOtpChallenge(ctx context.Context, id int64) error
}

type Usecase struct {
	repoDB        repoDB
	repoMessaging repoMessaging
	validator     validator.Validator
	cfg           config.Config
	bcrypt        hash.Hash
	otpHash       hash.Hash
	otp           otp.Generator
	uid           uid.NumberID
	clock         clock.Clocker
	jwt           jwt.JWT
	ins           instrument.Instrumentation
}

type Dependency struct {
	RepoDB        repoDB
	RepoMessaging repoMessaging
	Validator     validator.Validator
	Config        config.Config
	Bcrypt        hash.Hash
	OtpHash       hash.Hash
	Otp           otp.Generator
	UID           uid.NumberID
	Clock         clock.Clocker
	JWT           jwt.JWT
	Instrument    instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:        dep.RepoDB,
		repoMessaging: dep.RepoMessaging,
		validator:     dep.Validator,
		cfg:           dep.Config,
		bcrypt:        dep.Bcrypt,
		otpHash:       dep.OtpHash,
		otp:           dep.Otp,
		uid:           dep.UID,
		clock:         dep.Clock,
		jwt:           dep.JWT,
		ins:           dep.Instrument,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("identity.usecase").Start(ctx, name)
}

// resolveSubject finds the account behind a (role, identifier) pair. Students
// are addressed by roll number, teachers by email.
func (s *Usecase) resolveSubject(ctx context.Context, role entity.Role, identifier string) (*entity.Subject, error) {
	identifier = strings.TrimSpace(identifier)

	var subject *entity.Subject
	var err error
	switch role {
	case entity.RoleStudent:
		subject, err = s.repoDB.GetStudentByRollNo(ctx, strings.ToUpper(identifier))
	case entity.RoleTeacher:
		subject, err = s.repoDB.GetTeacherByEmail(ctx, strings.ToLower(identifier))
	default:
		return nil, goerror.NewBusiness("role is unrecognized", goerror.CodeInvalidInput)
	}

	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "subject account not found", "role", role.String())
		return nil, goerror.NewBusiness("account not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get subject", "role", role.String(), "error", err)
		return nil, goerror.NewServer(err)
	}

	return subject, nil
}

func (s *Usecase) authenticated(ctx context.Context) (*jwt.Claims, error) {
	clm := jwt.GetAuth(ctx)
	if clm == nil {
		return nil, goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}

	return clm, nil
}
