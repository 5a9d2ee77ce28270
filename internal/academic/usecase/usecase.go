package usecase

import (
	"context"
	"time"

	"github.com/upasthit/upasthit-api/internal/academic/entity"
	"github.com/upasthit/upasthit-api/internal/pkg/cache"
	"github.com/upasthit/upasthit-api/internal/pkg/clock"
	"github.com/upasthit/upasthit-api/internal/pkg/config"
	"github.com/upasthit/upasthit-api/internal/pkg/goerror"
	"github.com/upasthit/upasthit-api/internal/pkg/goroutine"
	"github.com/upasthit/upasthit-api/internal/pkg/hash"
	"github.com/upasthit/upasthit-api/internal/pkg/idempotency"
	"github.com/upasthit/upasthit-api/internal/pkg/instrument"
	"github.com/upasthit/upasthit-api/internal/pkg/jwt"
	"github.com/upasthit/upasthit-api/internal/pkg/storage"
	"github.com/upasthit/upasthit-api/internal/pkg/uid"
	"github.com/upasthit/upasthit-api/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

// timeSlots is the fixed lecture grid of the institution. Slot numbers in
// the timetable index into this map; durations expand across adjacent slots.
var timeSlots = map[int32]string{
	1: "9:30-10:30",
	2: "10:30-11:30",
	3: "11:30-12:30",
	4: "1:00-2:00",
	5: "2:00-3:00",
	6: "3:00-4:00",
	7: "4:00-4:30",
}

type repoDB interface {
	GetOverallAttendance(ctx context.Context, studentID int64) (*entity.OverallAttendance, error)
	GetMonthlyAttendance(ctx context.Context, studentID int64) ([]entity.MonthlyAttendance, error)
	GetSubjectAttendance(ctx context.Context, studentID int64) ([]entity.SubjectAttendance, error)
	GetAbsentStudents(ctx context.Context, timetableID int64, date time.Time) ([]entity.AbsentStudent, error)
	GetAdvisorClassID(ctx context.Context, teacherID int64) (int64, error)
	GetAdvisorClassAttendance(ctx context.Context, classID int64, month time.Time) ([]entity.AdvisorStudentAttendance, error)

	GetStudentClassAndBatches(ctx context.Context, studentID int64) (int64, []int64, error)
	GetStudentTimetable(ctx context.Context, classID int64, batchIDs []int64) ([]entity.TimetableRow, error)
	GetTeacherTimetable(ctx context.Context, teacherID int64) ([]entity.TimetableRow, error)

	GetStudentHome(ctx context.Context, studentID int64) (*entity.HomeProfile, error)
	GetTeacherHome(ctx context.Context, teacherID int64) (*entity.HomeProfile, error)

	InsertAnnouncement(ctx context.Context, a entity.Announcement) error
	ListAnnouncementsForStudent(ctx context.Context, classID int64, batchIDs []int64, limit, offset int32) ([]entity.Announcement, error)
	ListAnnouncementsForTeacher(ctx context.Context, teacherID int64, limit, offset int32) ([]entity.Announcement, error)
	DeleteAnnouncement(ctx context.Context, id, authorID int64, authorRole string) error

	UpsertStudents(ctx context.Context, rows []entity.RosterRow, ids map[string]int64, passwordHashes map[string]string) (int, int, error)
}

type Usecase struct {
	repoDB    repoDB
	cache     cache.Cache
	storage   storage.Storage
	idemp     idempotency.Idempotency
	goroutine *goroutine.Manager
	validator validator.Validator
	cfg       config.Config
	bcrypt    hash.Hash
	uid       uid.NumberID
	clock     clock.Clocker
	ins       instrument.Instrumentation
}

type Dependency struct {
	RepoDB      repoDB
	Cache       cache.Cache
	Storage     storage.Storage
	Idempotency idempotency.Idempotency
	Goroutine   *goroutine.Manager
	Validator   validator.Validator
	Config      config.Config
	Bcrypt      hash.Hash
	UID         uid.NumberID
	Clock       clock.Clocker
	Instrument  instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:    dep.RepoDB,
		cache:     dep.Cache,
		storage:   dep.Storage,
		idemp:     dep.Idempotency,
		goroutine: dep.Goroutine,
		validator: dep.Validator,
		cfg:       dep.Config,
		bcrypt:    dep.Bcrypt,
		uid:       dep.UID,
		clock:     dep.Clock,
		ins:       dep.Instrument,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("academic.usecase").Start(ctx, name)
}

func (s *Usecase) authenticated(ctx context.Context) (*jwt.Claims, error) {
	clm := jwt.GetAuth(ctx)
	if clm == nil {
		return nil, goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}

	return clm, nil
}

func (s *Usecase) authenticatedRole(ctx context.Context, role string) (*jwt.Claims, error) {
	clm, err := s.authenticated(ctx)
	if err != nil {
		return nil, err
	}

	if clm.Role != role {
		return nil, goerror.NewBusiness("not available for your role", goerror.CodeForbidden)
	}

	return clm, nil
}
