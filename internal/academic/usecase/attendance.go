package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/upasthit/upasthit-api/internal/academic/entity"
	"github.com/upasthit/upasthit-api/internal/pkg/goerror"
)

func (s *Usecase) AttendanceOverall(ctx context.Context) (*entity.OverallAttendance, error) {
	ctx, span := s.startSpan(ctx, "AttendanceOverall")
	defer span.End()

	clm, err := s.authenticatedRole(ctx, "student")
	if err != nil {
		return nil, err
	}

	out, err := s.repoDB.GetOverallAttendance(ctx, clm.SubjectID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get overall attendance", "subject_id", clm.SubjectID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return out, nil
}

func (s *Usecase) AttendanceMonthly(ctx context.Context) ([]entity.MonthlyAttendance, error) {
	ctx, span := s.startSpan(ctx, "AttendanceMonthly")
	defer span.End()

	clm, err := s.authenticatedRole(ctx, "student")
	if err != nil {
		return nil, err
	}

	items, err := s.repoDB.GetMonthlyAttendance(ctx, clm.SubjectID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get monthly attendance", "subject_id", clm.SubjectID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return items, nil
}

func (s *Usecase) AttendanceSubjects(ctx context.Context) ([]entity.SubjectAttendance, error) {
	ctx, span := s.startSpan(ctx, "AttendanceSubjects")
	defer span.End()

	clm, err := s.authenticatedRole(ctx, "student")
	if err != nil {
		return nil, err
	}

	items, err := s.repoDB.GetSubjectAttendance(ctx, clm.SubjectID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get subject attendance", "subject_id", clm.SubjectID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return items, nil
}

type AbsenteesInput struct {
	TimetableID int64     `validate:"required"`
	Date        time.Time `validate:"required"`
}

// AttendanceAbsentees lists the absentees of one submitted lecture so a
// teacher can review or correct them.
func (s *Usecase) AttendanceAbsentees(ctx context.Context, in AbsenteesInput) ([]entity.AbsentStudent, error) {
	ctx, span := s.startSpan(ctx, "AttendanceAbsentees")
	defer span.End()

	if _, err := s.authenticatedRole(ctx, "teacher"); err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	items, err := s.repoDB.GetAbsentStudents(ctx, in.TimetableID, in.Date)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get absent students", "timetable_id", in.TimetableID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return items, nil
}

// AttendanceAdvisorClass reports this month's attendance of every student
// in the caller's advised class. Teachers without an advisor assignment
// are refused.
func (s *Usecase) AttendanceAdvisorClass(ctx context.Context) (*entity.AdvisorClassReport, error) {
	ctx, span := s.startSpan(ctx, "AttendanceAdvisorClass")
	defer span.End()

	clm, err := s.authenticatedRole(ctx, "teacher")
	if err != nil {
		return nil, err
	}

	classID, err := s.repoDB.GetAdvisorClassID(ctx, clm.SubjectID)
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, goerror.NewBusiness("not assigned as an advisor", goerror.CodeForbidden)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get advisor class", "teacher_id", clm.SubjectID, "error", err)
		return nil, goerror.NewServer(err)
	}

	now := s.clock.Now()
	students, err := s.repoDB.GetAdvisorClassAttendance(ctx, classID, now)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get advisor class attendance", "class_id", classID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &entity.AdvisorClassReport{
		ClassID:  classID,
		Month:    now.Format("2006-01"),
		Students: students,
	}, nil
}
