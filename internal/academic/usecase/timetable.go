package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/upasthit/upasthit-api/internal/academic/entity"
	"github.com/upasthit/upasthit-api/internal/pkg/goerror"
)

type TimetableOutput struct {
	Role      string
	Timetable entity.WeeklyTimetable
	TimeSlots map[int32]string
}

// Timetable returns the caller's weekly grid, students and teachers alike.
// The shaped grid is kept cache-aside in Redis; cache trouble degrades to a
// plain DB read.
func (s *Usecase) Timetable(ctx context.Context) (*TimetableOutput, error) {
	ctx, span := s.startSpan(ctx, "Timetable")
	defer span.End()

	clm, err := s.authenticated(ctx)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("%s:timetable:%d", clm.Role, clm.SubjectID)

	var cached TimetableOutput
	if s.cache.GetJSON(ctx, key, &cached) {
		return &cached, nil
	}

	var out *TimetableOutput
	switch clm.Role {
	case "student":
		out, err = s.studentTimetable(ctx, clm.SubjectID)
	case "teacher":
		out, err = s.teacherTimetable(ctx, clm.SubjectID)
	default:
		return nil, goerror.NewBusiness("not available for your role", goerror.CodeForbidden)
	}
	if err != nil {
		return nil, err
	}

	s.cache.SetJSON(ctx, key, out, s.cfg.GetDay("modules.academic.timetable_cache_ttl_days"))

	return out, nil
}

func (s *Usecase) studentTimetable(ctx context.Context, studentID int64) (*TimetableOutput, error) {
	classID, batchIDs, err := s.repoDB.GetStudentClassAndBatches(ctx, studentID)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "student not found for timetable", "subject_id", studentID)
		return nil, goerror.NewBusiness("account not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get student class", "subject_id", studentID, "error", err)
		return nil, goerror.NewServer(err)
	}

	rows, err := s.repoDB.GetStudentTimetable(ctx, classID, batchIDs)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get student timetable", "subject_id", studentID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &TimetableOutput{
		Role:      "student",
		Timetable: buildWeekly(rows, false),
		TimeSlots: timeSlots,
	}, nil
}

func (s *Usecase) teacherTimetable(ctx context.Context, teacherID int64) (*TimetableOutput, error) {
	rows, err := s.repoDB.GetTeacherTimetable(ctx, teacherID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get teacher timetable", "subject_id", teacherID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &TimetableOutput{
		Role:      "teacher",
		Timetable: buildWeekly(rows, true),
		TimeSlots: timeSlots,
	}, nil
}

// buildWeekly expands each lecture across its duration: a two-hour practical
// starting at slot 3 fills slots 3 and 4, the second marked as continuation.
// Slots past the end of the grid are dropped.
func buildWeekly(rows []entity.TimetableRow, forTeacher bool) entity.WeeklyTimetable {
	weekly := entity.WeeklyTimetable{}

	for _, row := range rows {
		if weekly[row.DayOfWeek] == nil {
			weekly[row.DayOfWeek] = map[int32]entity.TimetableSlot{}
		}

		for i := int32(0); i < row.Duration; i++ {
			slotNo := row.LectureNo + i
			slotTime, ok := timeSlots[slotNo]
			if !ok {
				break
			}

			slot := entity.TimetableSlot{
				Subject:        row.SubjectName,
				Type:           row.LectureType,
				Time:           slotTime,
				IsContinuation: i > 0,
				ParentLecture:  row.LectureNo,
			}
			if row.LectureType == "PRACTICAL" {
				slot.Batch = row.BatchName
			}
			if forTeacher {
				slot.Class = row.ClassName
			} else {
				slot.Teacher = row.TeacherName
			}

			weekly[row.DayOfWeek][slotNo] = slot
		}
	}

	return weekly
}
