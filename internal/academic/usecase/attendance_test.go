package usecase

import (
	"testing"
	"time"

	"github.com/upasthit/upasthit-api/internal/academic/entity"
	"github.com/upasthit/upasthit-api/internal/pkg/goerror"
)

func TestAttendanceOverall(t *testing.T) {
	// Arrange
	pack := newTestUsecase(t)
	pack.db.overall = &entity.OverallAttendance{TotalClasses: 40, PresentClasses: 33, Percentage: 82.5}

	// Act
	out, err := pack.uc.AttendanceOverall(studentCtx())

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Percentage != 82.5 {
		t.Fatalf("percentage = %v, want 82.5", out.Percentage)
	}
}

func TestAttendanceOverallTeacherForbidden(t *testing.T) {
	// Arrange
	pack := newTestUsecase(t)

	// Act
	_, err := pack.uc.AttendanceOverall(teacherCtx())

	// Assert
	if code := asGoError(t, err).Code(); code != goerror.CodeForbidden {
		t.Fatalf("code = %v, want forbidden", code)
	}
}

func TestAttendanceMonthly(t *testing.T) {
	// Arrange
	pack := newTestUsecase(t)
	pack.db.monthly = []entity.MonthlyAttendance{
		{Month: "2026-08", TotalClasses: 20, PresentClasses: 18, Percentage: 90},
		{Month: "2026-07", TotalClasses: 22, PresentClasses: 15, Percentage: 68.18},
	}

	// Act
	items, err := pack.uc.AttendanceMonthly(studentCtx())

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 || items[0].Month != "2026-08" {
		t.Fatalf("unexpected months: %+v", items)
	}
}

func TestAttendanceAbsentees(t *testing.T) {
	// Arrange
	pack := newTestUsecase(t)
	pack.db.absent = []entity.AbsentStudent{
		{AttendanceID: 5001, RollNo: "22BCS1042", Name: "Aisha"},
	}

	// Act
	items, err := pack.uc.AttendanceAbsentees(teacherCtx(), AbsenteesInput{
		TimetableID: 700,
		Date:        time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC),
	})

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 || items[0].RollNo != "22BCS1042" {
		t.Fatalf("unexpected absentees: %+v", items)
	}
}

func TestAttendanceAbsenteesStudentForbidden(t *testing.T) {
	// Arrange
	pack := newTestUsecase(t)

	// Act
	_, err := pack.uc.AttendanceAbsentees(studentCtx(), AbsenteesInput{
		TimetableID: 700,
		Date:        time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC),
	})

	// Assert
	if code := asGoError(t, err).Code(); code != goerror.CodeForbidden {
		t.Fatalf("code = %v, want forbidden", code)
	}
}

func TestAttendanceAdvisorClass(t *testing.T) {
	// Arrange
	pack := newTestUsecase(t)
	pack.db.advisorClassID = 7
	pack.db.advisorRows = []entity.AdvisorStudentAttendance{
		{RollNo: "22BCS1042", Name: "Aisha", TotalLectures: 20, PresentLectures: 18, Percentage: 90},
		{RollNo: "22BCS1043", Name: "Dev", TotalLectures: 0, PresentLectures: 0, Percentage: 0},
	}

	// Act
	out, err := pack.uc.AttendanceAdvisorClass(teacherCtx())

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.ClassID != 7 {
		t.Fatalf("class id = %d, want 7", out.ClassID)
	}
	if out.Month != "2026-08" {
		t.Fatalf("month = %q, want 2026-08", out.Month)
	}
	if len(out.Students) != 2 || out.Students[1].TotalLectures != 0 {
		t.Fatalf("unexpected students: %+v", out.Students)
	}
	if !pack.db.advisorMonthSeen.Equal(pack.clock.now) {
		t.Fatalf("report queried month %v, want %v", pack.db.advisorMonthSeen, pack.clock.now)
	}
}

func TestAttendanceAdvisorClassNotAnAdvisor(t *testing.T) {
	// Arrange: no advisor row for the caller
	pack := newTestUsecase(t)

	// Act
	_, err := pack.uc.AttendanceAdvisorClass(teacherCtx())

	// Assert
	if code := asGoError(t, err).Code(); code != goerror.CodeForbidden {
		t.Fatalf("code = %v, want forbidden", code)
	}
}

func TestAttendanceAdvisorClassStudentForbidden(t *testing.T) {
	// Arrange
	pack := newTestUsecase(t)
	pack.db.advisorClassID = 7

	// Act
	_, err := pack.uc.AttendanceAdvisorClass(studentCtx())

	// Assert
	if code := asGoError(t, err).Code(); code != goerror.CodeForbidden {
		t.Fatalf("code = %v, want forbidden", code)
	}
}

func TestAttendanceAbsenteesValidation(t *testing.T) {
	// Arrange
	pack := newTestUsecase(t)

	// Act: missing timetable id
	_, err := pack.uc.AttendanceAbsentees(teacherCtx(), AbsenteesInput{
		Date: time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC),
	})

	// Assert
	if code := asGoError(t, err).Code(); code != goerror.CodeInvalidInput {
		t.Fatalf("code = %v, want invalid input", code)
	}
}
