package usecase

import (
	"context"
	"testing"

	"github.com/upasthit/upasthit-api/internal/academic/entity"
	"github.com/upasthit/upasthit-api/internal/pkg/goerror"
)

func TestTimetableStudent(t *testing.T) {
	// Arrange
	pack := newTestUsecase(t)
	pack.db.classID = 11
	pack.db.batchIDs = []int64{31}
	pack.db.studentRows = []entity.TimetableRow{
		{DayOfWeek: "Monday", LectureNo: 1, Duration: 1, LectureType: "LECTURE", SubjectName: "Maths", TeacherName: "Prof. Rao"},
		{DayOfWeek: "Monday", LectureNo: 3, Duration: 2, LectureType: "PRACTICAL", SubjectName: "Physics Lab", TeacherName: "Prof. Iyer", BatchName: "B1"},
	}

	// Act
	out, err := pack.uc.Timetable(studentCtx())

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Role != "student" {
		t.Fatalf("role = %q, want student", out.Role)
	}

	monday := out.Timetable["Monday"]
	if len(monday) != 3 {
		t.Fatalf("monday has %d slots, want 3", len(monday))
	}

	lecture := monday[1]
	if lecture.Subject != "Maths" || lecture.Teacher != "Prof. Rao" || lecture.Time != "9:30-10:30" {
		t.Fatalf("unexpected lecture slot: %+v", lecture)
	}
	if lecture.IsContinuation {
		t.Fatal("single-hour lecture must not be a continuation")
	}

	// the two-hour practical fills slots 3 and 4, the second as continuation
	first, second := monday[3], monday[4]
	if first.IsContinuation || !second.IsContinuation {
		t.Fatalf("continuation flags wrong: slot3=%v slot4=%v", first.IsContinuation, second.IsContinuation)
	}
	if second.ParentLecture != 3 {
		t.Fatalf("slot 4 parent = %d, want 3", second.ParentLecture)
	}
	if first.Batch != "B1" || second.Batch != "B1" {
		t.Fatalf("practical slots must carry the batch: %+v %+v", first, second)
	}
	if second.Time != "1:00-2:00" {
		t.Fatalf("slot 4 time = %q, want 1:00-2:00", second.Time)
	}
}

func TestTimetableTeacherShowsClass(t *testing.T) {
	// Arrange
	pack := newTestUsecase(t)
	pack.db.teacherRows = []entity.TimetableRow{
		{DayOfWeek: "Tuesday", LectureNo: 2, Duration: 1, LectureType: "LECTURE", SubjectName: "Maths", ClassName: "SE Comp"},
	}

	// Act
	out, err := pack.uc.Timetable(teacherCtx())

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	slot := out.Timetable["Tuesday"][2]
	if slot.Class != "SE Comp" {
		t.Fatalf("class = %q, want SE Comp", slot.Class)
	}
	if slot.Teacher != "" {
		t.Fatalf("teacher grid must not repeat the teacher name, got %q", slot.Teacher)
	}
}

func TestTimetableDropsSlotsPastGrid(t *testing.T) {
	// Arrange
	pack := newTestUsecase(t)
	pack.db.studentRows = []entity.TimetableRow{
		// starts at the last slot with a two-hour duration; the overflow hour
		// has no grid position and is dropped
		{DayOfWeek: "Friday", LectureNo: 7, Duration: 2, LectureType: "PRACTICAL", SubjectName: "Workshop", BatchName: "B2"},
	}

	// Act
	out, err := pack.uc.Timetable(studentCtx())

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Timetable["Friday"]) != 1 {
		t.Fatalf("friday has %d slots, want 1", len(out.Timetable["Friday"]))
	}
}

func TestTimetableServedFromCache(t *testing.T) {
	// Arrange
	pack := newTestUsecase(t)
	pack.db.studentRows = []entity.TimetableRow{
		{DayOfWeek: "Monday", LectureNo: 1, Duration: 1, LectureType: "LECTURE", SubjectName: "Maths"},
	}

	if _, err := pack.uc.Timetable(studentCtx()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pack.db.timetableCalls != 1 {
		t.Fatalf("db calls = %d, want 1", pack.db.timetableCalls)
	}

	// Act: the second read must come from the cache
	out, err := pack.uc.Timetable(studentCtx())

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pack.db.timetableCalls != 1 {
		t.Fatalf("db calls = %d after cached read, want 1", pack.db.timetableCalls)
	}
	if out.Timetable["Monday"][1].Subject != "Maths" {
		t.Fatalf("cached grid lost its content: %+v", out.Timetable)
	}
}

func TestTimetableUnauthenticated(t *testing.T) {
	// Arrange
	pack := newTestUsecase(t)

	// Act
	_, err := pack.uc.Timetable(context.Background())

	// Assert
	if code := asGoError(t, err).Code(); code != goerror.CodeUnauthorized {
		t.Fatalf("code = %v, want unauthorized", code)
	}
}
