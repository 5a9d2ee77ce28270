package usecase

import (
	"testing"

	"github.com/upasthit/upasthit-api/internal/academic/entity"
	"github.com/upasthit/upasthit-api/internal/pkg/goerror"
)

func TestAnnouncementCreateStudentClassPinned(t *testing.T) {
	// Arrange
	pack := newTestUsecase(t)
	pack.db.classID = 11

	// Act
	out, err := pack.uc.AnnouncementCreate(studentCtx(), AnnouncementCreateInput{
		Title:    "Notes shared",
		Content:  "Unit 3 notes are on the drive.",
		Audience: "class",
	})

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.ID == 0 {
		t.Fatal("expected a generated id")
	}

	stored := pack.db.announcements[0]
	if stored.ClassID == nil || *stored.ClassID != 11 {
		t.Fatalf("class announcement by a student must pin to their class, got %+v", stored.ClassID)
	}
	if stored.Priority != entity.PriorityNormal {
		t.Fatalf("priority = %q, want default normal", stored.Priority)
	}
	if stored.AuthorID != 101 || stored.AuthorRole != "student" {
		t.Fatalf("author = %d/%s, want 101/student", stored.AuthorID, stored.AuthorRole)
	}
}

func TestAnnouncementCreateBatchRequiresBatchID(t *testing.T) {
	// Arrange
	pack := newTestUsecase(t)

	// Act
	_, err := pack.uc.AnnouncementCreate(teacherCtx(), AnnouncementCreateInput{
		Title:    "Lab reschedule",
		Content:  "B1 lab moves to Thursday.",
		Audience: "batch",
	})

	// Assert
	if code := asGoError(t, err).Code(); code != goerror.CodeInvalidInput {
		t.Fatalf("code = %v, want invalid input", code)
	}
	if len(pack.db.announcements) != 0 {
		t.Fatal("nothing should be stored on validation failure")
	}
}

func TestAnnouncementListStudentScoped(t *testing.T) {
	// Arrange
	pack := newTestUsecase(t)
	pack.db.classID = 11
	pack.db.batchIDs = []int64{31}

	otherClass := int64(99)
	myBatch := int64(31)
	pack.db.announcements = []entity.Announcement{
		{ID: 1, Audience: entity.AudienceAll, Title: "Holiday"},
		{ID: 2, Audience: entity.AudienceClass, ClassID: &otherClass, Title: "Not mine"},
		{ID: 3, Audience: entity.AudienceBatch, BatchID: &myBatch, Title: "Lab shift"},
	}

	// Act
	items, err := pack.uc.AnnouncementList(studentCtx(), AnnouncementListInput{})

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d announcements, want 2: %+v", len(items), items)
	}
	if items[0].ID != 1 || items[1].ID != 3 {
		t.Fatalf("unexpected ids: %+v", items)
	}
}

func TestAnnouncementDeleteNotOwned(t *testing.T) {
	// Arrange
	pack := newTestUsecase(t)
	pack.db.announcements = []entity.Announcement{
		{ID: 7, AuthorID: 999, AuthorRole: "teacher"},
	}

	// Act
	err := pack.uc.AnnouncementDelete(teacherCtx(), AnnouncementDeleteInput{ID: 7})

	// Assert
	if code := asGoError(t, err).Code(); code != goerror.CodeNotFound {
		t.Fatalf("code = %v, want not found", code)
	}
	if len(pack.db.announcements) != 1 {
		t.Fatal("someone else's announcement must survive the delete")
	}
}

func TestAnnouncementDeleteOwned(t *testing.T) {
	// Arrange
	pack := newTestUsecase(t)
	pack.db.announcements = []entity.Announcement{
		{ID: 7, AuthorID: 201, AuthorRole: "teacher"},
	}

	// Act
	err := pack.uc.AnnouncementDelete(teacherCtx(), AnnouncementDeleteInput{ID: 7})

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pack.db.announcements) != 0 {
		t.Fatal("announcement should be gone")
	}
}
