package usecase

import (
	"strings"
	"testing"

	"github.com/upasthit/upasthit-api/internal/pkg/goerror"
)

func TestRosterImport(t *testing.T) {
	// Arrange
	pack := newTestUsecase(t)
	pack.db.createdCount = 2
	pack.db.updatedCount = 0

	file := rosterCSV(
		"22BCS1042,Aisha Khan,aisha@college.test,SE Comp",
		"22bcs1043, Rohan Mehta ,ROHAN@college.test,SE Comp",
	)

	// Act
	out, err := pack.uc.RosterImport(teacherCtx(), RosterImportInput{FileName: "se-comp.csv", File: file})

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Created != 2 || out.Updated != 0 {
		t.Fatalf("created/updated = %d/%d, want 2/0", out.Created, out.Updated)
	}
	if len(out.Skipped) != 0 {
		t.Fatalf("unexpected skipped rows: %+v", out.Skipped)
	}

	if len(pack.db.upserted) != 2 {
		t.Fatalf("upserted %d rows, want 2", len(pack.db.upserted))
	}

	// fields are normalized before validation
	second := pack.db.upserted[1]
	if second.RollNo != "22BCS1043" || second.Name != "Rohan Mehta" || second.Email != "rohan@college.test" {
		t.Fatalf("row not normalized: %+v", second)
	}

	// initial password is the roll number, stored hashed
	if pack.db.upsertedHashes["22BCS1042"] != "hashed:22BCS1042" {
		t.Fatalf("password hash = %q, want hashed roll number", pack.db.upsertedHashes["22BCS1042"])
	}
	if pack.db.upsertedIDs["22BCS1042"] == 0 {
		t.Fatal("expected a generated id per row")
	}

	// the raw file lands in object storage
	if err := pack.goroutine.Wait(); err != nil {
		t.Fatalf("background work failed: %v", err)
	}
	if pack.storage.count() != 1 {
		t.Fatalf("archived %d objects, want 1", pack.storage.count())
	}
}

func TestRosterImportSkipsBadRows(t *testing.T) {
	// Arrange
	pack := newTestUsecase(t)
	pack.db.createdCount = 1

	file := rosterCSV(
		"22BCS1042,Aisha Khan,aisha@college.test,SE Comp",
		"not-a-roll,Broken Row,broken@college.test,SE Comp",
		"22BCS1044,No Email Row,not-an-email,SE Comp",
		"22BCS1042,Duplicate Aisha,aisha2@college.test,SE Comp",
	)

	// Act
	out, err := pack.uc.RosterImport(teacherCtx(), RosterImportInput{FileName: "se-comp.csv", File: file})

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Skipped) != 3 {
		t.Fatalf("skipped %d rows, want 3: %+v", len(out.Skipped), out.Skipped)
	}
	if out.Skipped[0].Line != 3 {
		t.Fatalf("first skipped line = %d, want 3", out.Skipped[0].Line)
	}
	if out.Skipped[2].Reason != "duplicate roll number in file" {
		t.Fatalf("unexpected reason: %q", out.Skipped[2].Reason)
	}
	if len(pack.db.upserted) != 1 {
		t.Fatalf("upserted %d rows, want 1", len(pack.db.upserted))
	}
}

func TestRosterImportSameFileTwiceConflicts(t *testing.T) {
	// Arrange
	pack := newTestUsecase(t)
	pack.db.createdCount = 1

	content := "22BCS1042,Aisha Khan,aisha@college.test,SE Comp"
	if _, err := pack.uc.RosterImport(teacherCtx(), RosterImportInput{FileName: "a.csv", File: rosterCSV(content)}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Act: the identical bytes again, even under a different name
	_, err := pack.uc.RosterImport(teacherCtx(), RosterImportInput{FileName: "b.csv", File: rosterCSV(content)})

	// Assert
	if code := asGoError(t, err).Code(); code != goerror.CodeConflict {
		t.Fatalf("code = %v, want conflict", code)
	}
	if len(pack.db.upserted) != 1 {
		t.Fatal("second import must not touch the database")
	}
}

func TestRosterImportMissingColumn(t *testing.T) {
	// Arrange
	pack := newTestUsecase(t)

	file := strings.NewReader("roll_no,name,class\n22BCS1042,Aisha Khan,SE Comp\n")

	// Act
	_, err := pack.uc.RosterImport(teacherCtx(), RosterImportInput{FileName: "a.csv", File: file})

	// Assert
	if code := asGoError(t, err).Code(); code != goerror.CodeInvalidInput {
		t.Fatalf("code = %v, want invalid input", code)
	}
}

func TestRosterImportEmptyFile(t *testing.T) {
	// Arrange
	pack := newTestUsecase(t)

	// Act
	_, err := pack.uc.RosterImport(teacherCtx(), RosterImportInput{FileName: "a.csv", File: strings.NewReader("")})

	// Assert
	if code := asGoError(t, err).Code(); code != goerror.CodeInvalidInput {
		t.Fatalf("code = %v, want invalid input", code)
	}
}

func TestRosterImportStudentForbidden(t *testing.T) {
	// Arrange
	pack := newTestUsecase(t)

	file := rosterCSV("22BCS1042,Aisha Khan,aisha@college.test,SE Comp")

	// Act
	_, err := pack.uc.RosterImport(studentCtx(), RosterImportInput{FileName: "a.csv", File: file})

	// Assert
	if code := asGoError(t, err).Code(); code != goerror.CodeForbidden {
		t.Fatalf("code = %v, want forbidden", code)
	}
}
