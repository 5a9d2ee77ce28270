package usecase

import (
	"testing"

	"github.com/upasthit/upasthit-api/internal/academic/entity"
	"github.com/upasthit/upasthit-api/internal/pkg/goerror"
)

func TestHomeStudent(t *testing.T) {
	// Arrange
	pack := newTestUsecase(t)
	pack.db.studentHome = &entity.HomeProfile{
		Name: "Aisha Khan", Role: "student", RollNo: "22BCS1042",
		Email: "aisha@college.test", ClassName: "SE Comp",
	}

	// Act
	profile, err := pack.uc.Home(studentCtx())

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profile.RollNo != "22BCS1042" || profile.ClassName != "SE Comp" {
		t.Fatalf("unexpected profile: %+v", profile)
	}

	// second read comes from the cache even after the source is gone
	pack.db.studentHome = nil
	cached, err := pack.uc.Home(studentCtx())
	if err != nil {
		t.Fatalf("unexpected error on cached read: %v", err)
	}
	if cached.Name != "Aisha Khan" {
		t.Fatalf("cached profile lost its content: %+v", cached)
	}
}

func TestHomeUnknownSubject(t *testing.T) {
	// Arrange
	pack := newTestUsecase(t)

	// Act
	_, err := pack.uc.Home(teacherCtx())

	// Assert
	if code := asGoError(t, err).Code(); code != goerror.CodeNotFound {
		t.Fatalf("code = %v, want not found", code)
	}
}
