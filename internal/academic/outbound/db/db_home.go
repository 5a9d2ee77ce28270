package db

import (
	"context"

	"github.com/upasthit/upasthit-api/internal/academic/entity"
)

func (s *DB) GetStudentHome(ctx context.Context, studentID int64) (_ *entity.HomeProfile, err error) {
	ctx, span := s.startSpan(ctx, "GetStudentHome")
	defer func() { s.endSpan(span, err) }()

	out := entity.HomeProfile{Role: "student"}
	err = s.conn.QueryRow(ctx, `
		SELECT s.name, s.roll_no, s.email, c.year || ' ' || c.branch
		FROM students s
		JOIN classes c ON c.id = s.class_id
		WHERE s.id = $1 AND s.deleted_at IS NULL`, studentID).
		Scan(&out.Name, &out.RollNo, &out.Email, &out.ClassName)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &out, nil
}

func (s *DB) GetTeacherHome(ctx context.Context, teacherID int64) (_ *entity.HomeProfile, err error) {
	ctx, span := s.startSpan(ctx, "GetTeacherHome")
	defer func() { s.endSpan(span, err) }()

	out := entity.HomeProfile{Role: "teacher"}
	err = s.conn.QueryRow(ctx, `
		SELECT t.name, t.email
		FROM teachers t
		WHERE t.id = $1 AND t.deleted_at IS NULL`, teacherID).
		Scan(&out.Name, &out.Email)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &out, nil
}
