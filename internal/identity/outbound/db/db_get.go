package db

import (
	"context"

	"github.com/upasthit/upasthit-api/internal/identity/entity"
	"github.com/upasthit/upasthit-api/internal/pkg/goerror"
)

func (s *DB) GetStudentByRollNo(ctx context.Context, rollNo string) (_ *entity.Subject, err error) {
	ctx, span := s.startSpan(ctx, "GetStudentByRollNo")
	defer func() { s.endSpan(span, err) }()

	row := s.conn.QueryRow(ctx, `
		SELECT id, roll_no, email, name, password_hash
		FROM students
		WHERE roll_no = $1 AND deleted_at IS NULL`, rollNo)

	subject := entity.Subject{Role: entity.RoleStudent}
	if err = row.Scan(&subject.ID, &subject.RollNo, &subject.Email, &subject.Name, &subject.PasswordHash); err != nil {
		return nil, s.mapError(err)
	}

	return &subject, nil
}

func (s *DB) GetTeacherByEmail(ctx context.Context, email string) (_ *entity.Subject, err error) {
	ctx, span := s.startSpan(ctx, "GetTeacherByEmail")
	defer func() { s.endSpan(span, err) }()

	row := s.conn.QueryRow(ctx, `
		SELECT id, email, name, password_hash
		FROM teachers
		WHERE email = $1 AND deleted_at IS NULL`, email)

	subject := entity.Subject{Role: entity.RoleTeacher}
	if err = row.Scan(&subject.ID, &subject.Email, &subject.Name, &subject.PasswordHash); err != nil {
		return nil, s.mapError(err)
	}

	return &subject, nil
}

func (s *DB) GetSubjectByID(ctx context.Context, id int64, role entity.Role) (_ *entity.Subject, err error) {
	ctx, span := s.startSpan(ctx, "GetSubjectByID")
	defer func() { s.endSpan(span, err) }()

	subject := entity.Subject{Role: role}
	switch role {
	case entity.RoleStudent:
		row := s.conn.QueryRow(ctx, `
			SELECT id, roll_no, email, name, password_hash
			FROM students
			WHERE id = $1 AND deleted_at IS NULL`, id)
		err = row.Scan(&subject.ID, &subject.RollNo, &subject.Email, &subject.Name, &subject.PasswordHash)
	case entity.RoleTeacher:
		row := s.conn.QueryRow(ctx, `
			SELECT id, email, name, password_hash
			FROM teachers
			WHERE id = $1 AND deleted_at IS NULL`, id)
		err = row.Scan(&subject.ID, &subject.Email, &subject.Name, &subject.PasswordHash)
	default:
		return nil, goerror.ErrNotFound
	}

	if err != nil {
		return nil, s.mapError(err)
	}

	return &subject, nil
}

func (s *DB) GetOtpChallenge(ctx context.Context, subjectID int64, role entity.Role) (_ *entity.OtpChallenge, err error) {
	ctx, span := s.startSpan(ctx, "GetOtpChallenge")
	defer func() { s.endSpan(span, err) }()

	row := s.conn.QueryRow(ctx, `
		SELECT id, subject_id, subject_role, purpose, code_hash, issued_at, expires_at
		FROM password_otps
		WHERE subject_id = $1 AND subject_role = $2`, subjectID, int16(role))

	var challenge entity.OtpChallenge
	var roleVal, purposeVal int16
	err = row.Scan(&challenge.ID, &challenge.SubjectID, &roleVal, &purposeVal,
		&challenge.CodeHash, &challenge.IssuedAt, &challenge.ExpiresAt)
	if err != nil {
		return nil, s.mapError(err)
	}

	challenge.Role = entity.Role(roleVal)
	challenge.Purpose = entity.OtpPurpose(purposeVal)

	return &challenge, nil
}
