package db

import (
	"context"

	"github.com/upasthit/upasthit-api/internal/identity/entity"
	"github.com/upasthit/upasthit-api/internal/pkg/goerror"
)

// UpdatePassword replaces the credential and revokes any stored refresh
// token, so sessions opened with the old password cannot renew.
func (s *DB) UpdatePassword(ctx context.Context, id int64, role entity.Role, passwordHash string) (err error) {
	ctx, span := s.startSpan(ctx, "UpdatePassword")
	defer func() { s.endSpan(span, err) }()

	var table string
	switch role {
	case entity.RoleStudent:
		table = "students"
	case entity.RoleTeacher:
		table = "teachers"
	default:
		return goerror.ErrNotFound
	}

	tag, err := s.conn.Exec(ctx, `
		UPDATE `+table+` SET
			password_hash = $2,
			refresh_token_hash = NULL,
			updated_at = now()
		WHERE id = $1 AND deleted_at IS NULL`, id, passwordHash)
	if err != nil {
		return s.mapError(err)
	}

	if tag.RowsAffected() == 0 {
		return goerror.ErrNotFound
	}

	return nil
}
