package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/upasthit/upasthit-api/internal/academic/entity"
)

// UpsertStudents installs the roster rows in one transaction. Existing roll
// numbers are refreshed without touching their password.
func (s *DB) UpsertStudents(ctx context.Context, rows []entity.RosterRow, ids map[string]int64, passwordHashes map[string]string) (created, updated int, err error) {
	ctx, span := s.startSpan(ctx, "UpsertStudents")
	defer func() { s.endSpan(span, err) }()

	tx, err := s.conn.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, 0, s.mapError(err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	for _, row := range rows {
		var inserted bool
		err = tx.QueryRow(ctx, `
			INSERT INTO students (id, roll_no, email, name, password_hash, class_id)
			SELECT $1, $2, $3, $4, $5, c.id
			FROM classes c
			WHERE c.year || ' ' || c.branch = $6
			ON CONFLICT (roll_no) DO UPDATE SET
				email = EXCLUDED.email,
				name = EXCLUDED.name,
				class_id = EXCLUDED.class_id,
				updated_at = now()
			RETURNING (xmax = 0)`,
			ids[row.RollNo], row.RollNo, row.Email, row.Name,
			passwordHashes[row.RollNo], row.ClassName).Scan(&inserted)
		if err != nil {
			return 0, 0, s.mapError(err)
		}

		if inserted {
			created++
		} else {
			updated++
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return 0, 0, s.mapError(err)
	}

	return created, updated, nil
}
