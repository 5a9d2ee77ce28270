package db

import (
	"context"

	"github.com/upasthit/upasthit-api/internal/identity/entity"
)

// UpsertOtpChallenge installs a challenge as the single active one for the
// subject. A concurrent row for the same (subject_id, subject_role) is
// replaced atomically, so an old code can never verify after a new one is
// issued.
func (s *DB) UpsertOtpChallenge(ctx context.Context, challenge entity.OtpChallenge) (err error) {
	ctx, span := s.startSpan(ctx, "UpsertOtpChallenge")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, `
		INSERT INTO password_otps (id, subject_id, subject_role, purpose, code_hash, issued_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (subject_id, subject_role) DO UPDATE SET
			id = EXCLUDED.id,
			purpose = EXCLUDED.purpose,
			code_hash = EXCLUDED.code_hash,
			issued_at = EXCLUDED.issued_at,
			expires_at = EXCLUDED.expires_at`,
		challenge.ID, challenge.SubjectID, int16(challenge.Role), int16(challenge.Purpose),
		challenge.CodeHash, challenge.IssuedAt, challenge.ExpiresAt)

	return s.mapError(err)
}
