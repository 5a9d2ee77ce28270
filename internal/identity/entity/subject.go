package entity

import "time"

// Subject is the authenticated party behind a login, regardless of which
// table it came from. RollNo is empty for teachers.
type Subject struct {
	ID           int64
	Role         Role
	RollNo       string
	Email        string
	Name         string
	PasswordHash string
}

// OtpChallenge is the single active one-time-code challenge for a subject.
// Only the HMAC-SHA256 digest of the code is stored; the plaintext exists
// in memory and in the notification email, never at rest.
type OtpChallenge struct {
	ID        int64
	SubjectID int64
	Role      Role
	Purpose   OtpPurpose
	CodeHash  string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Expired reports whether the challenge is strictly past its deadline at
// the given instant. A code presented at the exact expiry time still
// verifies. Expiry is lazy: rows are only touched when someone verifies.
func (c OtpChallenge) Expired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}

// VerifiedIdentity is the proof returned by a successful code verification.
type VerifiedIdentity struct {
	SubjectID int64
	Role      Role
	Purpose   OtpPurpose
}
