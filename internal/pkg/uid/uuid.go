// Package uid provides application-level unique ID generators.
package uid

import "github.com/google/uuid"

// StringID generates string identifiers.
type StringID interface {
	Generate() string
}

// NumberID generates int64 identifiers.
type NumberID interface {
	Generate() int64
}

// UUID generates RFC 4122 UUID strings, preferring time-ordered v7.
type UUID struct{}

// NewUUID returns a UUID generator.
func NewUUID() *UUID {
	return &UUID{}
}

// Generate returns a new UUID string.
func (u *UUID) Generate() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString() // fallback: uuidV4
	}
	return id.String()
}
