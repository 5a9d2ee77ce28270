package hash

import (
	"golang.org/x/crypto/bcrypt"
)

// Bcrypt implements Hash using bcrypt.
//
// Pepper is appended to the plaintext before hashing and verifying. Keep the
// pepper in configuration, never in the database.
type Bcrypt struct {
	cost   int
	pepper string
}

// NewBcrypt returns a bcrypt-based hasher. cost controls the work factor
// (see bcrypt.DefaultCost); pepper is optional.
func NewBcrypt(cost int, pepper string) *Bcrypt {
	return &Bcrypt{cost: cost, pepper: pepper}
}

// Hash hashes plaintext using bcrypt.
func (h *Bcrypt) Hash(plaintext string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(plaintext+h.pepper), h.cost)
}

// Verify returns true when plaintext matches the hashed value.
func (h *Bcrypt) Verify(hashed, plaintext string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plaintext+h.pepper)) == nil
}
