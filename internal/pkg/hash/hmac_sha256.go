package hash

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// HMACSHA256 implements Hash using a keyed SHA-256 digest.
//
// Unlike bcrypt it is deterministic and cheap, which suits short-lived values
// verified at high volume, such as one-time codes.
type HMACSHA256 struct {
	secret []byte
}

// NewHMACSHA256 creates a new hasher with a secret.
func NewHMACSHA256(secret string) *HMACSHA256 {
	return &HMACSHA256{secret: []byte(secret)}
}

// Hash returns the hex-encoded HMAC SHA-256 digest of the input string.
func (s *HMACSHA256) Hash(str string) ([]byte, error) {
	return s.digest(str), nil
}

// Verify checks whether the plaintext string matches the given hash in
// constant time.
func (s *HMACSHA256) Verify(hashed, str string) bool {
	return subtle.ConstantTimeCompare([]byte(hashed), s.digest(str)) == 1
}

func (s *HMACSHA256) digest(str string) []byte {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(str))
	sum := mac.Sum(nil)

	out := make([]byte, hex.EncodedLen(len(sum)))
	hex.Encode(out, sum)
	return out
}
