// Package otp generates random numeric one-time codes.
package otp

import (
	"crypto/rand"
	"math/big"
)

// Generator produces fixed-length numeric codes.
type Generator interface {
	// Generate returns a new random code.
	Generate() (string, error)
}

// Numeric generates codes from a cryptographically secure source.
//
// Codes are uniformly distributed over [0, 10^length) and zero padded, so
// "004213" is as likely as any other six-digit value.
type Numeric struct {
	length int
	max    *big.Int
}

// NewNumeric returns a generator for codes of the given length. Lengths
// outside 4-10 fall back to 6 digits.
func NewNumeric(length int) *Numeric {
	if length < 4 || length > 10 {
		length = 6
	}

	max := big.NewInt(10)
	max.Exp(max, big.NewInt(int64(length)), nil)

	return &Numeric{length: length, max: max}
}

// Generate returns a new random zero-padded numeric code.
func (n *Numeric) Generate() (string, error) {
	v, err := rand.Int(rand.Reader, n.max)
	if err != nil {
		return "", err
	}

	code := v.String()
	for len(code) < n.length {
		code = "0" + code
	}

	return code, nil
}
