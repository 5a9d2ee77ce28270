// Package clock abstracts the wall clock so time-sensitive logic, such as OTP
// expiry and attendance date math, can run against a fixed time in tests.
package clock

import "time"

// Clocker is the read side of the wall clock.
type Clocker interface {
	Now() time.Time
}

// SystemClock reads the operating system clock.
type SystemClock struct{}

// New returns the production SystemClock.
func New() *SystemClock {
	return &SystemClock{}
}

func (*SystemClock) Now() time.Time {
	return time.Now()
}
