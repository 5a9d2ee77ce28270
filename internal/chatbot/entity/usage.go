package entity

import "time"

// UsageEvent is one answered question. The log is append-only and is written
// only after the answering service has responded.
type UsageEvent struct {
	ID         int64
	SubjectID  int64
	Question   string
	Answer     string
	TokensUsed int32
	CreatedAt  time.Time
}

// DailyStat is the per-day rollup kept alongside the raw log.
type DailyStat struct {
	Day       time.Time
	Questions int64
	Tokens    int64
}

type DenyReason int16

const (
	DenyReasonUnknown    DenyReason = 0
	DenyReasonDailyLimit DenyReason = 1
	DenyReasonCooldown   DenyReason = 2
)

func (r DenyReason) String() string {
	switch r {
	case DenyReasonDailyLimit:
		return "daily_limit"
	case DenyReasonCooldown:
		return "cooldown"
	default:
		return "unknown"
	}
}

// Decision is the admission verdict for one ask attempt.
type Decision struct {
	Allowed        bool
	RemainingToday int64
	WaitSeconds    int64
	Reason         DenyReason
}
