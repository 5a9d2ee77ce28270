package inbound

import (
	"net/http"
	"time"
)

type AskRequest struct {
	Question string `json:"question"`
}

type AskResponse struct {
	Answer         string `json:"answer"`
	RemainingToday int64  `json:"remaining_today"`
	DailyLimit     int64  `json:"daily_limit"`
}

// AskDeniedResponse renders an admission refusal. It still travels the
// success envelope but with a 429 status so clients can branch on it.
type AskDeniedResponse struct {
	Reason         string `json:"reason"`
	WaitSeconds    int64  `json:"wait_seconds,omitempty"`
	RemainingToday int64  `json:"remaining_today"`
	DailyLimit     int64  `json:"daily_limit"`
}

func (AskDeniedResponse) StatusCode() int {
	return http.StatusTooManyRequests
}

func (AskDeniedResponse) Message() string {
	return "You have to wait before asking another question."
}

type StatsResponse struct {
	TodayCount      int64    `json:"today_count"`
	TotalCount      int64    `json:"total_count"`
	RemainingToday  int64    `json:"remaining_today"`
	DailyLimit      int64    `json:"daily_limit"`
	CanAskNow       bool     `json:"can_ask_now"`
	WaitSeconds     int64    `json:"wait_seconds"`
	RecentQuestions []string `json:"recent_questions"`
}

type HistoryItem struct {
	Question   string    `json:"question"`
	Answer     string    `json:"answer"`
	TokensUsed int32     `json:"tokens_used"`
	AskedAt    time.Time `json:"asked_at"`
}

type HistoryResponse struct {
	Items []HistoryItem `json:"items"`
	Total int64         `json:"total"`
}
