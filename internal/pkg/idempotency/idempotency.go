// Package idempotency tracks operation state in Redis so retried requests do
// not repeat side effects.
package idempotency

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	ErrAlreadyInProgress = errors.New("operation already in progress")
	ErrAlreadyCompleted  = errors.New("operation already completed")
	ErrAlreadyFailed     = errors.New("operation already failed")
	ErrInvalidState      = errors.New("invalid state")
)

// State describes where a keyed operation currently is in its lifecycle.
type State string

const (
	StateNone       State = "none"        // operation can proceed
	StateInProgress State = "in_progress" // operation already in progress
	StateCompleted  State = "completed"   // operation already completed
	StateFailed     State = "failed"      // previous attempt failed
	StateError      State = "error"       // state lookup itself failed
)

func (s State) String() string {
	return string(s)
}

// Idempotency coordinates exactly-once execution of keyed operations.
type Idempotency interface {
	Acquire(ctx context.Context, key string, lockDuration time.Duration) (State, error)
	MarkCompleted(ctx context.Context, key string, ttl time.Duration) error
	MarkFailed(ctx context.Context, key string, ttl time.Duration) error
	Exec(ctx context.Context, key string, fn func(context.Context) error, opts ...Option) error
}

// StateTracker implements Idempotency on Redis using SETNX.
type StateTracker struct {
	client *redis.Client
	prefix string
}

// New returns a Redis-backed state tracker.
func New(client *redis.Client) *StateTracker {
	return &StateTracker{
		client: client,
		prefix: "idempotency:",
	}
}

const (
	defaultLockDuration = time.Minute
	defaultStateTTL     = time.Minute
)

// Option tunes Exec behavior.
type Option func(*execOptions)

type execOptions struct {
	lockDuration time.Duration
	stateTTL     time.Duration
}

// WithLockDuration sets how long the in-progress lock is held.
func WithLockDuration(lockDuration time.Duration) Option {
	return func(o *execOptions) {
		o.lockDuration = lockDuration
	}
}

// WithStateTTL sets how long the terminal state is remembered.
func WithStateTTL(stateTTL time.Duration) Option {
	return func(o *execOptions) {
		o.stateTTL = stateTTL
	}
}

// Acquire tries to start an operation for key.
func (s *StateTracker) Acquire(ctx context.Context, key string, lockDuration time.Duration) (State, error) {
	fk := s.prefix + key

	acquired, err := s.client.SetNX(ctx, fk, StateInProgress.String(), lockDuration).Result()
	if err != nil {
		return StateError, err
	}
	if acquired {
		return StateNone, nil
	}

	result, err := s.client.Get(ctx, fk).Result()
	if errors.Is(err, redis.Nil) {
		// Lock expired between SetNX and Get; retry once.
		acquired, err = s.client.SetNX(ctx, fk, StateInProgress.String(), lockDuration).Result()
		if err != nil {
			return StateError, err
		}
		if acquired {
			return StateNone, nil
		}
		return StateError, ErrInvalidState
	}
	if err != nil {
		return StateError, err
	}

	return parseState(result)
}

func parseState(raw string) (State, error) {
	switch State(raw) {
	case StateInProgress, StateCompleted, StateFailed:
		return State(raw), nil
	default:
		return StateError, ErrInvalidState
	}
}

// MarkCompleted records a successful run for key.
func (s *StateTracker) MarkCompleted(ctx context.Context, key string, ttl time.Duration) error {
	return s.client.Set(ctx, s.prefix+key, StateCompleted.String(), ttl).Err()
}

// MarkFailed records a failed run for key.
func (s *StateTracker) MarkFailed(ctx context.Context, key string, ttl time.Duration) error {
	return s.client.Set(ctx, s.prefix+key, StateFailed.String(), ttl).Err()
}

// Exec runs fn exactly once per key, mapping prior states to sentinel errors.
func (s *StateTracker) Exec(ctx context.Context, key string, fn func(context.Context) error, opts ...Option) error {
	execOpt := &execOptions{}
	for _, opt := range opts {
		opt(execOpt)
	}
	if execOpt.lockDuration <= 0 {
		execOpt.lockDuration = defaultLockDuration
	}
	if execOpt.stateTTL <= 0 {
		execOpt.stateTTL = defaultStateTTL
	}

	state, err := s.Acquire(ctx, key, execOpt.lockDuration)
	if err != nil {
		return err
	}

	switch state {
	case StateInProgress:
		return ErrAlreadyInProgress
	case StateCompleted:
		return ErrAlreadyCompleted
	case StateFailed:
		return ErrAlreadyFailed
	}

	if err := fn(ctx); err != nil {
		if markErr := s.MarkFailed(ctx, key, execOpt.stateTTL); markErr != nil {
			return markErr
		}
		return err
	}

	return s.MarkCompleted(ctx, key, execOpt.stateTTL)
}
