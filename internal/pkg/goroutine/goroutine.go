// Package goroutine runs background work with bounded concurrency and panic
// recovery.
package goroutine

import (
	"context"
	"errors"
	"log/slog"
	"runtime"
	"runtime/debug"
	"sync"

	"github.com/upasthit/upasthit-api/internal/pkg/stacktrace"
)

// DefaultMaxGoroutine is used when NewManager receives a non-positive limit.
const DefaultMaxGoroutine int = 100

// Manager runs functions in goroutines with a configurable concurrency limit.
//
// Errors returned by tasks are collected and surfaced by Wait.
type Manager struct {
	mu      sync.Mutex
	errs    []error
	wg      *sync.WaitGroup
	sema    chan struct{}
	stateMu sync.RWMutex
	closed  bool
}

// NewManager creates a new Manager with the provided maximum concurrency.
func NewManager(maxGoroutine int) *Manager {
	if maxGoroutine < 1 {
		maxGoroutine = runtime.NumCPU() * DefaultMaxGoroutine
	}

	return &Manager{
		wg:   &sync.WaitGroup{},
		sema: make(chan struct{}, maxGoroutine),
	}
}

// Go schedules a function to run in a goroutine if capacity is available.
//
// If the manager is at its limit or already closed, the function is not run
// and a warning is logged.
func (g *Manager) Go(pCtx context.Context, f func(ctx context.Context) error) {
	if g == nil {
		return
	}

	g.stateMu.RLock()
	if g.closed {
		g.stateMu.RUnlock()
		slog.WarnContext(pCtx, "goroutine manager is closed, skipping new goroutine")
		return
	}

	select {
	case g.sema <- struct{}{}:
		g.wg.Go(func() {
			g.stateMu.RUnlock()
			defer func() {
				<-g.sema
				logRecovered(pCtx, recover())
			}()

			select {
			case <-pCtx.Done():
				slog.WarnContext(pCtx, "goroutine canceled", "because", pCtx.Err())
			default:
				if err := f(pCtx); err != nil {
					g.mu.Lock()
					g.errs = append(g.errs, err)
					g.mu.Unlock()
				}
			}
		})

	default:
		g.stateMu.RUnlock()
		slog.WarnContext(pCtx, "maximum goroutine limit reached, failed to start new goroutine")
	}
}

func logRecovered(ctx context.Context, rvr any) {
	if rvr == nil {
		return
	}

	stack := debug.Stack()
	if paths := stacktrace.InternalPaths(stack); len(paths) > 0 {
		slog.ErrorContext(ctx, "panic occurred in goroutine", "stack", paths)
		return
	}
	slog.ErrorContext(ctx, "panic occurred in goroutine", "stack", string(stack))
}

// Wait blocks until all scheduled goroutines finish and returns any collected
// errors. After Wait the manager refuses new work.
func (g *Manager) Wait() error {
	if g == nil {
		return nil
	}

	g.stateMu.Lock()
	g.closed = true
	g.stateMu.Unlock()

	g.wg.Wait()

	return errors.Join(g.errs...)
}
