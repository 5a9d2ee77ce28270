package messaging

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/upasthit/upasthit-api/internal/pkg/stacktrace"
)

// callHandlerWithRecover converts a handler panic into an error so one bad
// message cannot take the consumer loop down.
func callHandlerWithRecover(ctx context.Context, kind string, fn func() error) (err error) {
	defer func() {
		rvr := recover()
		if rvr == nil {
			return
		}

		stack := debug.Stack()
		if paths := stacktrace.InternalPaths(stack); len(paths) > 0 {
			slog.ErrorContext(ctx, "panic in messaging handler", "kind", kind, "panic", rvr, "stack", paths)
		} else {
			slog.ErrorContext(ctx, "panic in messaging handler", "kind", kind, "panic", rvr, "stack", string(stack))
		}
		err = fmt.Errorf("messaging: panic in %s handler: %v", kind, rvr)
	}()

	return fn()
}
