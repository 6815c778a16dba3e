package client

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Gate is the client-local daily marker (see internal/gate).
type Gate interface {
	ShouldRun(today time.Time) bool
	MarkRan(today time.Time) error
}

// Functions is the remote-function collaborator used at bootstrap.
type Functions interface {
	CheckDeadlineNotifications(ctx context.Context) ([]string, error)
}

// Bootstrap runs the once-per-day scanner invocation at client
// startup. The checked flag guards against bootstrap logic re-running
// within the same loaded session; the gate guards across sessions on
// the same day.
type Bootstrap struct {
	gate      Gate
	functions Functions
	logger    *slog.Logger

	mu      sync.Mutex
	checked bool
}

func NewBootstrap(gate Gate, functions Functions, logger *slog.Logger) *Bootstrap {
	return &Bootstrap{gate: gate, functions: functions, logger: logger}
}

// Run invokes the scanner if neither guard blocks it. The gate only
// advances after a successful scan; a failed scan leaves it unchanged
// so the next session's bootstrap retries.
func (b *Bootstrap) Run(ctx context.Context, now time.Time) ([]string, error) {
	b.mu.Lock()
	if b.checked {
		b.mu.Unlock()
		return nil, nil
	}
	b.checked = true
	b.mu.Unlock()

	if !b.gate.ShouldRun(now) {
		return nil, nil
	}

	created, err := b.functions.CheckDeadlineNotifications(ctx)
	if err != nil {
		b.logger.Error("deadline scan did not run", "error", err)
		return nil, err
	}

	if err := b.gate.MarkRan(now); err != nil {
		b.logger.Error("failed to persist daily gate marker", "error", err)
	}

	b.logger.Info("deadline scan completed", "notifications_created", len(created))
	return created, nil
}
