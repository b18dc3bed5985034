package session

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Guard serializes overlapping actions on a single target: beginning a new
// action cancels the one in flight and only the latest action may finish.
type Guard struct {
	mu      sync.Mutex
	current uuid.UUID
	cancel  context.CancelFunc
}

// Begin starts a new action and returns its context and token. The context
// of the previous action, if any, is cancelled.
func (g *Guard) Begin(ctx context.Context) (context.Context, uuid.UUID) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.cancel != nil {
		g.cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	g.current = uuid.New()
	g.cancel = cancel
	return ctx, g.current
}

// Finish calls `fn` if `token` still belongs to the latest action and
// reports whether it did. `fn` runs under the guard's lock.
func (g *Guard) Finish(token uuid.UUID, fn func()) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if token != g.current {
		return false
	}
	fn()
	g.current = uuid.Nil
	g.cancel()
	g.cancel = nil
	return true
}

// InFlight reports whether an action has begun and not finished.
func (g *Guard) InFlight() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.current != uuid.Nil
}
