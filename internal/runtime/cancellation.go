package runtime

import "sync/atomic"

// CancellationToken is checked at each statement boundary, before each
// loop/iterator iteration, and before invoking any host call. Cancel is
// safe to call concurrently with Cancelled from any goroutine (used by
// map/filter's bounded-concurrency element evaluation).
type CancellationToken struct {
	cancelled atomic.Bool
}

// NewCancellationToken returns a token in the not-cancelled state.
func NewCancellationToken() *CancellationToken {
	return &CancellationToken{}
}

// Cancel marks the token cancelled. Idempotent.
func (c *CancellationToken) Cancel() { c.cancelled.Store(true) }

// Cancelled reports whether Cancel has been called.
func (c *CancellationToken) Cancelled() bool { return c.cancelled.Load() }
