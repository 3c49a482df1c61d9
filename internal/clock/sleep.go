// Package clock provides helpers for time-related operations.
package clock

import (
	"context"
	"time"
)

// SleepWithContext waits for the duration or returns early if the context is canceled.
func SleepWithContext(ctx context.Context, d time.Duration) error {
	return WaitSignal(ctx, d, nil)
}

// WaitSignal waits for the duration, returning early without error when signal fires.
// A nil signal channel never fires.
func WaitSignal(ctx context.Context, d time.Duration, signal <-chan struct{}) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-signal:
		return nil
	case <-timer.C:
		return nil
	}
}

// Backoff doubles a retry delay on every failure up to a ceiling and resets on success.
type Backoff struct {
	base    time.Duration
	max     time.Duration
	current time.Duration
}

// NewBackoff returns a Backoff starting at base. A max below base disables the ceiling.
func NewBackoff(base, max time.Duration) *Backoff {
	return &Backoff{base: base, max: max, current: base}
}

// Next returns the delay to wait now and doubles the delay for the following call.
func (b *Backoff) Next() time.Duration {
	d := b.current
	next := b.current * 2
	if next <= 0 {
		next = b.current
	}
	if b.max >= b.base && next > b.max {
		next = b.max
	}
	b.current = next
	return d
}

// Reset restores the base delay.
func (b *Backoff) Reset() {
	b.current = b.base
}
