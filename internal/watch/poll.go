package watch

import (
	"context"
	"time"

	"github.com/enferex/treetop/internal/registry"
)

// DefaultPollInterval is the fallback cadence between full stat sweeps.
const DefaultPollInterval = 25 * time.Millisecond

// PollBackend detects changes by statting every registry entry at a
// fixed cadence. It is the fallback for filesystems where kernel
// notifications are unavailable or unreliable.
type PollBackend struct {
	reg       *registry.Registry
	controls  <-chan Event
	interval  time.Duration
	lastSweep time.Time
	pending   []Event
	errored   []bool
}

// NewPollBackend creates a polling backend. The current modification
// times are recorded as the baseline so the first sweep only reports
// changes made after startup.
func NewPollBackend(reg *registry.Registry, controls <-chan Event, interval time.Duration) *PollBackend {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	b := &PollBackend{
		reg:      reg,
		controls: controls,
		interval: interval,
		errored:  make([]bool, reg.Len()),
	}
	for i := 0; i < reg.Len(); i++ {
		if _, err := reg.At(i).Touched(); err != nil {
			b.errored[i] = true
		}
	}
	b.lastSweep = time.Now()
	return b
}

// Wait returns the next queued event, a control request, or the result
// of one stat sweep. Sweeps happen one full interval apart; a smaller
// positive timeout only bounds the wait, returning None when the next
// sweep is not yet due, so a tight caller loop cannot stat faster than
// the configured cadence.
func (b *PollBackend) Wait(ctx context.Context, timeout time.Duration) (Event, error) {
	if ev, ok := b.pop(); ok {
		return ev, nil
	}

	wait := b.interval - time.Since(b.lastSweep)
	if wait < 0 {
		wait = 0
	}
	if timeout > 0 && timeout < wait {
		wait = timeout
	}
	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return Event{}, ctx.Err()
	case c, ok := <-b.controls:
		if !ok {
			return Event{}, ErrClosed
		}
		return c, nil
	case <-timer.C:
		if time.Since(b.lastSweep) < b.interval {
			return Event{Kind: None}, nil
		}
		b.lastSweep = time.Now()
		b.sweep()
		if ev, ok := b.pop(); ok {
			return ev, nil
		}
		return Event{Kind: None}, nil
	}
}

// sweep stats every entry once, queueing one event per observation.
// Several writes landing between sweeps collapse into a single change.
func (b *PollBackend) sweep() {
	for i := 0; i < b.reg.Len(); i++ {
		if b.errored[i] {
			continue
		}
		changed, err := b.reg.At(i).Touched()
		if err != nil {
			b.errored[i] = true
			b.pending = append(b.pending, Event{Kind: FileGone, Index: i})
			continue
		}
		if changed {
			b.pending = append(b.pending, Event{Kind: FileChanged, Index: i})
		}
	}
}

func (b *PollBackend) pop() (Event, bool) {
	if len(b.pending) == 0 {
		return Event{}, false
	}
	ev := b.pending[0]
	b.pending = b.pending[1:]
	return ev, true
}

// Close is a no-op; the polling backend holds no kernel resources.
func (b *PollBackend) Close() error { return nil }
