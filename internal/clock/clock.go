// Package clock provides the fixed-rate tick source that drives a running simulation.
package clock

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

// ErrRunning is returned by Start when the clock is already ticking.
var ErrRunning = errors.New("clock: already running")

// TickFunc is called once per tick from the clock goroutine.
// Returning false stops the clock; Stop must not be called from inside it.
type TickFunc func(now time.Time) bool

// run is one Start..Stop cycle.
type run struct {
	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

// Clock delivers ticks at a fixed rate on a single goroutine, so ticks never overlap.
// After Stop returns no further tick is delivered, including ticks the
// underlying ticker had already queued.
type Clock struct {
	interval time.Duration

	mu  sync.Mutex
	cur *run

	ticks atomic.Uint64
}

// New creates a stopped clock running at tickRate ticks per second.
// Nonpositive rates default to 60.
func New(tickRate int) *Clock {
	if tickRate <= 0 {
		tickRate = 60
	}
	return &Clock{interval: time.Second / time.Duration(tickRate)}
}

// Interval returns the time between ticks.
func (c *Clock) Interval() time.Duration {
	return c.interval
}

// Start begins ticking until Stop is called, ctx is done or fn returns false.
func (c *Clock) Start(ctx context.Context, fn TickFunc) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cur != nil && !closed(c.cur.done) {
		return ErrRunning
	}

	r := &run{
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
	c.cur = r
	go c.loop(ctx, r, fn)
	return nil
}

func (c *Clock) loop(ctx context.Context, r *run, fn TickFunc) {
	defer close(r.done)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.stop:
			return
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			// Stop wins over a tick that was already queued.
			select {
			case <-r.stop:
				return
			default:
			}
			if ctx.Err() != nil {
				return
			}
			c.ticks.Add(1)
			if !fn(now) {
				return
			}
		}
	}
}

// Stop halts the clock and waits for an in-flight tick to finish.
// It is safe to call multiple times and on a clock that never started.
func (c *Clock) Stop() {
	c.mu.Lock()
	r := c.cur
	c.mu.Unlock()

	if r == nil {
		return
	}
	r.stopOnce.Do(func() {
		close(r.stop)
	})
	<-r.done
}

// Done returns a channel closed when the current run ends.
// For a clock that never started the channel is already closed.
func (c *Clock) Done() <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cur == nil {
		ch := make(chan struct{})
		close(ch)
		return ch
	}
	return c.cur.done
}

// Running reports whether ticks are being delivered.
func (c *Clock) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.cur != nil && !closed(c.cur.done)
}

// Ticks returns the number of ticks delivered since the clock was created.
func (c *Clock) Ticks() uint64 {
	return c.ticks.Load()
}

func closed(ch chan struct{}) bool {
	select {
	case <-ch:
		return true
	default:
		return false
	}
}
