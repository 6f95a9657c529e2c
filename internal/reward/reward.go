// Package reward turns obstacle passes into token grants.
// The Dispatcher is the session's reward hook: it never blocks the
// simulation and hands grants to a background worker that writes them
// to a Ledger.
package reward

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
)

var (
	// ErrQueueFull is returned when a grant is dropped because the worker is behind.
	ErrQueueFull = errors.New("reward: queue full")
	// ErrStopped is returned for grants offered after Stop.
	ErrStopped = errors.New("reward: dispatcher stopped")
)

// Grant is one token reward for one passed obstacle.
type Grant struct {
	Account   string
	SessionID string
	Amount    int
	At        time.Time
}

// Ledger persists grants.
type Ledger interface {
	RecordReward(ctx context.Context, g Grant) (int64, error)
}

// Options configures a Dispatcher.
type Options struct {
	Account      string // Connected account; empty means none
	SessionID    string
	Amount       int // Tokens per pass, default 1
	QueueSize    int // Pending grants before dropping, default 64
	Ledger       Ledger
	Logger       *log.Logger
	WriteTimeout time.Duration // Per-grant ledger timeout, default 5s
}

// Dispatcher implements the session reward hook.
type Dispatcher struct {
	opts  Options
	queue chan Grant

	earned  atomic.Int64
	dropped atomic.Int64
	failed  atomic.Int64
	stopped atomic.Bool

	startOnce sync.Once
	stopOnce  sync.Once
	stopCh    chan struct{}
	wg        sync.WaitGroup
}

// NewDispatcher creates a dispatcher. Call Start to begin writing grants.
func NewDispatcher(opts Options) *Dispatcher {
	if opts.Amount <= 0 {
		opts.Amount = 1
	}
	if opts.QueueSize <= 0 {
		opts.QueueSize = 64
	}
	if opts.WriteTimeout <= 0 {
		opts.WriteTimeout = 5 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	return &Dispatcher{
		opts:   opts,
		queue:  make(chan Grant, opts.QueueSize),
		stopCh: make(chan struct{}),
	}
}

// OnObstaclePassed records one pass. Without an account nothing is granted.
// It never blocks: when the queue is full the grant is dropped.
func (d *Dispatcher) OnObstaclePassed(accountPresent bool) error {
	if !accountPresent || d.opts.Account == "" {
		return nil
	}
	if d.stopped.Load() {
		return ErrStopped
	}

	g := Grant{
		Account:   d.opts.Account,
		SessionID: d.opts.SessionID,
		Amount:    d.opts.Amount,
		At:        time.Now(),
	}
	if d.opts.Ledger == nil {
		d.earned.Add(int64(g.Amount))
		return nil
	}

	select {
	case d.queue <- g:
		d.earned.Add(int64(g.Amount))
		return nil
	default:
		d.dropped.Add(1)
		return ErrQueueFull
	}
}

// Start launches the ledger worker. Extra calls are no-ops.
func (d *Dispatcher) Start(ctx context.Context) {
	d.startOnce.Do(func() {
		d.wg.Add(1)
		go d.worker(ctx)
	})
}

func (d *Dispatcher) worker(ctx context.Context) {
	defer d.wg.Done()

	for {
		select {
		case g := <-d.queue:
			d.write(ctx, g)
		case <-ctx.Done():
			return
		case <-d.stopCh:
			d.drain(ctx)
			return
		}
	}
}

// drain writes whatever is still queued.
func (d *Dispatcher) drain(ctx context.Context) {
	for {
		select {
		case g := <-d.queue:
			d.write(ctx, g)
		default:
			return
		}
	}
}

func (d *Dispatcher) write(ctx context.Context, g Grant) {
	if d.opts.Ledger == nil {
		return
	}
	wctx, cancel := context.WithTimeout(ctx, d.opts.WriteTimeout)
	defer cancel()

	if _, err := d.opts.Ledger.RecordReward(wctx, g); err != nil {
		d.failed.Add(1)
		d.opts.Logger.Warn("reward grant not recorded", "account", g.Account, "amount", g.Amount, "err", err)
	}
}

// Stop flushes pending grants and waits for the worker to exit.
// A dispatcher that was never started is flushed synchronously.
func (d *Dispatcher) Stop() {
	d.stopOnce.Do(func() {
		d.stopped.Store(true)
		close(d.stopCh)

		started := true
		d.startOnce.Do(func() { started = false })
		if !started {
			d.drain(context.Background())
			return
		}
		d.wg.Wait()
	})
}

// Earned returns the tokens granted so far.
func (d *Dispatcher) Earned() int64 {
	return d.earned.Load()
}

// Account returns the connected account, or "" when none.
func (d *Dispatcher) Account() string {
	return d.opts.Account
}

// Stats describes dispatcher health.
type Stats struct {
	Earned  int64
	Dropped int64
	Failed  int64
	Pending int
}

// Stats returns a snapshot of the counters.
func (d *Dispatcher) Stats() Stats {
	return Stats{
		Earned:  d.earned.Load(),
		Dropped: d.dropped.Load(),
		Failed:  d.failed.Load(),
		Pending: len(d.queue),
	}
}

func (s Stats) String() string {
	return fmt.Sprintf("earned=%d dropped=%d failed=%d pending=%d", s.Earned, s.Dropped, s.Failed, s.Pending)
}
