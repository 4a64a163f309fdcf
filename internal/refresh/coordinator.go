package refresh

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// ChangeEvent describes a row change pushed from the backend, either
// through the Postgres notification channel or in-process after a
// local mutation.
type ChangeEvent struct {
	Table string `json:"table"`
	Op    string `json:"op"` // INSERT, UPDATE, DELETE
	ID    string `json:"id"`
}

// LiveToggle reports whether live updates are currently enabled. The
// preferences store satisfies this.
type LiveToggle interface {
	LiveUpdates() bool
}

// Coordinator merges the three reload triggers — manual key bump,
// polling ticker, and realtime change events — into one reload call
// per registered view. Polling and realtime are gated by the
// live-updates toggle; a manual bump always reloads.
//
// Reload functions must be idempotent and safe to run concurrently
// with themselves: each reload is a full fetch-and-replace, so when
// triggers overlap the last response simply wins. Triggers are not
// coalesced beyond the fixed poll interval.
type Coordinator struct {
	logger   *zap.Logger
	toggle   LiveToggle
	interval time.Duration

	mu    sync.Mutex
	views map[string]func(context.Context) error

	key     atomic.Int64
	bumps   chan struct{}
	changes chan ChangeEvent
}

func NewCoordinator(toggle LiveToggle, interval time.Duration, logger *zap.Logger) *Coordinator {
	return &Coordinator{
		logger:   logger,
		toggle:   toggle,
		interval: interval,
		views:    make(map[string]func(context.Context) error),
		bumps:    make(chan struct{}, 1),
		changes:  make(chan ChangeEvent, 64),
	}
}

// Register adds a view's reload function and returns its cancel
// function, to be called when the view goes away.
func (c *Coordinator) Register(name string, reload func(context.Context) error) func() {
	c.mu.Lock()
	c.views[name] = reload
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.views, name)
		c.mu.Unlock()
	}
}

// Key returns the current manual refresh key. It only ever increases.
func (c *Coordinator) Key() int64 {
	return c.key.Load()
}

// Bump increments the refresh key and forces a reload of every view,
// regardless of the live-updates toggle. Called after actions known to
// change data, such as a successful sign-in or a completed drawer edit.
func (c *Coordinator) Bump() {
	c.key.Add(1)
	select {
	case c.bumps <- struct{}{}:
	default:
		// A bump is already pending; the reload it triggers will
		// observe the incremented key.
	}
}

// Notify enqueues a realtime change event. The event triggers an
// immediate reload if live updates are enabled when it is consumed.
func (c *Coordinator) Notify(ev ChangeEvent) {
	select {
	case c.changes <- ev:
	default:
		c.logger.Warn("change event queue full, dropping event",
			zap.String("table", ev.Table), zap.String("op", ev.Op))
	}
}

// Run drives the trigger loop until ctx is cancelled.
func (c *Coordinator) Run(ctx context.Context) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-c.bumps:
			c.reloadAll(ctx, "manual")

		case ev := <-c.changes:
			if !c.toggle.LiveUpdates() {
				continue
			}
			c.logger.Debug("realtime change received",
				zap.String("table", ev.Table), zap.String("op", ev.Op), zap.String("id", ev.ID))
			c.reloadAll(ctx, "realtime")

		case <-ticker.C:
			if !c.toggle.LiveUpdates() {
				continue
			}
			c.reloadAll(ctx, "poll")
		}
	}
}

func (c *Coordinator) reloadAll(ctx context.Context, reason string) {
	c.mu.Lock()
	reloads := make(map[string]func(context.Context) error, len(c.views))
	for name, fn := range c.views {
		reloads[name] = fn
	}
	c.mu.Unlock()

	for name, reload := range reloads {
		go func(name string, reload func(context.Context) error) {
			if err := reload(ctx); err != nil {
				c.logger.Warn("view reload failed",
					zap.String("view", name), zap.String("trigger", reason), zap.Error(err))
			}
		}(name, reload)
	}
}
