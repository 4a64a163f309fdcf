package refresh

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeToggle struct {
	enabled atomic.Bool
}

func (f *fakeToggle) LiveUpdates() bool { return f.enabled.Load() }

func startCoordinator(t *testing.T, toggle LiveToggle, interval time.Duration) *Coordinator {
	t.Helper()
	c := NewCoordinator(toggle, interval, zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go c.Run(ctx)
	return c
}

func TestCoordinator_PollingDisabledByToggle(t *testing.T) {
	toggle := &fakeToggle{}
	c := startCoordinator(t, toggle, 10*time.Millisecond)

	var reloads atomic.Int64
	cancel := c.Register("orders", func(context.Context) error {
		reloads.Add(1)
		return nil
	})
	defer cancel()

	time.Sleep(100 * time.Millisecond)
	assert.Zero(t, reloads.Load(), "no polling reload may occur while live updates are off")
}

func TestCoordinator_PollingEnabled(t *testing.T) {
	toggle := &fakeToggle{}
	toggle.enabled.Store(true)
	c := startCoordinator(t, toggle, 10*time.Millisecond)

	var reloads atomic.Int64
	cancel := c.Register("orders", func(context.Context) error {
		reloads.Add(1)
		return nil
	})
	defer cancel()

	assert.Eventually(t, func() bool { return reloads.Load() >= 1 },
		time.Second, 5*time.Millisecond, "expected at least one reload per poll window")
}

func TestCoordinator_RealtimeEventTriggersImmediateReload(t *testing.T) {
	toggle := &fakeToggle{}
	toggle.enabled.Store(true)
	c := startCoordinator(t, toggle, time.Hour) // poll never fires

	var reloads atomic.Int64
	cancel := c.Register("orders", func(context.Context) error {
		reloads.Add(1)
		return nil
	})
	defer cancel()

	c.Notify(ChangeEvent{Table: "orders", Op: "INSERT", ID: "o1"})

	assert.Eventually(t, func() bool { return reloads.Load() >= 1 },
		time.Second, time.Millisecond, "a realtime insert must reload without waiting for the poll interval")
}

func TestCoordinator_RealtimeGatedByToggle(t *testing.T) {
	toggle := &fakeToggle{}
	c := startCoordinator(t, toggle, time.Hour)

	var reloads atomic.Int64
	cancel := c.Register("orders", func(context.Context) error {
		reloads.Add(1)
		return nil
	})
	defer cancel()

	c.Notify(ChangeEvent{Table: "orders", Op: "UPDATE", ID: "o1"})

	time.Sleep(50 * time.Millisecond)
	assert.Zero(t, reloads.Load(), "realtime events must be ignored while live updates are off")
}

func TestCoordinator_BumpIgnoresToggleAndIncrementsKey(t *testing.T) {
	toggle := &fakeToggle{} // live updates off
	c := startCoordinator(t, toggle, time.Hour)

	var reloads atomic.Int64
	cancel := c.Register("orders", func(context.Context) error {
		reloads.Add(1)
		return nil
	})
	defer cancel()

	before := c.Key()
	c.Bump()

	assert.Eventually(t, func() bool { return reloads.Load() >= 1 },
		time.Second, time.Millisecond)
	assert.Equal(t, before+1, c.Key())
}

func TestCoordinator_ReloadReachesAllViews(t *testing.T) {
	toggle := &fakeToggle{}
	c := startCoordinator(t, toggle, time.Hour)

	var orders, customers atomic.Int64
	defer c.Register("orders", func(context.Context) error {
		orders.Add(1)
		return nil
	})()
	defer c.Register("customers", func(context.Context) error {
		customers.Add(1)
		return nil
	})()

	c.Bump()

	assert.Eventually(t, func() bool {
		return orders.Load() >= 1 && customers.Load() >= 1
	}, time.Second, time.Millisecond)
}

func TestCoordinator_UnregisterStopsReloads(t *testing.T) {
	toggle := &fakeToggle{}
	c := startCoordinator(t, toggle, time.Hour)

	var reloads atomic.Int64
	cancel := c.Register("orders", func(context.Context) error {
		reloads.Add(1)
		return nil
	})

	c.Bump()
	assert.Eventually(t, func() bool { return reloads.Load() == 1 }, time.Second, time.Millisecond)

	cancel()
	c.Bump()

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int64(1), reloads.Load())
}
