package view

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// View holds the transient read-through copy of one list the dashboard
// displays. Reload is a full fetch-and-replace: it is idempotent and
// safe to call concurrently with itself, the last response to resolve
// wins. On a failed fetch the previous data is discarded in favor of an
// empty state; the error sticks until the next successful reload.
type View[T any] struct {
	name   string
	loader func(context.Context) ([]T, error)
	logger *zap.Logger

	mu     sync.RWMutex
	items  []T
	loaded bool
	err    error
}

func New[T any](name string, loader func(context.Context) ([]T, error), logger *zap.Logger) *View[T] {
	return &View[T]{name: name, loader: loader, logger: logger}
}

func (v *View[T]) Name() string { return v.name }

func (v *View[T]) Reload(ctx context.Context) error {
	items, err := v.loader(ctx)

	v.mu.Lock()
	defer v.mu.Unlock()
	if err != nil {
		v.items = nil
		v.loaded = false
		v.err = err
		v.logger.Warn("view load failed", zap.String("view", v.name), zap.Error(err))
		return err
	}
	v.items = items
	v.loaded = true
	v.err = nil
	return nil
}

// Ensure loads the view once if it has never been loaded, so a freshly
// mounted view serves data without waiting for a refresh trigger.
func (v *View[T]) Ensure(ctx context.Context) error {
	v.mu.RLock()
	loaded := v.loaded
	v.mu.RUnlock()
	if loaded {
		return nil
	}
	return v.Reload(ctx)
}

func (v *View[T]) Items() []T {
	v.mu.RLock()
	defer v.mu.RUnlock()
	out := make([]T, len(v.items))
	copy(out, v.items)
	return out
}

func (v *View[T]) Err() error {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.err
}

// Clear empties the snapshot, as the sign-out broadcast requires.
func (v *View[T]) Clear() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.items = nil
	v.loaded = false
	v.err = nil
}

// Clearer is the part of a view the sign-out broadcast needs.
type Clearer interface {
	Clear()
}

// Registry tracks every mounted view so cross-cutting signals can reach
// them all without knowing their element types.
type Registry struct {
	mu       sync.Mutex
	clearers []Clearer
}

func NewRegistry() *Registry {
	return &Registry{}
}

func (r *Registry) Add(c Clearer) {
	r.mu.Lock()
	r.clearers = append(r.clearers, c)
	r.mu.Unlock()
}

func (r *Registry) ClearAll() {
	r.mu.Lock()
	clearers := make([]Clearer, len(r.clearers))
	copy(clearers, r.clearers)
	r.mu.Unlock()

	for _, c := range clearers {
		c.Clear()
	}
}
