package signals

import "sync"

// Cross-component signal names.
const (
	SignedOut     = "signedOut"     // clears every mounted view's list
	SignedIn      = "signedIn"      // triggers a one-time refresh bump
	OrdersMutated = "ordersMutated" // a dependent list should reload
)

// Bus is a small in-process publish/subscribe fanout for the named
// signals above. Handlers run synchronously on the publisher's
// goroutine, so publishing completes only after every listener has
// reacted.
type Bus struct {
	mu      sync.RWMutex
	subs    map[string]map[int]func()
	nextSub int
}

func NewBus() *Bus {
	return &Bus{subs: make(map[string]map[int]func())}
}

// Subscribe registers fn for the named signal and returns its cancel
// function.
func (b *Bus) Subscribe(name string, fn func()) func() {
	b.mu.Lock()
	if b.subs[name] == nil {
		b.subs[name] = make(map[int]func())
	}
	id := b.nextSub
	b.nextSub++
	b.subs[name][id] = fn
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		delete(b.subs[name], id)
		b.mu.Unlock()
	}
}

func (b *Bus) Publish(name string) {
	b.mu.RLock()
	fns := make([]func(), 0, len(b.subs[name]))
	for _, fn := range b.subs[name] {
		fns = append(fns, fn)
	}
	b.mu.RUnlock()

	for _, fn := range fns {
		fn()
	}
}
