package prefs

import (
	"context"
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"storeadmin/internal/daterange"
)

// Storage keys. These double as the change event names broadcast to
// subscribers so listeners stay in sync without re-reading storage.
const (
	KeyLiveUpdates = "liveUpdates"
	KeyDateRange   = "dateRange"

	EventLiveUpdatesChanged = "liveUpdatesChanged"
	EventDateRangeChanged   = "dateRangeChanged"
)

type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

type Event struct {
	Name        string
	LiveUpdates bool
	DateRange   daterange.Range
}

// Store is the single source of truth for the live-updates toggle and
// the selected date range. Both are persisted through the repository
// and fanned out to subscribers on every change, replacing the ad hoc
// named browser events the dashboard used to rely on.
type Store struct {
	repo   Repository
	logger *zap.Logger

	mu          sync.RWMutex
	liveUpdates bool
	dateRange   daterange.Range
	subs        map[int]func(Event)
	nextSub     int
}

func NewStore(repo Repository, logger *zap.Logger) *Store {
	return &Store{
		repo:      repo,
		logger:    logger,
		dateRange: daterange.Default(),
		subs:      make(map[int]func(Event)),
	}
}

// Load hydrates the store from persisted preferences. Missing keys keep
// their defaults; a corrupt value is logged and skipped.
func (s *Store) Load(ctx context.Context) error {
	raw, err := s.repo.Get(ctx, KeyLiveUpdates)
	if err != nil {
		return err
	}
	if raw != nil {
		var enabled bool
		if err := json.Unmarshal(raw, &enabled); err != nil {
			s.logger.Warn("ignoring malformed liveUpdates preference", zap.Error(err))
		} else {
			s.mu.Lock()
			s.liveUpdates = enabled
			s.mu.Unlock()
		}
	}

	raw, err = s.repo.Get(ctx, KeyDateRange)
	if err != nil {
		return err
	}
	if raw != nil {
		var r daterange.Range
		if err := json.Unmarshal(raw, &r); err != nil || !r.Value.Valid() {
			s.logger.Warn("ignoring malformed dateRange preference", zap.Error(err))
		} else {
			s.mu.Lock()
			s.dateRange = r
			s.mu.Unlock()
		}
	}

	return nil
}

func (s *Store) LiveUpdates() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.liveUpdates
}

func (s *Store) SetLiveUpdates(ctx context.Context, enabled bool) error {
	raw, _ := json.Marshal(enabled)
	if err := s.repo.Set(ctx, KeyLiveUpdates, raw); err != nil {
		return err
	}

	s.mu.Lock()
	s.liveUpdates = enabled
	s.mu.Unlock()

	s.notify(Event{Name: EventLiveUpdatesChanged, LiveUpdates: enabled, DateRange: s.DateRange()})
	return nil
}

func (s *Store) DateRange() daterange.Range {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dateRange
}

func (s *Store) SetDateRange(ctx context.Context, r daterange.Range) error {
	raw, err := json.Marshal(r)
	if err != nil {
		return err
	}
	if err := s.repo.Set(ctx, KeyDateRange, raw); err != nil {
		return err
	}

	s.mu.Lock()
	s.dateRange = r
	s.mu.Unlock()

	s.notify(Event{Name: EventDateRangeChanged, LiveUpdates: s.LiveUpdates(), DateRange: r})
	return nil
}

// Subscribe registers fn for change events and returns its cancel
// function. Callers tie the cancel to their own shutdown.
func (s *Store) Subscribe(fn func(Event)) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *Store) notify(ev Event) {
	s.mu.RLock()
	fns := make([]func(Event), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.RUnlock()

	for _, fn := range fns {
		fn(ev)
	}
}
