package prefs

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"storeadmin/internal/daterange"
)

type memoryRepository struct {
	values map[string][]byte
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{values: make(map[string][]byte)}
}

func (m *memoryRepository) Get(ctx context.Context, key string) ([]byte, error) {
	return m.values[key], nil
}

func (m *memoryRepository) Set(ctx context.Context, key string, value []byte) error {
	m.values[key] = value
	return nil
}

func TestStore_Defaults(t *testing.T) {
	store := NewStore(newMemoryRepository(), zap.NewNop())

	assert.False(t, store.LiveUpdates())
	assert.Equal(t, daterange.Default(), store.DateRange())
}

func TestStore_SetLiveUpdates_PersistsAndBroadcasts(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRepository()
	store := NewStore(repo, zap.NewNop())

	var got []Event
	cancel := store.Subscribe(func(ev Event) { got = append(got, ev) })
	defer cancel()

	require.NoError(t, store.SetLiveUpdates(ctx, true))

	assert.True(t, store.LiveUpdates())
	assert.Equal(t, []byte("true"), repo.values[KeyLiveUpdates])
	require.Len(t, got, 1)
	assert.Equal(t, EventLiveUpdatesChanged, got[0].Name)
	assert.True(t, got[0].LiveUpdates)

	// Reload from persistence into a fresh store.
	fresh := NewStore(repo, zap.NewNop())
	require.NoError(t, fresh.Load(ctx))
	assert.True(t, fresh.LiveUpdates())
}

func TestStore_SetDateRange_PersistsAndBroadcasts(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRepository()
	store := NewStore(repo, zap.NewNop())

	var got []Event
	cancel := store.Subscribe(func(ev Event) { got = append(got, ev) })
	defer cancel()

	r := daterange.Range{
		Label: "Jan 2024",
		Value: daterange.ValueCustom,
		Start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, store.SetDateRange(ctx, r))

	assert.Equal(t, r, store.DateRange())
	require.Len(t, got, 1)
	assert.Equal(t, EventDateRangeChanged, got[0].Name)
	assert.Equal(t, r, got[0].DateRange)

	fresh := NewStore(repo, zap.NewNop())
	require.NoError(t, fresh.Load(ctx))
	assert.Equal(t, daterange.ValueCustom, fresh.DateRange().Value)
	assert.True(t, fresh.DateRange().Start.Equal(r.Start))
	assert.True(t, fresh.DateRange().End.Equal(r.End))
}

func TestStore_Load_IgnoresMalformedValues(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRepository()
	repo.values[KeyLiveUpdates] = []byte(`"not a bool"`)
	repo.values[KeyDateRange] = []byte(`{"value":"fortnight"}`)

	store := NewStore(repo, zap.NewNop())
	require.NoError(t, store.Load(ctx))

	assert.False(t, store.LiveUpdates())
	assert.Equal(t, daterange.Default(), store.DateRange())
}

func TestStore_Unsubscribe(t *testing.T) {
	ctx := context.Background()
	store := NewStore(newMemoryRepository(), zap.NewNop())

	calls := 0
	cancel := store.Subscribe(func(Event) { calls++ })

	require.NoError(t, store.SetLiveUpdates(ctx, true))
	cancel()
	require.NoError(t, store.SetLiveUpdates(ctx, false))

	assert.Equal(t, 1, calls)
}
