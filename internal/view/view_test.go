package view

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestView_ReloadReplacesSnapshot(t *testing.T) {
	ctx := context.Background()
	data := []string{"a"}
	v := New("orders", func(context.Context) ([]string, error) {
		return data, nil
	}, zap.NewNop())

	require.NoError(t, v.Reload(ctx))
	assert.Equal(t, []string{"a"}, v.Items())

	data = []string{"a", "b"}
	require.NoError(t, v.Reload(ctx))
	assert.Equal(t, []string{"a", "b"}, v.Items())
}

func TestView_FailedReloadDiscardsPreviousData(t *testing.T) {
	ctx := context.Background()
	fail := false
	v := New("orders", func(context.Context) ([]string, error) {
		if fail {
			return nil, fmt.Errorf("fetch failed")
		}
		return []string{"a"}, nil
	}, zap.NewNop())

	require.NoError(t, v.Reload(ctx))
	require.NotEmpty(t, v.Items())

	fail = true
	assert.Error(t, v.Reload(ctx))
	assert.Empty(t, v.Items(), "previous data is discarded in favor of an empty state")
	assert.Error(t, v.Err())

	fail = false
	require.NoError(t, v.Reload(ctx))
	assert.NoError(t, v.Err())
	assert.Equal(t, []string{"a"}, v.Items())
}

func TestView_EnsureLoadsOnlyOnce(t *testing.T) {
	ctx := context.Background()
	loads := 0
	v := New("categories", func(context.Context) ([]int, error) {
		loads++
		return []int{1}, nil
	}, zap.NewNop())

	require.NoError(t, v.Ensure(ctx))
	require.NoError(t, v.Ensure(ctx))
	assert.Equal(t, 1, loads)

	v.Clear()
	require.NoError(t, v.Ensure(ctx))
	assert.Equal(t, 2, loads)
}

func TestRegistry_ClearAllClearsEveryMountedView(t *testing.T) {
	ctx := context.Background()
	reg := NewRegistry()

	orders := New("orders", func(context.Context) ([]string, error) { return []string{"o"}, nil }, zap.NewNop())
	categories := New("categories", func(context.Context) ([]string, error) { return []string{"c"}, nil }, zap.NewNop())
	customers := New("customers", func(context.Context) ([]string, error) { return []string{"u"}, nil }, zap.NewNop())

	for _, v := range []*View[string]{orders, categories, customers} {
		require.NoError(t, v.Reload(ctx))
		reg.Add(v)
	}

	reg.ClearAll()

	assert.Empty(t, orders.Items())
	assert.Empty(t, categories.Items())
	assert.Empty(t, customers.Items())
}
