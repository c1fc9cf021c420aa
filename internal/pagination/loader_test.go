package pagination

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pagedFetch serves pages of sequential ints from a fixed total, optionally
// failing specific pages a set number of times.
func pagedFetch(total int64, failures map[int]int) FetchFunc[int] {
	return func(_ context.Context, page int, limit int) ([]int, Info, error) {
		if remaining := failures[page]; remaining > 0 {
			failures[page] = remaining - 1
			return nil, Info{}, errors.New("fetch failed")
		}

		start := Offset(page, limit)
		var items []int
		for i := start; i < int(total) && i < start+limit; i++ {
			items = append(items, i)
		}

		return items, New(total, page, limit), nil
	}
}

func TestLoaderHappyPath(t *testing.T) {
	ctx := context.Background()
	loader := NewLoader(pagedFetch(25, nil), 10)

	assert.Equal(t, StateIdle, loader.State())
	assert.Empty(t, loader.Items())

	require.NoError(t, loader.Advance(ctx))
	assert.Equal(t, StateLoaded, loader.State())
	assert.Len(t, loader.Items(), 10)
	assert.Equal(t, Info{Total: 25, Pages: 3, Current: 1}, loader.Pagination())

	require.NoError(t, loader.Advance(ctx))
	assert.Equal(t, StateLoaded, loader.State())
	assert.Len(t, loader.Items(), 20)

	require.NoError(t, loader.Advance(ctx))
	assert.Equal(t, StateExhausted, loader.State())
	assert.Len(t, loader.Items(), 25)
	assert.Equal(t, Info{Total: 25, Pages: 3, Current: 3}, loader.Pagination())
}

func TestLoaderExhaustedIsTerminal(t *testing.T) {
	ctx := context.Background()
	calls := 0
	fetch := func(_ context.Context, page int, limit int) ([]int, Info, error) {
		calls++
		return []int{1, 2, 3}, New(3, page, limit), nil
	}

	loader := NewLoader(FetchFunc[int](fetch), 10)
	require.NoError(t, loader.Advance(ctx))
	assert.Equal(t, StateExhausted, loader.State())

	// Further advances never hit the fetcher again.
	require.NoError(t, loader.Advance(ctx))
	require.NoError(t, loader.Advance(ctx))
	assert.Equal(t, 1, calls)
	assert.Len(t, loader.Items(), 3)
}

func TestLoaderErrorKeepsItemsAndRetriesSamePage(t *testing.T) {
	ctx := context.Background()
	loader := NewLoader(pagedFetch(25, map[int]int{2: 1}), 10)

	require.NoError(t, loader.Advance(ctx))
	assert.Len(t, loader.Items(), 10)

	err := loader.Advance(ctx)
	require.Error(t, err)
	assert.Equal(t, StateError, loader.State())
	// Nothing already loaded is lost on a failed fetch.
	assert.Len(t, loader.Items(), 10)
	assert.Equal(t, Info{Total: 25, Pages: 3, Current: 1}, loader.Pagination())

	// The retry picks up at the page that failed, not past it.
	require.NoError(t, loader.Advance(ctx))
	assert.Equal(t, StateLoaded, loader.State())
	assert.Len(t, loader.Items(), 20)
	assert.Equal(t, 2, loader.Pagination().Current)
}

func TestLoaderFirstFetchError(t *testing.T) {
	ctx := context.Background()
	loader := NewLoader(pagedFetch(5, map[int]int{1: 1}), 10)

	require.Error(t, loader.Advance(ctx))
	assert.Equal(t, StateError, loader.State())
	assert.Empty(t, loader.Items())

	require.NoError(t, loader.Advance(ctx))
	assert.Equal(t, StateExhausted, loader.State())
	assert.Len(t, loader.Items(), 5)
}

func TestLoaderEmptyList(t *testing.T) {
	ctx := context.Background()
	loader := NewLoader(pagedFetch(0, nil), 10)

	require.NoError(t, loader.Advance(ctx))
	assert.Equal(t, StateExhausted, loader.State())
	assert.Empty(t, loader.Items())
	assert.Equal(t, Info{Total: 0, Pages: 0, Current: 1}, loader.Pagination())
}
