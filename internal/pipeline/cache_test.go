package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retailpulse/internal/loader"
	"retailpulse/pkg/contracts/domain"
)

func tempSource(t *testing.T) loader.Source {
	t.Helper()
	path := filepath.Join(t.TempDir(), "transactions.csv")
	require.NoError(t, os.WriteFile(path, []byte("placeholder"), 0644))
	return loader.Source{File: path}
}

func countingLoad(calls *int, lines []domain.RawTransactionLine) LoadFunc {
	return func(ctx context.Context, src loader.Source) ([]domain.RawTransactionLine, error) {
		*calls++
		return lines, nil
	}
}

func TestDatasetCacheReuse(t *testing.T) {
	src := tempSource(t)
	ts := time.Date(2011, 1, 5, 10, 0, 0, 0, time.UTC)

	calls := 0
	cache := NewDatasetCache(countingLoad(&calls, []domain.RawTransactionLine{
		rawLine("536365", 3, 2.5, 17850, ts),
		rawLine("C536366", -1, 5, 17850, ts),
	}), nil)

	first, err := cache.Get(context.Background(), src)
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, 1, calls)

	// Same fingerprint: no reload, same dataset.
	second, err := cache.Get(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, first, second)
}

func TestDatasetCacheInvalidate(t *testing.T) {
	src := tempSource(t)
	ts := time.Date(2011, 1, 5, 10, 0, 0, 0, time.UTC)

	calls := 0
	cache := NewDatasetCache(countingLoad(&calls, []domain.RawTransactionLine{
		rawLine("536365", 3, 2.5, 17850, ts),
	}), nil)

	_, err := cache.Get(context.Background(), src)
	require.NoError(t, err)
	require.Equal(t, 1, calls)

	cache.Invalidate()

	_, err = cache.Get(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestDatasetCacheDetectsSourceChange(t *testing.T) {
	src := tempSource(t)
	ts := time.Date(2011, 1, 5, 10, 0, 0, 0, time.UTC)

	calls := 0
	cache := NewDatasetCache(countingLoad(&calls, []domain.RawTransactionLine{
		rawLine("536365", 3, 2.5, 17850, ts),
	}), nil)

	_, err := cache.Get(context.Background(), src)
	require.NoError(t, err)
	require.Equal(t, 1, calls)

	// Replacing the source content changes size and mtime.
	require.NoError(t, os.WriteFile(src.File, []byte("replaced content"), 0644))
	past := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(src.File, past, past))

	_, err = cache.Get(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestDatasetCacheMissingSource(t *testing.T) {
	calls := 0
	cache := NewDatasetCache(countingLoad(&calls, nil), nil)

	_, err := cache.Get(context.Background(), loader.Source{File: "does/not/exist.xlsx"})
	assert.ErrorIs(t, err, loader.ErrSourceUnavailable)
	assert.Zero(t, calls)
}
