package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"retailpulse/internal/loader"
	"retailpulse/pkg/contracts/domain"
)

// LoadFunc supplies raw transaction lines for a source. It matches
// loader.Load and is injectable for tests.
type LoadFunc func(ctx context.Context, src loader.Source) ([]domain.RawTransactionLine, error)

// DatasetCache holds the sanitized+derived base dataset for one source
// fingerprint at a time. The dataset is built once per distinct source
// content and reused across every filter/aggregation call; it is immutable
// after construction, so concurrent readers share it without copying.
//
// The fingerprint is the source's absolute path plus size and modification
// time, so replacing the file invalidates the cache on the next Get.
type DatasetCache struct {
	load   LoadFunc
	logger *slog.Logger

	mu          sync.Mutex
	fingerprint string
	dataset     []domain.CleanTransactionLine
}

// NewDatasetCache creates a cache around the given load function.
func NewDatasetCache(load LoadFunc, logger *slog.Logger) *DatasetCache {
	if logger == nil {
		logger = slog.Default()
	}
	return &DatasetCache{load: load, logger: logger}
}

// Get returns the cleaned base dataset for the source, building it on the
// first call and whenever the source fingerprint changes. Callers must treat
// the returned slice as read-only.
func (c *DatasetCache) Get(ctx context.Context, src loader.Source) ([]domain.CleanTransactionLine, error) {
	fp, err := sourceFingerprint(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", loader.ErrSourceUnavailable, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.fingerprint == fp && c.dataset != nil {
		c.logger.DebugContext(ctx, "base dataset cache hit",
			slog.String("fingerprint", fp),
			slog.Int("rows", len(c.dataset)),
		)
		return c.dataset, nil
	}

	raw, err := c.load(ctx, src)
	if err != nil {
		return nil, err
	}

	sanitized := Sanitize(raw)
	dataset := Derive(sanitized)

	c.logger.InfoContext(ctx, "base dataset built",
		slog.String("fingerprint", fp),
		slog.Int("raw_rows", len(raw)),
		slog.Int("clean_rows", len(dataset)),
		slog.Int("dropped", len(raw)-len(dataset)),
	)

	c.fingerprint = fp
	c.dataset = dataset
	return dataset, nil
}

// Invalidate drops the cached dataset so the next Get rebuilds it.
func (c *DatasetCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fingerprint = ""
	c.dataset = nil
}

// sourceFingerprint identifies the source content by path, size and mtime.
func sourceFingerprint(src loader.Source) (string, error) {
	abs, err := filepath.Abs(src.File)
	if err != nil {
		return "", fmt.Errorf("resolve source path: %v", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("stat source: %v", err)
	}
	return fmt.Sprintf("%s|%s|%d|%d", abs, src.Sheet, info.Size(), info.ModTime().UnixNano()), nil
}
