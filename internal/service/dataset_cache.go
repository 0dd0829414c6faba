package service

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/locvowork/orderdash/internal/consolidate"
	"github.com/locvowork/orderdash/internal/domain"
	"github.com/locvowork/orderdash/internal/logger"
)

type cacheEntry struct {
	modTime time.Time
	dataset *domain.Dataset
}

// DatasetCache memoizes consolidated datasets by source path and modification time.
// A changed file is reloaded on the next access; Invalidate forces a reload.
type DatasetCache struct {
	source   domain.SheetSource
	pipeline *consolidate.Pipeline

	mu      sync.Mutex
	entries map[string]cacheEntry
	now     func() time.Time
}

func NewDatasetCache(source domain.SheetSource, pipeline *consolidate.Pipeline) *DatasetCache {
	return &DatasetCache{
		source:   source,
		pipeline: pipeline,
		entries:  make(map[string]cacheEntry),
		now:      time.Now,
	}
}

// Load returns the dataset for path, consolidating it when the cached copy is stale.
func (c *DatasetCache) Load(ctx context.Context, path string) (*domain.Dataset, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[path]; ok && e.modTime.Equal(info.ModTime()) {
		logger.DebugLog(ctx, "dataset cache hit for %s (%s)", path, e.dataset.ID)
		return e.dataset, nil
	}
	logger.DebugLog(ctx, "dataset cache miss for %s", path)

	sheets, err := c.source.ReadSheets(ctx, path)
	if err != nil {
		return nil, err
	}
	ds, err := c.pipeline.Run(ctx, sheets)
	if err != nil {
		return nil, err
	}
	ds.ID = uuid.New()
	ds.Source = path
	ds.ModTime = info.ModTime()
	ds.LoadedAt = c.now()

	c.entries[path] = cacheEntry{modTime: info.ModTime(), dataset: ds}
	logger.InfoLog(ctx, "loaded dataset %s from %s", ds.ID, path)
	return ds, nil
}

// Invalidate drops the cached dataset of path.
func (c *DatasetCache) Invalidate(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, path)
}
