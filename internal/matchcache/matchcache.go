// Package matchcache memoizes MatchResult by job_id, backed by the
// relational store, versioned against the matcher's current engine
// version so a config or lexicon change invalidates stale entries without
// an explicit migration.
package matchcache

import (
	"context"
	"fmt"

	"github.com/oclaw/coopmatch/internal/errs"
	"github.com/oclaw/coopmatch/internal/models"
)

// ResultStore is the persistence surface the cache needs; satisfied by
// *store.Store.
type ResultStore interface {
	GetMatchResult(ctx context.Context, jobID string) (models.MatchResult, bool, error)
	UpsertMatchResult(ctx context.Context, mr models.MatchResult) error
}

// Cache memoizes match results against a fixed engine version.
type Cache struct {
	store         ResultStore
	engineVersion string
}

// New builds a Cache bound to one engine version.
func New(store ResultStore, engineVersion string) *Cache {
	return &Cache{store: store, engineVersion: engineVersion}
}

// Get returns the cached result for jobID if its analysis_version matches
// the current engine version. Otherwise it returns errs.ErrCacheMiss
// (a stale or absent cache entry are both treated as miss).
func (c *Cache) Get(ctx context.Context, jobID string) (models.MatchResult, error) {
	mr, ok, err := c.store.GetMatchResult(ctx, jobID)
	if err != nil {
		return models.MatchResult{}, fmt.Errorf("matchcache: %w", err)
	}
	if !ok {
		return models.MatchResult{}, errs.ErrCacheMiss
	}
	if mr.AnalysisVersion != c.engineVersion {
		return models.MatchResult{}, errs.ErrCacheMiss
	}
	return mr, nil
}

// Put upserts a freshly computed result, stamped with the cache's current
// engine version.
func (c *Cache) Put(ctx context.Context, mr models.MatchResult) error {
	mr.AnalysisVersion = c.engineVersion
	if err := c.store.UpsertMatchResult(ctx, mr); err != nil {
		return fmt.Errorf("matchcache: %w", err)
	}
	return nil
}

// GetOrCompute returns the cached result for jobID, or computes, caches
// and returns a fresh one via compute if the cache misses or the caller
// forces recompute.
func (c *Cache) GetOrCompute(ctx context.Context, jobID string, forceRecompute bool, compute func(ctx context.Context) (models.MatchResult, error)) (models.MatchResult, error) {
	if !forceRecompute {
		if mr, err := c.Get(ctx, jobID); err == nil {
			return mr, nil
		} else if kind, ok := errs.KindOf(err); !ok || kind != errs.KindCacheMiss {
			return models.MatchResult{}, err
		}
	}

	mr, err := compute(ctx)
	if err != nil {
		return models.MatchResult{}, err
	}
	if err := c.Put(ctx, mr); err != nil {
		return models.MatchResult{}, err
	}
	mr.AnalysisVersion = c.engineVersion
	return mr, nil
}
