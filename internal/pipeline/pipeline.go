// Package pipeline drives the full core workflow — batch and streaming
// modes over the same collaborators — and is the sole place that decides
// whether an error is fatal (aborts the run) or isolated (logged, skipped).
package pipeline

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/oclaw/coopmatch/internal/errs"
	"github.com/oclaw/coopmatch/internal/filter"
	"github.com/oclaw/coopmatch/internal/llm"
	"github.com/oclaw/coopmatch/internal/matchcache"
	"github.com/oclaw/coopmatch/internal/matcher"
	"github.com/oclaw/coopmatch/internal/models"
	"github.com/oclaw/coopmatch/internal/notifier"
	"github.com/oclaw/coopmatch/internal/portal"
	"github.com/oclaw/coopmatch/internal/store"
)

// Orchestrator drives batch and streaming runs against one portal session,
// one store, one matcher and one filter engine.
type Orchestrator struct {
	store    *store.Store
	matcher  *matcher.Matcher
	cache    *matchcache.Cache
	filterer *filter.Engine
	notify   *notifier.Notifier
	llmClient llm.Client
	logger   *zap.Logger

	checkpointEvery int
	portalFolder    string
}

// New builds an Orchestrator. llmClient and notify may be nil: downstream
// actions that need them simply become unavailable, not fatal.
func New(st *store.Store, m *matcher.Matcher, cache *matchcache.Cache, filterer *filter.Engine, notify *notifier.Notifier, llmClient llm.Client, logger *zap.Logger, checkpointEvery int, portalFolder string) *Orchestrator {
	return &Orchestrator{
		store: st, matcher: m, cache: cache, filterer: filterer,
		notify: notify, llmClient: llmClient, logger: logger,
		checkpointEvery: checkpointEvery, portalFolder: portalFolder,
	}
}

// BatchResult summarizes one run_batch invocation.
type BatchResult struct {
	Enumerated int
	Fetched    int
	FetchErrors int
	Scored     int
	CacheHits  int
	Filtered   []filter.Pair
}

// RunBatch enumerates every job row, fetches detail, upserts, scores via
// the match cache, then applies the batch filter to the whole set.
func (o *Orchestrator) RunBatch(ctx context.Context, session portal.Session, folder string) (BatchResult, error) {
	defer session.Close()

	var result BatchResult

	if err := session.Login(ctx); err != nil {
		return result, errs.New(errs.KindAuth, "pipeline.RunBatch", "", err)
	}

	rows, err := session.IterateJobs(ctx, folder)
	if err != nil {
		return result, errs.New(errs.KindFetch, "pipeline.RunBatch", "", err)
	}
	result.Enumerated = len(rows)

	keepIDs := make([]string, 0, len(rows))
	inserted := 0
	for _, row := range rows {
		if ctx.Err() != nil {
			return result, errs.New(errs.KindCancelled, "pipeline.RunBatch", "", ctx.Err())
		}

		job, err := session.FetchDetail(ctx, row.JobID)
		if err != nil {
			if kind, ok := errs.KindOf(err); !ok || !errs.IsFatal(kind) {
				o.logger.Warn("fetch failed, skipping job", zap.String("job_id", row.JobID), zap.Error(err))
				result.FetchErrors++
				continue
			}
			return result, err
		}
		result.Fetched++

		if err := o.store.UpsertJob(ctx, job); err != nil {
			return result, err
		}
		keepIDs = append(keepIDs, job.JobID)
		inserted++

		if inserted%o.checkpointEvery == 0 {
			o.logger.Info("checkpoint", zap.Int("jobs_committed", inserted))
		}
	}

	if err := o.store.MarkInactiveExcept(ctx, keepIDs); err != nil {
		return result, err
	}

	activeJobs, err := o.store.ListActiveJobs(ctx)
	if err != nil {
		return result, err
	}

	var pairs []filter.Pair
	for _, job := range activeJobs {
		if ctx.Err() != nil {
			return result, errs.New(errs.KindCancelled, "pipeline.RunBatch", "", ctx.Err())
		}

		mr, hit, err := o.scoreWithCache(ctx, job)
		if err != nil {
			if kind, ok := errs.KindOf(err); ok && !errs.IsFatal(kind) {
				o.logger.Warn("scoring failed, skipping job", zap.String("job_id", job.JobID), zap.Error(err))
				continue
			}
			return result, err
		}
		if hit {
			result.CacheHits++
		} else {
			result.Scored++
		}
		pairs = append(pairs, filter.Pair{Job: job, MatchResult: mr})
	}

	result.Filtered = o.filterer.ApplyBatch(pairs)
	return result, nil
}

// RunStream enumerates job rows and, for each one, runs the full
// fetch -> upsert -> score -> filter -> act loop before advancing. A
// per-job failure is logged and isolated; the loop continues.
func (o *Orchestrator) RunStream(ctx context.Context, session portal.Session, folder string) error {
	defer session.Close()

	if err := session.Login(ctx); err != nil {
		return errs.New(errs.KindAuth, "pipeline.RunStream", "", err)
	}

	rows, err := session.IterateJobs(ctx, folder)
	if err != nil {
		return errs.New(errs.KindFetch, "pipeline.RunStream", "", err)
	}

	for _, row := range rows {
		if ctx.Err() != nil {
			return errs.New(errs.KindCancelled, "pipeline.RunStream", "", ctx.Err())
		}
		if err := o.processOne(ctx, session, row); err != nil {
			if kind, ok := errs.KindOf(err); ok && errs.IsFatal(kind) {
				return err
			}
			o.logger.Warn("job failed, continuing stream", zap.String("job_id", row.JobID), zap.Error(err))
		}
	}
	return nil
}

func (o *Orchestrator) processOne(ctx context.Context, session portal.Session, row portal.JobRow) error {
	job, err := session.FetchDetail(ctx, row.JobID)
	if err != nil {
		return err
	}

	if err := o.store.UpsertJob(ctx, job); err != nil {
		return err
	}

	mr, _, err := o.scoreWithCache(ctx, job)
	if err != nil {
		return err
	}
	if err := o.store.UpsertMatchResult(ctx, mr); err != nil {
		return err
	}

	decision := o.filterer.DecideRealtime(job, mr)

	if err := o.notify.NotifyMatch(job, mr, decision); err != nil {
		o.logger.Warn("notification failed", zap.String("job_id", job.JobID), zap.Error(err))
	}

	if decision == filter.DecisionAutosaveFolder {
		if err := session.SaveToFolder(ctx, job.JobID, o.portalFolder); err != nil {
			o.logger.Warn("save_to_folder failed", zap.String("job_id", job.JobID), zap.Error(err))
		} else if err := o.store.AddFolderMembership(ctx, job.JobID, o.portalFolder); err != nil {
			o.logger.Warn("recording folder membership failed", zap.String("job_id", job.JobID), zap.Error(err))
		}
	}
	return nil
}

func (o *Orchestrator) scoreWithCache(ctx context.Context, job models.Job) (models.MatchResult, bool, error) {
	hit := true
	mr, err := o.cache.GetOrCompute(ctx, job.JobID, false, func(ctx context.Context) (models.MatchResult, error) {
		hit = false
		scored, scoreErr := o.matcher.Score(job, time.Now().UTC())
		if scoreErr != nil {
			return models.MatchResult{}, errs.New(errs.KindMatcher, "matcher.Score", job.JobID, scoreErr)
		}
		return scored, nil
	})
	if err != nil {
		return models.MatchResult{}, false, fmt.Errorf("pipeline: scoring job %s: %w", job.JobID, err)
	}
	return mr, hit, nil
}
