package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/oclaw/coopmatch/internal/errs"
	"github.com/oclaw/coopmatch/internal/models"
	"github.com/oclaw/coopmatch/internal/pipeline"
)

var analyzeForceRecompute bool

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "re-score every active job already in the store, without touching the portal",
	RunE:  runAnalyze,
}

var reconcileUploadsCmd = &cobra.Command{
	Use:   "reconcile-uploads <job-id> <uploaded-file-name> [uploaded-file-name...]",
	Short: "mark a job's current cover letter uploaded if its file name appears in the portal's own upload list",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runReconcileUploads,
}

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeForceRecompute, "force", false, "recompute even if a cached result with the current engine version exists")
	analyzeCmd.AddCommand(reconcileUploadsCmd)
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	a, err := buildApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	jobs, err := a.store.ListActiveJobs(ctx)
	if err != nil {
		return err
	}

	scored := 0
	for _, job := range jobs {
		mr, err := a.cache.GetOrCompute(ctx, job.JobID, analyzeForceRecompute, func(ctx context.Context) (models.MatchResult, error) {
			result, scoreErr := a.matcher.Score(job, time.Now().UTC())
			if scoreErr != nil {
				return models.MatchResult{}, errs.New(errs.KindMatcher, "matcher.Score", job.JobID, scoreErr)
			}
			return result, nil
		})
		if err != nil {
			a.logger.Warn("scoring failed", zap.String("job_id", job.JobID), zap.Error(err))
			continue
		}
		scored++
		fmt.Printf("%-10s %6.1f  %s\n", job.JobID, mr.FitScore, truncate(job.Title, 50))
	}

	a.logger.Info("analyze complete", zap.Int("scored", scored), zap.Int("jobs", len(jobs)))
	return nil
}

func runReconcileUploads(cmd *cobra.Command, args []string) error {
	a, err := buildApp()
	if err != nil {
		return err
	}
	defer a.Close()

	orch := pipeline.New(a.store, a.matcher, a.cache, a.filterer, a.notify, a.llmClient, a.logger, a.cfg.ScrapeCheckpointEvery, a.cfg.PortalFolder)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	jobID, uploaded := args[0], args[1:]
	if err := orch.ReconcileUploads(ctx, jobID, uploaded); err != nil {
		return err
	}
	fmt.Printf("reconciled uploads for %s against %d file name(s)\n", jobID, len(uploaded))
	return nil
}
