package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/oclaw/coopmatch/internal/pipeline"
)

var batchFolder string

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "run one full batch pass: enumerate, fetch, score and filter every posting",
	RunE:  runBatch,
}

func init() {
	batchCmd.Flags().StringVar(&batchFolder, "folder", "", "portal folder to enumerate (default: search listing)")
	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	a, err := buildApp()
	if err != nil {
		return err
	}
	defer a.Close()

	session, err := openPortalSession(a.cfg)
	if err != nil {
		return err
	}

	orch := pipeline.New(a.store, a.matcher, a.cache, a.filterer, a.notify, a.llmClient, a.logger, a.cfg.ScrapeCheckpointEvery, a.cfg.PortalFolder)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	result, err := orch.RunBatch(ctx, session, batchFolder)
	if err != nil {
		a.logger.Error("batch run failed", zap.Error(err))
		return err
	}

	a.logger.Info("batch run complete",
		zap.Int("enumerated", result.Enumerated),
		zap.Int("fetched", result.Fetched),
		zap.Int("fetch_errors", result.FetchErrors),
		zap.Int("scored", result.Scored),
		zap.Int("cache_hits", result.CacheHits),
		zap.Int("passed_filter", len(result.Filtered)))

	for _, pair := range result.Filtered {
		fmt.Printf("%-10s %6.1f  %-40s  %s\n", pair.Job.JobID, pair.MatchResult.FitScore, truncate(pair.Job.Title, 40), pair.Job.Company)
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
