package cmd

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "inspect and manage the local store",
}

var dbStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "print active-job and match-result counts and how many results meet min_match_score (application counts are not printed)",
	RunE:  runDBStats,
}

var dbExportPath string

var dbExportCmd = &cobra.Command{
	Use:   "export",
	Short: "export every match result to CSV",
	RunE:  runDBExport,
}

func init() {
	dbExportCmd.Flags().StringVar(&dbExportPath, "out", "matches.csv", "output CSV path")
	dbCmd.AddCommand(dbStatsCmd, dbExportCmd)
	rootCmd.AddCommand(dbCmd)
}

func runDBStats(cmd *cobra.Command, args []string) error {
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
	results, err := a.store.ListMatchResults(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("active jobs:    %d\n", len(jobs))
	fmt.Printf("match results:  %d\n", len(results))

	var passed int
	for _, r := range results {
		if r.FitScore >= a.cfg.MinMatchScore {
			passed++
		}
	}
	fmt.Printf("above min_match_score (%.1f): %d\n", a.cfg.MinMatchScore, passed)
	return nil
}

func runDBExport(cmd *cobra.Command, args []string) error {
	a, err := buildApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	results, err := a.store.ListMatchResults(ctx)
	if err != nil {
		return err
	}

	f, err := os.Create(dbExportPath)
	if err != nil {
		return fmt.Errorf("creating %q: %w", dbExportPath, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"job_id", "fit_score", "keyword_match", "semantic_coverage", "semantic_strength", "seniority_alignment", "analyzed_at"}); err != nil {
		return err
	}
	for _, r := range results {
		if err := w.Write([]string{
			r.JobID,
			fmt.Sprintf("%.1f", r.FitScore),
			fmt.Sprintf("%.4f", r.KeywordMatch),
			fmt.Sprintf("%.4f", r.SemanticCoverage),
			fmt.Sprintf("%.4f", r.SemanticStrength),
			fmt.Sprintf("%.4f", r.SeniorityAlignment),
			r.AnalyzedAt.Format("2006-01-02T15:04:05Z07:00"),
		}); err != nil {
			return err
		}
	}

	a.logger.Info("exported match results", zap.Int("rows", len(results)))
	fmt.Printf("wrote %d rows to %s\n", len(results), dbExportPath)
	return nil
}
