package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/oclaw/coopmatch/internal/pipeline"
)

var streamFolder string

var streamCmd = &cobra.Command{
	Use:   "stream",
	Short: "run streaming mode: fetch, score, filter and notify per posting as it's enumerated",
	RunE:  runStream,
}

func init() {
	streamCmd.Flags().StringVar(&streamFolder, "folder", "", "portal folder to enumerate (default: search listing)")
	rootCmd.AddCommand(streamCmd)
}

func runStream(cmd *cobra.Command, args []string) error {
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

	if err := orch.RunStream(ctx, session, streamFolder); err != nil {
		a.logger.Error("stream run failed", zap.Error(err))
		if a.notify != nil {
			_ = a.notify.NotifyError("stream run aborted", err)
		}
		return err
	}
	a.logger.Info("stream run complete")
	return nil
}
