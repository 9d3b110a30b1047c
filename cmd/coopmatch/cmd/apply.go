package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oclaw/coopmatch/internal/pipeline"
	"github.com/oclaw/coopmatch/internal/portal"
)

var (
	applyCoverLetterPath string
	applyResumePath      string
	applyExtraDocs       []string
)

var applyCmd = &cobra.Command{
	Use:   "apply <job-id>",
	Short: "submit an application for a previously scored job",
	Args:  cobra.ExactArgs(1),
	RunE:  runApply,
}

func init() {
	applyCmd.Flags().StringVar(&applyCoverLetterPath, "cover-letter", "", "path to a rendered cover letter PDF to upload")
	applyCmd.Flags().StringVar(&applyResumePath, "resume", "", "path to the résumé file to upload (default: configured resume_path)")
	applyCmd.Flags().StringSliceVar(&applyExtraDocs, "extra-doc", nil, "additional document path to upload (repeatable)")
	rootCmd.AddCommand(applyCmd)
}

func runApply(cmd *cobra.Command, args []string) error {
	jobID := args[0]

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

	resumePath := applyResumePath
	if resumePath == "" {
		resumePath = a.cfg.ResumePath
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	submitted, err := orch.Apply(ctx, session, jobID, portal.ApplyOptions{
		CoverLetterPath: applyCoverLetterPath,
		ResumePath:      resumePath,
		ExtraDocuments:  applyExtraDocs,
	})
	if err != nil {
		return err
	}
	fmt.Printf("application %d for job %s: %s\n", submitted.ID, submitted.JobID, submitted.Status)
	return nil
}
