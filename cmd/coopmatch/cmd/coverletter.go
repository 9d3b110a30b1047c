package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oclaw/coopmatch/internal/pipeline"
	"github.com/oclaw/coopmatch/internal/renderer"
)

var coverLetterCmd = &cobra.Command{
	Use:   "cover-letter",
	Short: "generate and render cover letters",
}

var (
	coverLetterTemplatePath string
	coverLetterOutputDir    string
)

var coverLetterGenerateCmd = &cobra.Command{
	Use:   "generate <job-id>",
	Short: "draft a cover letter via the configured LLM and render it to PDF",
	Args:  cobra.ExactArgs(1),
	RunE:  runCoverLetterGenerate,
}

func init() {
	coverLetterGenerateCmd.Flags().StringVar(&coverLetterTemplatePath, "template", "", "HTML template path (default: built-in template)")
	coverLetterGenerateCmd.Flags().StringVar(&coverLetterOutputDir, "out-dir", "output/cover-letters", "directory to write the rendered PDF into")
	coverLetterCmd.AddCommand(coverLetterGenerateCmd)
	rootCmd.AddCommand(coverLetterCmd)
}

func runCoverLetterGenerate(cmd *cobra.Command, args []string) error {
	jobID := args[0]

	a, err := buildApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if a.llmClient == nil {
		return fmt.Errorf("no llm.api_key configured; cover-letter generation requires an LLM client")
	}

	r, err := renderer.NewPlaywrightRenderer()
	if err != nil {
		return err
	}
	defer r.Close()

	orch := pipeline.New(a.store, a.matcher, a.cache, a.filterer, a.notify, a.llmClient, a.logger, a.cfg.ScrapeCheckpointEvery, a.cfg.PortalFolder)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cl, err := orch.GenerateCoverLetter(ctx, jobID, r, coverLetterTemplatePath, coverLetterOutputDir)
	if err != nil {
		return err
	}
	fmt.Printf("rendered cover letter for job %s at %s\n", cl.JobID, cl.FilePath)
	return nil
}
