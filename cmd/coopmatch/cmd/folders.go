package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oclaw/coopmatch/internal/pipeline"
)

var foldersCmd = &cobra.Command{
	Use:   "folders",
	Short: "manage portal folder memberships",
}

var folderSyncName string

var foldersSyncCmd = &cobra.Command{
	Use:   "sync <job-id> [job-id...]",
	Short: "save the given jobs to a portal folder and record the membership locally",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runFoldersSync,
}

func init() {
	foldersSyncCmd.Flags().StringVar(&folderSyncName, "folder", "", "portal folder name (default: configured portal_folder)")
	foldersCmd.AddCommand(foldersSyncCmd)
	rootCmd.AddCommand(foldersCmd)
}

func runFoldersSync(cmd *cobra.Command, args []string) error {
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

	folder := folderSyncName
	if folder == "" {
		folder = a.cfg.PortalFolder
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	synced, err := orch.SyncFolders(ctx, session, folder, args)
	if err != nil {
		return err
	}
	fmt.Printf("synced %d/%d job(s) to folder %q\n", synced, len(args), folder)
	return nil
}
