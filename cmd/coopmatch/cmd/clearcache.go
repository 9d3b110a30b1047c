package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var clearCacheCmd = &cobra.Command{
	Use:   "clear-cache",
	Short: "delete every persisted match result, forcing a full rescore on the next analyze/batch/stream run",
	RunE:  runClearCache,
}

func init() {
	rootCmd.AddCommand(clearCacheCmd)
}

func runClearCache(cmd *cobra.Command, args []string) error {
	a, err := buildApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	n, err := a.store.ClearMatchResults(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("cleared %d cached match result(s)\n", n)
	return nil
}
