package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oclaw/coopmatch/internal/embeddings"
	"github.com/oclaw/coopmatch/internal/matcher"
)

// buildVersion is set via -ldflags "-X github.com/oclaw/coopmatch/cmd/coopmatch/cmd.buildVersion=..."
// at release build time; it defaults to "dev" otherwise.
var buildVersion = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "print the CLI, embedding model and scoring algorithm versions",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("coopmatch %s\n", buildVersion)
		fmt.Printf("embedding model: %s\n", embeddings.ModelID)
		fmt.Printf("algorithm revision: %d\n", matcher.AlgorithmRevision)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
