// Package cmd implements the coopmatch CLI.
package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const app = "coopmatch"

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   app,
	Short: "coopmatch scores and acts on co-op job postings against a résumé",
}

// Execute runs the CLI. The command tree's context is cancelled on
// SIGINT/SIGTERM so a long batch or stream run can reach a checkpoint and
// shut down cleanly between jobs, per the Cancellation error kind's
// "clean shutdown between jobs" policy, instead of being killed mid-write.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ./coopmatch.yaml)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().String("db-path", "coopmatch.db", "path to the SQLite store")
	rootCmd.PersistentFlags().String("resume-path", "input/resume.pdf", "path to the candidate résumé")

	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	_ = viper.BindPFlag("db_path", rootCmd.PersistentFlags().Lookup("db-path"))
	_ = viper.BindPFlag("resume_path", rootCmd.PersistentFlags().Lookup("resume-path"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName("coopmatch")
	}
	viper.SetEnvPrefix("COOPMATCH")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Fatalf("reading config: %v", err)
		}
	}
}
