// Package commands implements the applyhome CLI.
package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"applyhome/internal/config"
)

var (
	configPath string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "applyhome",
	Short: "applyhome collects open housing subscription notices from the applyhome API.",
	Long: "applyhome pages through every housing category of the applyhome subscription API,\n" +
		"keeps the notices still open for application, and exports them as JSON, Excel and Markdown.\n" +
		"Running it without a subcommand is the same as `applyhome collect`.",
	SilenceUsage: true,
	RunE:         runCollect,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultPath, "Path to YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override logging.level (debug, info, warn, error)")

	addNoticeFlags(rootCmd)
}

// ExecuteContext runs the CLI and exits non-zero on failure.
func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "❌", err)
		os.Exit(1)
	}
}
