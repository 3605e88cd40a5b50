package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nmsops/ticket-reconciler/internal/config"
	"github.com/nmsops/ticket-reconciler/internal/logger"
	"github.com/nmsops/ticket-reconciler/internal/service/reconciler"
	"github.com/nmsops/ticket-reconciler/internal/version"
)

var (
	// configPath stores the path to the configuration YAML file.
	configPath string
	// dailyPath is the daily ticket feed CSV.
	dailyPath string
	// historyPath is the NMS history CSV.
	historyPath string
	// outputPath is the annotated CSV destination.
	outputPath string
	// workbookPath optionally selects an Excel workbook output.
	workbookPath string
	// manifestPath optionally selects a YAML run manifest output.
	manifestPath string
	// logLevel sets the minimum logging level.
	logLevel string

	// rootCmd represents the base command for running a reconciliation batch.
	rootCmd = &cobra.Command{
		Use:   "ticket-reconciler",
		Short: "Validate daily tickets against the NMS alarm history.",
		Long: `Single-pass batch job that reconciles a daily operational ticket feed
against the NMS alarm history.

For every daily ticket the site code is derived from the short description,
the NMS history is reduced to the latest alarm per site, and the ticket is
classified as VALID (reported alarm matches the latest recorded alarm),
INVALID (it differs) or NOT IN NMS (site unknown or no site code found).

The output is the daily feed with site_code, latest_alarm_time,
latest_alarm_text and validation_status columns appended. An Excel workbook
with a summary sheet and a YAML run manifest with file checksums can be
written alongside.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			// Raise or lower log verbosity before any work starts.
			if level, ok := logger.ParseLogLevel(logLevel); ok {
				logger.SetLevel(level)
			}

			runOptions := &reconciler.Options{
				ConfigPath:   configPath,
				DailyPath:    dailyPath,
				HistoryPath:  historyPath,
				OutputPath:   outputPath,
				WorkbookPath: workbookPath,
				ManifestPath: manifestPath,
			}

			return reconciler.Run(ctx, runOptions)
		},
	}
)

// Execute runs the ticket-reconciler CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup command flags with consistent naming and descriptions.
	rootCmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	rootCmd.Flags().StringVar(&dailyPath, "daily", "", "path to the daily ticket feed CSV")
	rootCmd.Flags().StringVar(&historyPath, "history", "", "path to the NMS history CSV")
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "path for the annotated output CSV")
	rootCmd.Flags().StringVar(&workbookPath, "workbook", "", "optional path for an Excel workbook with a summary sheet")
	rootCmd.Flags().StringVar(&manifestPath, "manifest", "", "optional path for a YAML run manifest")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "info", "minimum log level (debug, info, warn, error)")

	for _, flag := range []string{"daily", "history", "output"} {
		if err := rootCmd.MarkFlagRequired(flag); err != nil {
			panic(err)
		}
	}
}
