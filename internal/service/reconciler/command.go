package reconciler

import (
	"context"
	"errors"
	"fmt"

	"github.com/nmsops/ticket-reconciler/internal/config"
	"github.com/nmsops/ticket-reconciler/internal/domain/reconcile"
	"github.com/nmsops/ticket-reconciler/internal/logger"
	"github.com/nmsops/ticket-reconciler/internal/repository/report"
	"github.com/nmsops/ticket-reconciler/internal/repository/tickets"
	"github.com/nmsops/ticket-reconciler/pkg/checksum"
)

// Options contains inputs for the reconciliation entry point.
type Options struct {
	// ConfigPath specifies the path to the settings YAML file.
	ConfigPath string
	// DailyPath is the daily ticket feed CSV.
	DailyPath string
	// HistoryPath is the NMS history CSV.
	HistoryPath string
	// OutputPath is where the annotated CSV is written.
	OutputPath string
	// WorkbookPath optionally selects an Excel workbook output.
	WorkbookPath string
	// ManifestPath optionally selects a YAML run manifest output.
	ManifestPath string
}

// Required-path errors surfaced before any file is touched.
var (
	errDailyPathRequired   = errors.New("daily ticket feed path must be provided")
	errHistoryPathRequired = errors.New("NMS history path must be provided")
	errOutputPathRequired  = errors.New("output path must be provided")
)

// Run executes one reconciliation batch. It either completes with a fully
// annotated output or fails without writing partial results: sinks are
// written only after every row has been classified.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "ticket-reconciler")

	if err := validateOptions(opts); err != nil {
		return err
	}

	// Load settings; defaults apply when no file is present.
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	loc, err := cfg.Location()
	if err != nil {
		return fmt.Errorf("resolve output timezone: %w", err)
	}

	logInputFingerprints(ctx, opts)

	// Read both feeds; schema errors abort before any row is interpreted.
	table, err := tickets.ReadDaily(opts.DailyPath, cfg.Daily)
	if err != nil {
		return fmt.Errorf("read daily tickets: %w", err)
	}

	history, stats, err := tickets.ReadHistory(opts.HistoryPath, cfg.History, cfg.TimeLayout)
	if err != nil {
		return fmt.Errorf("read NMS history: %w", err)
	}

	logger.InfoKV(ctx, "Inputs loaded",
		"daily_rows", len(table.Records),
		"history_rows", stats.Rows)

	if stats.BadTimestamps > 0 {
		logger.WarnKV(ctx, "History rows with missing or unparseable alarm times",
			"count", stats.BadTimestamps)
	}

	if err = ctx.Err(); err != nil {
		return err
	}

	results, err := reconcile.Reconcile(table.Tickets, history, reconcile.Options{
		StrictMatch: cfg.StrictMatch,
	})
	if err != nil {
		return fmt.Errorf("reconcile: %w", err)
	}

	summary := reconcile.Summarize(results)
	logger.InfoKV(ctx, "Classification complete",
		"total", summary.Total,
		"valid", summary.Valid,
		"invalid", summary.Invalid,
		"not_in_nms", summary.NotInNMS)

	if err = tickets.WriteValidated(opts.OutputPath, table, results, loc, cfg.TimeLayout); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	logger.InfoKV(ctx, "Validated tickets written", "path", opts.OutputPath)

	if opts.WorkbookPath != "" {
		if err = report.WriteWorkbook(opts.WorkbookPath, table, results, summary, loc, cfg.TimeLayout); err != nil {
			return fmt.Errorf("write workbook: %w", err)
		}

		logger.InfoKV(ctx, "Workbook written", "path", opts.WorkbookPath)
	}

	if opts.ManifestPath != "" {
		if err = writeManifest(opts, summary); err != nil {
			return fmt.Errorf("write manifest: %w", err)
		}

		logger.InfoKV(ctx, "Run manifest written", "path", opts.ManifestPath)
	}

	return nil
}

// validateOptions checks the mandatory paths are set.
func validateOptions(opts *Options) error {
	switch {
	case opts.DailyPath == "":
		return errDailyPathRequired
	case opts.HistoryPath == "":
		return errHistoryPathRequired
	case opts.OutputPath == "":
		return errOutputPathRequired
	default:
		return nil
	}
}

// logInputFingerprints records input checksums for the audit trail. A
// checksum failure here only loses the log line; reading the file will
// surface the real error.
func logInputFingerprints(ctx context.Context, opts *Options) {
	for role, path := range map[string]string{
		"daily":   opts.DailyPath,
		"history": opts.HistoryPath,
	} {
		digest, err := checksum.File(path)
		if err != nil {
			continue
		}

		logger.InfoKV(ctx, "Input fingerprint", "role", role, "path", path, "xxh64", digest)
	}
}
