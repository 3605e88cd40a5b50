package tickets

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/nmsops/ticket-reconciler/internal/domain/reconcile"
)

// Annotation columns appended to the daily feed in the output.
const (
	SiteCodeColumn        = "site_code"
	LatestAlarmTimeColumn = "latest_alarm_time"
	LatestAlarmTextColumn = "latest_alarm_text"
	ValidationColumn      = "validation_status"
)

// errResultCountMismatch indicates the classified results do not line up
// one-to-one with the daily rows. Reconciliation preserves row counts, so
// this is an internal-consistency violation.
var errResultCountMismatch = errors.New("result count does not match daily row count")

// OutputHeader returns the output header: every original column followed by
// the four annotation columns.
func OutputHeader(table *DailyTable) []string {
	header := make([]string, 0, len(table.Header)+4)
	header = append(header, table.Header...)

	return append(header,
		SiteCodeColumn,
		LatestAlarmTimeColumn,
		LatestAlarmTextColumn,
		ValidationColumn,
	)
}

// OutputRow renders one annotated output row: the original record padded to
// the header width, followed by the annotation values. Null site codes and
// times render as empty cells; the latest alarm time is rendered in the
// provided location using the provided layout.
func OutputRow(table *DailyTable, index int, result reconcile.Validated, loc *time.Location, layout string) []string {
	row := make([]string, len(table.Header), len(table.Header)+4)
	copy(row, table.Records[index])

	siteCode := ""
	if result.HasSite {
		siteCode = result.SiteCode
	}

	var latestTime, latestText string

	if result.Record != nil {
		latestText = result.Record.LatestAlarmText

		if result.Record.HasTime {
			latestTime = result.Record.LatestAlarmTime.In(loc).Format(layout)
		}
	}

	return append(row, siteCode, latestTime, latestText, string(result.Status))
}

// WriteValidated writes the annotated result set as CSV. Every daily row
// appears exactly once, in input order, with all original columns passed
// through unchanged.
func WriteValidated(path string, table *DailyTable, results []reconcile.Validated, loc *time.Location, layout string) error {
	if len(results) != len(table.Records) {
		return fmt.Errorf("%w: %d results for %d rows", errResultCountMismatch, len(results), len(table.Records))
	}

	file, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	writer := csv.NewWriter(file)

	if err = writer.Write(OutputHeader(table)); err != nil {
		_ = file.Close()

		return fmt.Errorf("write header: %w", err)
	}

	for i := range table.Records {
		if err = writer.Write(OutputRow(table, i, results[i], loc, layout)); err != nil {
			_ = file.Close()

			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	writer.Flush()

	if err = writer.Error(); err != nil {
		_ = file.Close()

		return fmt.Errorf("flush %s: %w", path, err)
	}

	if err = file.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}

	return nil
}
