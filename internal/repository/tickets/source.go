package tickets

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nmsops/ticket-reconciler/internal/config"
	"github.com/nmsops/ticket-reconciler/internal/domain/reconcile"
)

// Input roles named in schema errors.
const (
	dailyRole   = "daily tickets"
	historyRole = "NMS history"
)

// errEmptyFile is returned when an input file has no header row.
var errEmptyFile = errors.New("input file is empty")

// DailyTable is the daily ticket feed with both the raw table (for
// passthrough output) and the typed rows the core consumes. Records and
// Tickets are index-aligned.
type DailyTable struct {
	// Header is the original header row, order preserved.
	Header []string
	// Records are the original data rows, order preserved.
	Records [][]string
	// Tickets are the typed views of Records.
	Tickets []reconcile.DailyTicket
}

// HistoryStats counts data-level recoveries performed while reading the
// NMS history.
type HistoryStats struct {
	// Rows is the number of data rows read.
	Rows int
	// BadTimestamps counts rows whose origin alarm time was blank or did
	// not parse under the configured layout.
	BadTimestamps int
}

// ReadDaily loads the daily ticket feed, validating the schema contract
// before any row is interpreted.
func ReadDaily(path string, columns config.DailyColumns) (*DailyTable, error) {
	header, records, err := readTable(path)
	if err != nil {
		return nil, err
	}

	resolved, err := resolveColumns(dailyRole, header, []string{
		columns.ShortDescription,
		columns.Alarms,
	})
	if err != nil {
		return nil, err
	}

	var (
		descriptionIndex = resolved[columns.ShortDescription]
		alarmsIndex      = resolved[columns.Alarms]
	)

	table := &DailyTable{
		Header:  header,
		Records: records,
		Tickets: make([]reconcile.DailyTicket, 0, len(records)),
	}

	for _, record := range records {
		table.Tickets = append(table.Tickets, reconcile.DailyTicket{
			ShortDescription: field(record, descriptionIndex),
			Alarms:           field(record, alarmsIndex),
		})
	}

	return table, nil
}

// ReadHistory loads the NMS history feed. Timestamps that are blank or do
// not parse under the layout are recovered to null and counted in the
// returned stats.
func ReadHistory(path string, columns config.HistoryColumns, layout string) ([]reconcile.HistoricalAlarm, HistoryStats, error) {
	var stats HistoryStats

	header, records, err := readTable(path)
	if err != nil {
		return nil, stats, err
	}

	resolved, err := resolveColumns(historyRole, header, []string{
		columns.Site,
		columns.AlarmTime,
		columns.AlarmText,
	})
	if err != nil {
		return nil, stats, err
	}

	var (
		siteIndex = resolved[columns.Site]
		timeIndex = resolved[columns.AlarmTime]
		textIndex = resolved[columns.AlarmText]
	)

	history := make([]reconcile.HistoricalAlarm, 0, len(records))

	for _, record := range records {
		row := reconcile.HistoricalAlarm{
			Site:      field(record, siteIndex),
			AlarmText: field(record, textIndex),
		}

		raw := strings.TrimSpace(field(record, timeIndex))
		if raw != "" {
			if at, parseErr := time.Parse(layout, raw); parseErr == nil {
				row.AlarmTime = at
				row.HasTime = true
			}
		}

		if !row.HasTime {
			stats.BadTimestamps++
		}

		history = append(history, row)
	}

	stats.Rows = len(history)

	return history, stats, nil
}

// readTable reads a whole CSV file, returning the header and data rows.
// Rows are allowed to be ragged; short rows resolve to null fields later.
func readTable(path string) ([]string, [][]string, error) {
	file, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", path, err)
	}

	defer func() {
		_ = file.Close()
	}()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil, fmt.Errorf("%s: %w", path, errEmptyFile)
		}

		return nil, nil, fmt.Errorf("read header of %s: %w", path, err)
	}

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("read rows of %s: %w", path, err)
	}

	return header, records, nil
}
