package report

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/nmsops/ticket-reconciler/internal/domain/reconcile"
	"github.com/nmsops/ticket-reconciler/internal/repository/tickets"
)

// Workbook sheet names.
const (
	ValidatedSheet = "Validated Tickets"
	SummarySheet   = "Summary"
)

// WriteWorkbook renders the annotated result set and the run summary into
// an xlsx workbook at path. The validated sheet carries exactly the same
// rows and columns as the CSV output.
func WriteWorkbook(
	path string,
	table *tickets.DailyTable,
	results []reconcile.Validated,
	summary reconcile.Summary,
	loc *time.Location,
	layout string,
) error {
	workbook := excelize.NewFile()

	defer func() {
		_ = workbook.Close()
	}()

	if err := workbook.SetSheetName(workbook.GetSheetName(0), ValidatedSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	if err := writeValidatedSheet(workbook, table, results, loc, layout); err != nil {
		return err
	}

	if err := writeSummarySheet(workbook, summary); err != nil {
		return err
	}

	if err := workbook.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook %s: %w", path, err)
	}

	return nil
}

// writeValidatedSheet fills the validated sheet with header and rows.
func writeValidatedSheet(
	workbook *excelize.File,
	table *tickets.DailyTable,
	results []reconcile.Validated,
	loc *time.Location,
	layout string,
) error {
	if err := setRow(workbook, ValidatedSheet, 1, tickets.OutputHeader(table)); err != nil {
		return err
	}

	for i := range table.Records {
		row := tickets.OutputRow(table, i, results[i], loc, layout)
		if err := setRow(workbook, ValidatedSheet, i+2, row); err != nil {
			return err
		}
	}

	return nil
}

// writeSummarySheet fills the summary sheet: a status-count block followed
// by the per-site ticket counts, busiest sites first.
func writeSummarySheet(workbook *excelize.File, summary reconcile.Summary) error {
	if _, err := workbook.NewSheet(SummarySheet); err != nil {
		return fmt.Errorf("create summary sheet: %w", err)
	}

	lines := [][]string{
		{"Validation", "Tickets"},
		{string(reconcile.StatusValid), fmt.Sprint(summary.Valid)},
		{string(reconcile.StatusInvalid), fmt.Sprint(summary.Invalid)},
		{string(reconcile.StatusNotInNMS), fmt.Sprint(summary.NotInNMS)},
		{"Total", fmt.Sprint(summary.Total)},
		{},
		{"Site Code", "Alarm Count"},
	}

	for _, count := range summary.SiteCounts {
		lines = append(lines, []string{count.Site, fmt.Sprint(count.Tickets)})
	}

	for i, line := range lines {
		if err := setRow(workbook, SummarySheet, i+1, line); err != nil {
			return err
		}
	}

	return nil
}

// setRow writes one row of string cells starting at column A.
func setRow(workbook *excelize.File, sheet string, row int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("cell name for row %d: %w", row, err)
	}

	if err = workbook.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("write %s row %d: %w", sheet, row, err)
	}

	return nil
}
