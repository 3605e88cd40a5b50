// Package report writes the reconciliation result as an Excel workbook for
// the operations team: a "Validated Tickets" sheet mirroring the CSV output
// and a "Summary" sheet with status totals and per-site ticket counts.
package report
