// Package reconciler orchestrates a reconciliation run: it loads the
// settings, reads and schema-checks both input feeds, executes the core
// reconcile pipeline, and writes the annotated CSV plus the optional Excel
// workbook and YAML run manifest.
package reconciler
