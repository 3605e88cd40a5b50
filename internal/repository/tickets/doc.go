// Package tickets implements the tabular data boundary of the reconciler:
// reading the daily ticket feed and the NMS history from CSV files against
// the declared schema contract, and writing the annotated result set.
//
// Header matching is case-insensitive with surrounding whitespace ignored.
// A missing required column is a fatal SchemaError reported before any row
// is processed; malformed values inside a row are recovered to null and
// counted, never dropped.
package tickets
