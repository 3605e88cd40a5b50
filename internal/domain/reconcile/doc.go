// Package reconcile contains the core reconciliation logic: deriving site
// codes from daily ticket descriptions, reducing NMS history to the latest
// alarm per site, and classifying every daily ticket against that record.
//
// The pipeline is a pure transform over in-memory rows; reading and writing
// the tabular data is the repository layer's concern.
package reconcile
