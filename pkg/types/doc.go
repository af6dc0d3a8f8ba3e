// Package types defines the shared launch-record types used by the server,
// the report CLI and the view layer. They are the canonical in-memory
// representations of the dataset and of the derived chart data, independent
// of the CSV and JSON wire formats.
package types
