// Package dataset loads the launch-record CSV into an immutable Dataset.
//
// Load(path, cols) / Parse(r, cols) read a CSV with a header row and locate
// the four required columns by name. Every row is validated: a non-empty
// launch site, a non-negative payload mass and an outcome class of exactly
// 0 or 1. The first invalid row aborts the load with its 1-based line number.
//
// A Dataset is never mutated after construction. Derived values (dropdown
// options, payload bounds) are computed once in New. Watch reparses the file
// on change and hands a brand new Dataset to its callback.
package dataset
