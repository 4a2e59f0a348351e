package featuretable

import "github.com/bloomgroup/engine/normalize"

// DataError is one row's normalization failure: a per-record validation
// failure, not a run-level one. RowIndex is the row's position in the
// source file, before any rows are dropped.
type DataError struct {
	RowIndex int
	Err      error
}

func (e DataError) Error() string {
	return e.Err.Error()
}

// Table is the ordered, normalized feature set loaded from a source file.
// Records retains only rows that normalized successfully; Errors records
// what was dropped and why.
type Table struct {
	Records []normalize.FeatureRecord
	Errors  []DataError
}
