package compat

import "errors"

// Sentinel errors for the compat package.
var (
	// ErrInvalidSize indicates a negative matrix dimension was requested.
	ErrInvalidSize = errors.New("compat: invalid matrix size")

	// ErrMissingAgeField indicates age_rules is configured but a record has
	// no value for the configured age field; such pairs are incompatible on
	// age, not an error condition — this sentinel exists for callers that
	// want to distinguish the reason in diagnostics.
	ErrMissingAgeField = errors.New("compat: record missing age field")
)
