package normalize

import "errors"

// Sentinel errors for the normalize package: raised per record, never a
// run-level failure — the caller excludes the offending record from the
// FeaturesTable.
var (
	// ErrMissingRequiredField indicates a field.Spec.Required field absent
	// from the raw response map.
	ErrMissingRequiredField = errors.New("normalize: missing required field")

	// ErrUnknownOption indicates a strict single_select value with no
	// declared option match and no wildcard/flexible-answer match.
	ErrUnknownOption = errors.New("normalize: unknown option for strict field")

	// ErrOutOfRange indicates a numeric/scale value parsed successfully but
	// fell outside the field's declared [Min, Max] bounds. Normalize does
	// not return it: an out-of-range value is dropped and the field is left
	// absent on the record.
	ErrOutOfRange = errors.New("normalize: numeric value out of range")
)
