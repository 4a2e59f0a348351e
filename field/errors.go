package field

import "errors"

// Sentinel errors for field schema construction and lookup.
var (
	// ErrDuplicateField indicates two specs declared the same name with
	// incompatible kinds; callers may choose to treat this as fatal.
	ErrDuplicateField = errors.New("field: duplicate field declaration")

	// ErrUnknownField indicates a reference to a field name not present in
	// the schema.
	ErrUnknownField = errors.New("field: unknown field")

	// ErrMissingOptions indicates a select-kind field declared without
	// Options.
	ErrMissingOptions = errors.New("field: select field requires options")

	// ErrMissingBounds indicates a scale-kind field declared without both
	// Min and Max.
	ErrMissingBounds = errors.New("field: scale field requires min and max")
)
