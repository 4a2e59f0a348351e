package policy

import "errors"

// Sentinel errors for the policy package: raised synchronously by
// Bind/Decode, fatal to the run.
var (
	// ErrUnknownKey indicates the raw document contains a key not recognized
	// by the decoder. DecodeJSON and DecodeYAML do not wrap it: they return
	// the underlying decoder's unknown-field error as is.
	ErrUnknownKey = errors.New("policy: unknown key in policy document")

	// ErrUnknownField indicates a constraint, soft-score, or subspace entry
	// references a field not declared in the survey schema.
	ErrUnknownField = errors.New("policy: constraint references unknown field")

	// ErrNonPositiveTolerance indicates a hard.numeric_tol entry ≤ 0.
	ErrNonPositiveTolerance = errors.New("policy: numeric tolerance must be positive")

	// ErrNegativeWeight indicates a soft.weights entry < 0.
	ErrNegativeWeight = errors.New("policy: soft weight must be non-negative")

	// ErrGroupSizeBounds indicates min_group_size > group_size or
	// group_size > max_group_size.
	ErrGroupSizeBounds = errors.New("policy: min_group_size <= group_size <= max_group_size violated")

	// ErrEmptyBands indicates age_rules is present but bands is empty.
	ErrEmptyBands = errors.New("policy: age_rules present but bands is empty")

	// ErrInvalidBand indicates a band with min > max, or a non-positive
	// max_spread.
	ErrInvalidBand = errors.New("policy: invalid age band")

	// ErrInvalidCategoricalMode indicates a soft.categorical entry other
	// than "diversity" or "balance".
	ErrInvalidCategoricalMode = errors.New("policy: categorical mode must be diversity or balance")

	// ErrUnsupportedFallback indicates a fallback option was set that this
	// engine deliberately does not implement yet (see DESIGN.md Open
	// Question log).
	ErrUnsupportedFallback = errors.New("policy: fallback option not supported by this engine")
)
