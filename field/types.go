// Package field declares the typed survey-schema primitives the rest of the
// engine is built against: field kinds, roles, normalization configuration,
// and the immutable Schema a policy and a normalizer are both bound to.
//
// A Schema is built once from the survey definition and never mutated during
// a run; every lookup the engine performs against it is read-only.
package field

import "strings"

// Kind identifies how a field's raw answer should be interpreted.
type Kind int

const (
	// KindNumeric is a free numeric value (no declared scale bounds required).
	KindNumeric Kind = iota
	// KindScale is a bounded numeric value, e.g. a 1-10 Likert answer.
	KindScale
	// KindSingleSelect is a single categorical choice from Options.
	KindSingleSelect
	// KindMultiSelect is zero or more categorical choices from Options.
	KindMultiSelect
	// KindText is an opaque string carried through for explain/display only.
	KindText
)

// String renders the Kind for logging and error messages.
func (k Kind) String() string {
	switch k {
	case KindNumeric:
		return "numeric"
	case KindScale:
		return "scale"
	case KindSingleSelect:
		return "single_select"
	case KindMultiSelect:
		return "multi_select"
	case KindText:
		return "text"
	default:
		return "unknown"
	}
}

// Role describes how a field participates in the grouping algorithm.
type Role int

const (
	// RoleExplain fields are carried through for explanations only.
	RoleExplain Role = iota
	// RoleHard fields are eligible for hard-constraint references.
	RoleHard
	// RoleSoft fields are eligible for soft-scoring references.
	RoleSoft
	// RoleIdentifier fields identify the respondent and never feed the algorithm.
	RoleIdentifier
)

// NormalizationConfig carries the per-field wildcard/expansion/synonym rules
// used by the normalizer (see package normalize).
//
// Wildcards lists raw tokens that should be treated as "doesn't matter"
// sentinels local to this field, in addition to the policy's global
// flexible_answers set. Expansion is the concrete option set a wildcard
// expands to; when empty, the field's full Options list is used instead.
// Synonyms maps a raw answer to its canonical form before wildcard detection.
type NormalizationConfig struct {
	Wildcards []string
	Expansion []string
	Synonyms  map[string]string
}

// Spec is one field's declaration from the survey schema.
type Spec struct {
	Name          string
	Kind          Kind
	Options       []string // concrete options, required for select kinds
	Min, Max      *float64 // bounds, meaningful for numeric/scale kinds
	Role          Role
	Normalization *NormalizationConfig // nil means no wildcard/synonym handling
	Required      bool
}

// HasOption reports whether value is a declared option of this field.
func (s Spec) HasOption(value string) bool {
	for _, o := range s.Options {
		if o == value {
			return true
		}
	}
	return false
}

// Schema is the immutable collection of field declarations a survey exposes.
type Schema struct {
	fields map[string]Spec
	order  []string // declaration order, for deterministic iteration
}

// NewSchema builds a Schema from an ordered list of field specs. Duplicate
// names keep the last declaration and do not change position in Order.
func NewSchema(specs []Spec) Schema {
	s := Schema{fields: make(map[string]Spec, len(specs))}
	for _, spec := range specs {
		name := strings.TrimSpace(spec.Name)
		if _, exists := s.fields[name]; !exists {
			s.order = append(s.order, name)
		}
		spec.Name = name
		s.fields[name] = spec
	}
	return s
}

// Field looks up a field declaration by name.
func (s Schema) Field(name string) (Spec, bool) {
	spec, ok := s.fields[name]
	return spec, ok
}

// Has reports whether a field with the given name is declared.
func (s Schema) Has(name string) bool {
	_, ok := s.fields[name]
	return ok
}

// Order returns field names in declaration order.
func (s Schema) Order() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Len returns the number of declared fields.
func (s Schema) Len() int { return len(s.fields) }
