package normalize

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bloomgroup/engine/field"
)

// AgeBandSpec is one named interval on the age field, with an optional
// MaxSpread governing intra-band pair compatibility (consumed by package
// compat, not here).
type AgeBandSpec struct {
	Name      string
	Min, Max  float64
	MaxSpread *float64
}

// AgeConfig tells the Normalizer which field carries age and how its bands
// are defined, so Normalize can compute the age_band label. A nil
// *AgeConfig means "no age rules configured".
type AgeConfig struct {
	Field string
	Bands []AgeBandSpec
}

// bandFor scans bands in order and returns the first containing band's
// name; the first matching band wins when bands overlap.
func (c *AgeConfig) bandFor(age float64) string {
	if c == nil {
		return ""
	}
	for _, b := range c.Bands {
		if age >= b.Min && age <= b.Max {
			return b.Name
		}
	}
	return ""
}

// rtlMarks are zero-width directional marks stripped during canonicalization.
const (
	markLTR = "‎"
	markRTL = "‏"
)

// canonicalize trims, removes RTL/LTR marks, and collapses runs of
// whitespace
func canonicalize(s string) string {
	s = strings.ReplaceAll(s, markLTR, "")
	s = strings.ReplaceAll(s, markRTL, "")
	return strings.Join(strings.Fields(s), " ")
}

// Normalizer turns raw response maps into FeatureRecords against a fixed
// field.Schema, policy-wide flexible-answer set, and (optionally) age rules.
// A Normalizer holds no per-call state and is safe for concurrent use.
type Normalizer struct {
	schema    field.Schema
	flexible  FlexibleSet
	ageConfig *AgeConfig
}

// New builds a Normalizer. ageConfig may be nil when the policy defines no
// age rules.
func New(schema field.Schema, flexible FlexibleSet, ageConfig *AgeConfig) *Normalizer {
	return &Normalizer{schema: schema, flexible: flexible, ageConfig: ageConfig}
}

// Normalize converts one raw response map into a FeatureRecord.
//
// sourceIndex is the row index of raw in its source table and becomes both
// FeatureRecord.SourceIndex and FeatureRecord.ParticipantID.
//
// Failure mode: a missing Required field or an unknown option on a
// strict single_select returns an error wrapping ErrMissingRequiredField
// / ErrUnknownOption; the caller is expected to drop the record from the
// run rather than abort the run.
func (n *Normalizer) Normalize(sourceIndex int, raw map[string]any) (FeatureRecord, error) {
	rec := FeatureRecord{
		ParticipantID: sourceIndex,
		SourceIndex:   sourceIndex,
		Numeric:       make(map[string]float64),
		Categorical:   make(map[string]Set),
		Multi:         make(map[string]Set),
		Text:          make(map[string]string),
	}

	for _, name := range n.schema.Order() {
		spec, _ := n.schema.Field(name)
		value, present := raw[name]

		if !present || value == nil {
			if spec.Required {
				return FeatureRecord{}, fmt.Errorf("field %q: %w", name, ErrMissingRequiredField)
			}
			continue
		}

		switch spec.Kind {
		case field.KindNumeric, field.KindScale:
			if err := n.normalizeNumeric(spec, value, &rec); err != nil {
				return FeatureRecord{}, err
			}
		case field.KindSingleSelect:
			set, err := n.normalizeSingle(spec, value)
			if err != nil {
				return FeatureRecord{}, err
			}
			rec.Categorical[name] = set
		case field.KindMultiSelect:
			set, err := n.normalizeMulti(spec, value)
			if err != nil {
				return FeatureRecord{}, err
			}
			rec.Multi[name] = set
		case field.KindText:
			rec.Text[name] = canonicalize(fmt.Sprint(value))
		}
	}

	return rec, nil
}

func (n *Normalizer) normalizeNumeric(spec field.Spec, value any, rec *FeatureRecord) error {
	f, ok := toFloat(value)
	if !ok {
		// Parse failure: value is absent , not an error.
		return nil
	}
	if spec.Min != nil && f < *spec.Min {
		return nil
	}
	if spec.Max != nil && f > *spec.Max {
		return nil
	}
	rec.Numeric[spec.Name] = f

	if n.ageConfig != nil && spec.Name == n.ageConfig.Field {
		rec.AgeBand = n.ageConfig.bandFor(f)
	}
	return nil
}

func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// expand applies synonym substitution then wildcard-or-flexible expansion to
// a single trimmed token, returning the resulting set and whether the token
// was accepted (false when it matches none of the field's declared options).
func (n *Normalizer) expand(spec field.Spec, token string) (Set, bool) {
	token = canonicalize(token)
	if token == "" {
		return nil, true
	}

	cfg := spec.Normalization
	if cfg != nil {
		if canon, ok := cfg.Synonyms[token]; ok {
			token = canon
		}
	}

	isWildcard := n.flexible.Has(token)
	if !isWildcard && cfg != nil {
		for _, w := range cfg.Wildcards {
			if w == token {
				isWildcard = true
				break
			}
		}
	}

	if isWildcard {
		switch {
		case cfg != nil && len(cfg.Expansion) > 0:
			return NewSet(cfg.Expansion...), true
		case len(spec.Options) > 0:
			return NewSet(spec.Options...), true
		default:
			return NewSet(token), true
		}
	}

	// Not a wildcard: a strict field with declared options must match one.
	if len(spec.Options) > 0 && !spec.HasOption(token) {
		return NewSet(token), false
	}
	return NewSet(token), true
}

func (n *Normalizer) normalizeSingle(spec field.Spec, value any) (Set, error) {
	token := fmt.Sprint(value)
	set, ok := n.expand(spec, token)
	if !ok {
		return nil, fmt.Errorf("field %q: value %q: %w", spec.Name, token, ErrUnknownOption)
	}
	return set, nil
}

func (n *Normalizer) normalizeMulti(spec field.Spec, value any) (Set, error) {
	parts := multiParts(value)
	result := make(Set)
	for _, part := range parts {
		set, ok := n.expand(spec, part)
		if !ok {
			return nil, fmt.Errorf("field %q: value %q: %w", spec.Name, part, ErrUnknownOption)
		}
		for v := range set {
			result[v] = struct{}{}
		}
	}
	return result, nil
}

// multiParts accepts either a structured []string/[]any list (canonical,
// ) or a comma-separated string (legacy fallback), trimming parts
// and dropping empties either way.
func multiParts(value any) []string {
	var raw []string
	switch v := value.(type) {
	case []string:
		raw = v
	case []any:
		for _, item := range v {
			raw = append(raw, fmt.Sprint(item))
		}
	case string:
		raw = strings.Split(v, ",")
	default:
		raw = []string{fmt.Sprint(v)}
	}

	out := make([]string, 0, len(raw))
	for _, p := range raw {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
