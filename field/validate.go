package field

import "fmt"

// Validate checks internal consistency of every declared field: select
// kinds must carry options, scale kinds must carry both bounds. It does not
// validate cross-field references (e.g. a policy pointing at an unknown
// field); that check lives in package policy, which has the policy context
// needed to produce a useful error.
func (s Schema) Validate() error {
	for _, name := range s.order {
		spec := s.fields[name]
		switch spec.Kind {
		case KindSingleSelect, KindMultiSelect:
			if len(spec.Options) == 0 {
				return fmt.Errorf("field %q: %w", name, ErrMissingOptions)
			}
		case KindScale:
			if spec.Min == nil || spec.Max == nil {
				return fmt.Errorf("field %q: %w", name, ErrMissingBounds)
			}
		}
	}
	return nil
}
