package policy

import (
	"encoding/json"
	"fmt"
	"hash/fnv"
)

// Hash computes the policy_hash used to tag Explanations: a short prefix
// of a stable digest over the canonical JSON form (sorted keys) of the
// policy document. See DESIGN.md's Open Question log for why FNV-1a
// (rather than a cryptographic hash) is the chosen primitive here.
func Hash(doc Doc) string {
	canonical := canonicalize(doc)
	h := fnv.New64a()
	_, _ = h.Write(canonical)
	return fmt.Sprintf("%016x", h.Sum64())[:8]
}

// canonicalize marshals doc through a generic map so struct field order
// (which encoding/json preserves as declared, not sorted) is normalized:
// round-tripping through map[string]any and back to JSON sorts object keys,
// since encoding/json always emits map keys in sorted order.
func canonicalize(doc Doc) []byte {
	raw, err := json.Marshal(doc)
	if err != nil {
		// Doc always marshals (no channels/funcs); unreachable in practice.
		return nil
	}
	var generic map[string]any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return raw
	}
	sorted, err := json.Marshal(sortedMap(generic))
	if err != nil {
		return raw
	}
	return sorted
}

// sortedMap documents the reason canonicalize round-trips through
// map[string]any: encoding/json always emits map keys in sorted order, so
// marshaling this type is how we get a canonical sorted-key form without
// hand-rolling a key sort.
type sortedMap = map[string]any
