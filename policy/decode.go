package policy

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// tagValidator is a single package-level validator instance; per the
// library's own documentation it caches struct metadata and is safe for
// concurrent use once built.
var tagValidator = validator.New()

// DecodeJSON parses raw JSON bytes into a Doc, rejecting unknown top-level
// keys and running struct-tag validation for the one check validator/v10
// expresses here (group_size >= 2 when set). Cross-field checks (min <=
// group_size <= max, field references) are not expressible as tags and
// are left to Bind.
func DecodeJSON(data []byte) (Doc, error) {
	var doc Doc
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return Doc{}, fmt.Errorf("policy: decode: %w", err)
	}
	if err := tagValidator.Struct(doc); err != nil {
		return Doc{}, fmt.Errorf("policy: tag validation: %w", err)
	}
	return doc, nil
}

// DecodeYAML parses raw YAML bytes into a Doc. yaml.v3's decoder has no
// DisallowUnknownFields equivalent to json.Decoder's, so unknown-key
// rejection for YAML policy files is best-effort: KnownFields(true) on a
// yaml.Decoder rejects keys with no matching struct tag, same spirit as the
// JSON path even though the mechanism differs.
func DecodeYAML(data []byte) (Doc, error) {
	var doc Doc
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return Doc{}, fmt.Errorf("policy: decode yaml: %w", err)
	}
	if err := tagValidator.Struct(doc); err != nil {
		return Doc{}, fmt.Errorf("policy: tag validation: %w", err)
	}
	return doc, nil
}
