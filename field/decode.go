package field

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var schemaValidator = validator.New()

// Doc is the wire shape of one field declaration in a survey schema file.
type Doc struct {
	Name     string   `json:"name" validate:"required"`
	Kind     string   `json:"kind" validate:"required,oneof=numeric scale single_select multi_select text"`
	Options  []string `json:"options"`
	Min      *float64 `json:"min"`
	Max      *float64 `json:"max"`
	Role     string   `json:"role" validate:"omitempty,oneof=explain hard soft identifier"`
	Required bool     `json:"required"`

	Normalization *struct {
		Wildcards []string          `json:"wildcards"`
		Expansion []string          `json:"expansion"`
		Synonyms  map[string]string `json:"synonyms"`
	} `json:"normalization"`
}

// DecodeSchemaJSON parses a JSON array of field declarations into a Schema,
// rejecting unknown keys the same way policy.DecodeJSON does.
func DecodeSchemaJSON(data []byte) (Schema, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var docs []Doc
	if err := dec.Decode(&docs); err != nil {
		return Schema{}, fmt.Errorf("field: decode schema: %w", err)
	}

	specs := make([]Spec, 0, len(docs))
	for _, doc := range docs {
		if err := schemaValidator.Struct(doc); err != nil {
			return Schema{}, fmt.Errorf("field %q: %w", doc.Name, err)
		}
		specs = append(specs, bindDoc(doc))
	}
	return NewSchema(specs), nil
}

func bindDoc(doc Doc) Spec {
	spec := Spec{
		Name:     doc.Name,
		Kind:     kindFromString(doc.Kind),
		Options:  doc.Options,
		Min:      doc.Min,
		Max:      doc.Max,
		Role:     roleFromString(doc.Role),
		Required: doc.Required,
	}
	if doc.Normalization != nil {
		spec.Normalization = &NormalizationConfig{
			Wildcards: doc.Normalization.Wildcards,
			Expansion: doc.Normalization.Expansion,
			Synonyms:  doc.Normalization.Synonyms,
		}
	}
	return spec
}

func kindFromString(s string) Kind {
	switch s {
	case "scale":
		return KindScale
	case "single_select":
		return KindSingleSelect
	case "multi_select":
		return KindMultiSelect
	case "text":
		return KindText
	default:
		return KindNumeric
	}
}

func roleFromString(s string) Role {
	switch s {
	case "hard":
		return RoleHard
	case "soft":
		return RoleSoft
	case "identifier":
		return RoleIdentifier
	default:
		return RoleExplain
	}
}
