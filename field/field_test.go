package field_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bloomgroup/engine/field"
)

func TestNewSchema_DuplicateKeepsLastDeclaration(t *testing.T) {
	s := field.NewSchema([]field.Spec{
		{Name: "age", Kind: field.KindNumeric},
		{Name: "age", Kind: field.KindScale},
	})

	spec, ok := s.Field("age")
	require.True(t, ok)
	assert.Equal(t, field.KindScale, spec.Kind)
	assert.Equal(t, []string{"age"}, s.Order())
	assert.Equal(t, 1, s.Len())
}

func TestSchema_HasAndField(t *testing.T) {
	s := field.NewSchema([]field.Spec{{Name: "language", Kind: field.KindSingleSelect, Options: []string{"he", "en"}}})

	assert.True(t, s.Has("language"))
	assert.False(t, s.Has("missing"))

	spec, ok := s.Field("language")
	require.True(t, ok)
	assert.True(t, spec.HasOption("he"))
	assert.False(t, spec.HasOption("fr"))
}

func TestSchema_OrderPreservesDeclarationOrder(t *testing.T) {
	s := field.NewSchema([]field.Spec{
		{Name: "c"}, {Name: "a"}, {Name: "b"},
	})
	assert.Equal(t, []string{"c", "a", "b"}, s.Order())
}

func TestSchemaValidate(t *testing.T) {
	min, max := 1.0, 10.0
	cases := []struct {
		name    string
		specs   []field.Spec
		wantErr error
	}{
		{
			name:  "single select without options",
			specs: []field.Spec{{Name: "language", Kind: field.KindSingleSelect}},
			wantErr: field.ErrMissingOptions,
		},
		{
			name:  "multi select without options",
			specs: []field.Spec{{Name: "area", Kind: field.KindMultiSelect}},
			wantErr: field.ErrMissingOptions,
		},
		{
			name:  "scale without bounds",
			specs: []field.Spec{{Name: "budget", Kind: field.KindScale}},
			wantErr: field.ErrMissingBounds,
		},
		{
			name:  "scale with bounds is valid",
			specs: []field.Spec{{Name: "budget", Kind: field.KindScale, Min: &min, Max: &max}},
		},
		{
			name:  "numeric needs no bounds",
			specs: []field.Spec{{Name: "age", Kind: field.KindNumeric}},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := field.NewSchema(tc.specs).Validate()
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "numeric", field.KindNumeric.String())
	assert.Equal(t, "scale", field.KindScale.String())
	assert.Equal(t, "single_select", field.KindSingleSelect.String())
	assert.Equal(t, "multi_select", field.KindMultiSelect.String())
	assert.Equal(t, "text", field.KindText.String())
}

func TestDecodeSchemaJSON(t *testing.T) {
	data := []byte(`[
		{"name": "language", "kind": "single_select", "options": ["he", "en"], "role": "hard", "required": true},
		{"name": "age", "kind": "numeric", "role": "hard"}
	]`)

	schema, err := field.DecodeSchemaJSON(data)
	require.NoError(t, err)
	require.NoError(t, schema.Validate())

	spec, ok := schema.Field("language")
	require.True(t, ok)
	assert.Equal(t, field.KindSingleSelect, spec.Kind)
	assert.True(t, spec.Required)
}

func TestDecodeSchemaJSON_RejectsUnknownKeys(t *testing.T) {
	data := []byte(`[{"name": "language", "kind": "single_select", "options": ["he"], "bogus": true}]`)
	_, err := field.DecodeSchemaJSON(data)
	assert.Error(t, err)
}

func TestDecodeSchemaJSON_RejectsInvalidKind(t *testing.T) {
	data := []byte(`[{"name": "language", "kind": "enum"}]`)
	_, err := field.DecodeSchemaJSON(data)
	assert.Error(t, err)
}
