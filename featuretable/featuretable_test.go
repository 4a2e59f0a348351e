package featuretable_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bloomgroup/engine/featuretable"
	"github.com/bloomgroup/engine/field"
	"github.com/bloomgroup/engine/normalize"
)

func schema() field.Schema {
	return field.NewSchema([]field.Spec{
		{Name: "language", Kind: field.KindSingleSelect, Options: []string{"he", "en"}, Required: true},
		{Name: "age", Kind: field.KindNumeric},
	})
}

func TestLoadCSV_NormalizesEachRow(t *testing.T) {
	csv := "language,age\nhe,25\nen,30\n"
	normalizer := normalize.New(schema(), normalize.NewFlexibleSet(nil), nil)

	table, err := featuretable.LoadCSV(strings.NewReader(csv), normalizer)
	require.NoError(t, err)
	require.Len(t, table.Records, 2)
	assert.Empty(t, table.Errors)

	v, ok := table.Records[0].NumericValue("age")
	assert.True(t, ok)
	assert.Equal(t, 25.0, v)
}

func TestLoadCSV_DropsRowsThatFailNormalization(t *testing.T) {
	csv := "language,age\nhe,25\nfr,30\n"
	normalizer := normalize.New(schema(), normalize.NewFlexibleSet(nil), nil)

	table, err := featuretable.LoadCSV(strings.NewReader(csv), normalizer)
	require.NoError(t, err)
	require.Len(t, table.Records, 1)
	require.Len(t, table.Errors, 1)
	assert.Equal(t, 1, table.Errors[0].RowIndex)
	assert.ErrorIs(t, table.Errors[0].Err, normalize.ErrUnknownOption)
}

func TestLoadCSV_EmptyInputYieldsEmptyTable(t *testing.T) {
	normalizer := normalize.New(schema(), normalize.NewFlexibleSet(nil), nil)
	table, err := featuretable.LoadCSV(strings.NewReader(""), normalizer)
	require.NoError(t, err)
	assert.Empty(t, table.Records)
}

func TestLoadJSONRows_NormalizesEachRow(t *testing.T) {
	jsonRows := `[{"language": "he", "age": 25}, {"language": "en", "age": 30}]`
	normalizer := normalize.New(schema(), normalize.NewFlexibleSet(nil), nil)

	table, err := featuretable.LoadJSONRows(strings.NewReader(jsonRows), normalizer)
	require.NoError(t, err)
	require.Len(t, table.Records, 2)
	assert.Empty(t, table.Errors)
}

func TestLoadJSONRows_RecordsErrorsWithoutAborting(t *testing.T) {
	jsonRows := `[{"language": "he", "age": 25}, {"age": 30}]`
	normalizer := normalize.New(schema(), normalize.NewFlexibleSet(nil), nil)

	table, err := featuretable.LoadJSONRows(strings.NewReader(jsonRows), normalizer)
	require.NoError(t, err)
	require.Len(t, table.Records, 1)
	require.Len(t, table.Errors, 1)
	assert.ErrorIs(t, table.Errors[0].Err, normalize.ErrMissingRequiredField)
}

func TestAgeConfigFromPolicy_NilWhenNoAgeRules(t *testing.T) {
	assert.Nil(t, featuretable.AgeConfigFromPolicy(nil))
}
