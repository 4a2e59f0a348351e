package rundriver_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bloomgroup/engine/field"
	"github.com/bloomgroup/engine/normalize"
	"github.com/bloomgroup/engine/policy"
	"github.com/bloomgroup/engine/rundriver"
)

func schemaWithLanguageAndAge() field.Schema {
	return field.NewSchema([]field.Spec{
		{Name: "language", Kind: field.KindSingleSelect, Options: []string{"he", "en"}, Role: field.RoleHard, Required: true},
		{Name: "area", Kind: field.KindMultiSelect, Options: []string{"north", "south"}, Role: field.RoleHard},
		{Name: "age", Kind: field.KindNumeric, Role: field.RoleHard},
		{Name: "budget", Kind: field.KindNumeric, Role: field.RoleHard},
	})
}

func basePolicyDoc() policy.Doc {
	doc := policy.Doc{GroupSize: 6}
	doc.Hard.CategoricalEqual = []string{"language"}
	doc.Hard.MultiOverlap = []string{"area"}
	spread := 8.0
	doc.AgeRules = &policy.AgeRulesDoc{
		Field: "age",
		Bands: []policy.AgeBandDoc{{Name: "twenties", Min: 20, Max: 30, MaxSpread: &spread}},
	}
	return doc
}

func normalizeAll(t *testing.T, schema field.Schema, pol *policy.Policy, rows []map[string]any) []normalize.FeatureRecord {
	t.Helper()
	normalizer := normalize.New(schema, normalize.NewFlexibleSet(pol.FlexibleAnswers), nil)
	records := make([]normalize.FeatureRecord, len(rows))
	for i, row := range rows {
		rec, err := normalizer.Normalize(i, row)
		require.NoError(t, err)
		records[i] = rec
	}
	return records
}

// Scenario A : 6 identical-hard-field records form one group.
func TestRun_ScenarioA_SingleFullGroup(t *testing.T) {
	schema := schemaWithLanguageAndAge()
	pol, err := policy.Bind(schema, basePolicyDoc())
	require.NoError(t, err)

	var rows []map[string]any
	for _, age := range []float64{25, 26, 27, 28, 29, 30} {
		rows = append(rows, map[string]any{"language": "he", "area": []string{"north"}, "age": age})
	}
	records := normalizeAll(t, schema, pol, rows)

	result := rundriver.Run(context.Background(), records, pol)

	require.Len(t, result.Groups, 1)
	assert.ElementsMatch(t, []int{0, 1, 2, 3, 4, 5}, result.Groups[0])
	assert.Empty(t, result.Stats.UngroupedIndices)
	assert.Len(t, result.Explanations, 1)
}

// Scenario B: a 7th record with a different language is left ungrouped.
func TestRun_ScenarioB_OutlierUngrouped(t *testing.T) {
	schema := schemaWithLanguageAndAge()
	pol, err := policy.Bind(schema, basePolicyDoc())
	require.NoError(t, err)

	var rows []map[string]any
	for _, age := range []float64{25, 26, 27, 28, 29, 30} {
		rows = append(rows, map[string]any{"language": "he", "area": []string{"north"}, "age": age})
	}
	rows = append(rows, map[string]any{"language": "en", "area": []string{"north"}, "age": 27})
	records := normalizeAll(t, schema, pol, rows)

	result := rundriver.Run(context.Background(), records, pol)

	require.Len(t, result.Groups, 1)
	assert.Len(t, result.Groups[0], 6)
	assert.Equal(t, []int{6}, result.Stats.UngroupedIndices)
}

// Scenario C: two subspaces (by language) each yield their own group.
func TestRun_ScenarioC_SubspacesIndependent(t *testing.T) {
	schema := schemaWithLanguageAndAge()
	doc := basePolicyDoc()
	doc.Subspaces = [][]string{{"language"}}
	pol, err := policy.Bind(schema, doc)
	require.NoError(t, err)

	var rows []map[string]any
	for _, lang := range []string{"he", "en"} {
		for _, age := range []float64{25, 26, 27, 28, 29, 30} {
			rows = append(rows, map[string]any{"language": lang, "area": []string{"north"}, "age": age})
		}
	}
	records := normalizeAll(t, schema, pol, rows)

	result := rundriver.Run(context.Background(), records, pol)

	assert.Len(t, result.Groups, 2)
	assert.Empty(t, result.Stats.UngroupedIndices)
}

// Scenario E: 5 compatible records with min_group_size=4 yield one group of 5.
func TestRun_ScenarioE_PartialAcceptedAboveMinimum(t *testing.T) {
	schema := schemaWithLanguageAndAge()
	doc := basePolicyDoc()
	doc.Fallback.MinGroupSize = 4
	pol, err := policy.Bind(schema, doc)
	require.NoError(t, err)

	var rows []map[string]any
	for _, age := range []float64{25, 26, 27, 28, 29} {
		rows = append(rows, map[string]any{"language": "he", "area": []string{"north"}, "age": age})
	}
	records := normalizeAll(t, schema, pol, rows)

	result := rundriver.Run(context.Background(), records, pol)

	require.Len(t, result.Groups, 1)
	assert.Len(t, result.Groups[0], 5)
}

// Scenario F: a numeric_tol violation on budget prevents any group from forming.
func TestRun_ScenarioF_NumericTolBlocksGroup(t *testing.T) {
	schema := schemaWithLanguageAndAge()
	doc := policy.Doc{GroupSize: 4}
	doc.Hard.NumericTol = map[string]float64{"budget": 2}
	doc.Fallback.MinGroupSize = 4
	doc.Fallback.MaxGroupSize = 4
	pol, err := policy.Bind(schema, doc)
	require.NoError(t, err)

	rows := []map[string]any{
		{"language": "he", "budget": 1.0},
		{"language": "he", "budget": 5.0},
		{"language": "he", "budget": 1.0},
		{"language": "he", "budget": 1.0},
	}
	records := normalizeAll(t, schema, pol, rows)

	result := rundriver.Run(context.Background(), records, pol)

	assert.Empty(t, result.Groups)
	assert.ElementsMatch(t, []int{0, 1, 2, 3}, result.Stats.UngroupedIndices)
}

// Scenario D : a wildcard language answer bridges he and en
// respondents into one group of 6.
func TestRun_ScenarioD_WildcardBridgesLanguages(t *testing.T) {
	schema := schemaWithLanguageAndAge()
	doc := basePolicyDoc()
	doc.Normalization.FlexibleAnswers = []string{"doesn't matter"}
	pol, err := policy.Bind(schema, doc)
	require.NoError(t, err)

	languages := []string{"he", "he", "he", "en", "en", "doesn't matter"}
	var rows []map[string]any
	for i, lang := range languages {
		rows = append(rows, map[string]any{"language": lang, "area": []string{"north"}, "age": float64(24 + i)})
	}
	records := normalizeAll(t, schema, pol, rows)

	result := rundriver.Run(context.Background(), records, pol)

	require.Len(t, result.Groups, 1)
	assert.Len(t, result.Groups[0], 6)
	assert.Empty(t, result.Stats.UngroupedIndices)
}

// Property : identical inputs and policy produce identical
// results. go-cmp gives a useful structural diff on the nested Explanation/
// Stats slices if this ever regresses, where testify's assert.Equal would
// just report "not equal".
func TestRun_Determinism(t *testing.T) {
	schema := schemaWithLanguageAndAge()
	pol, err := policy.Bind(schema, basePolicyDoc())
	require.NoError(t, err)

	var rows []map[string]any
	for _, age := range []float64{25, 26, 27, 28, 29, 30} {
		rows = append(rows, map[string]any{"language": "he", "area": []string{"north"}, "age": age})
	}
	records := normalizeAll(t, schema, pol, rows)

	first := rundriver.Run(context.Background(), records, pol)
	second := rundriver.Run(context.Background(), records, pol)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("run is not deterministic (-first +second):\n%s", diff)
	}
}

// Property : groups emitted in one run never share a member.
func TestRun_GroupsAreDisjoint(t *testing.T) {
	schema := schemaWithLanguageAndAge()
	doc := basePolicyDoc()
	doc.Subspaces = nil
	pol, err := policy.Bind(schema, doc)
	require.NoError(t, err)

	var rows []map[string]any
	for _, age := range []float64{25, 26, 27, 28, 29, 30, 25, 26, 27, 28, 29, 30} {
		rows = append(rows, map[string]any{"language": "he", "area": []string{"north"}, "age": age})
	}
	records := normalizeAll(t, schema, pol, rows)

	result := rundriver.Run(context.Background(), records, pol)

	seen := map[int]bool{}
	for _, g := range result.Groups {
		for _, idx := range g {
			assert.False(t, seen[idx], "index %d appears in more than one group", idx)
			seen[idx] = true
		}
	}
}
