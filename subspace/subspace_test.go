package subspace_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bloomgroup/engine/normalize"
	"github.com/bloomgroup/engine/subspace"
)

func record(language string, age float64) normalize.FeatureRecord {
	return normalize.FeatureRecord{
		Categorical: map[string]normalize.Set{"language": normalize.NewSet(language)},
		Numeric:     map[string]float64{"age": age},
	}
}

func TestPartition_EmptyKeysYieldsSingleGlobalSubspace(t *testing.T) {
	records := []normalize.FeatureRecord{record("he", 20), record("en", 30)}
	subs := subspace.Partition(records, nil)

	require.Len(t, subs, 1)
	assert.Equal(t, "global", subs[0].Key)
	assert.ElementsMatch(t, []int{0, 1}, subs[0].Indices)
}

func TestPartition_GroupsByCompositeKey(t *testing.T) {
	records := []normalize.FeatureRecord{
		record("he", 20),
		record("he", 25),
		record("en", 30),
	}
	subs := subspace.Partition(records, [][]string{{"language"}})

	require.Len(t, subs, 2)
	byKey := map[string][]int{}
	for _, s := range subs {
		byKey[s.Key] = s.Indices
	}
	assert.ElementsMatch(t, []int{0, 1}, byKey["language=he"])
	assert.ElementsMatch(t, []int{2}, byKey["language=en"])
}

func TestPartition_SortedKeyOrderDeterministic(t *testing.T) {
	records := []normalize.FeatureRecord{record("en", 1), record("he", 1)}
	subs := subspace.Partition(records, [][]string{{"language"}})

	require.Len(t, subs, 2)
	assert.Equal(t, "language=en", subs[0].Key)
	assert.Equal(t, "language=he", subs[1].Key)
}

func TestPartition_MultiFieldAndMultiValueSerialization(t *testing.T) {
	records := []normalize.FeatureRecord{
		{Multi: map[string]normalize.Set{"area": normalize.NewSet("south", "north")}},
	}
	subs := subspace.Partition(records, [][]string{{"area"}})
	require.Len(t, subs, 1)
	assert.Equal(t, "area=north,south", subs[0].Key)
}

func TestPartition_MultipleSubListsJoinedWithDoublePipe(t *testing.T) {
	records := []normalize.FeatureRecord{record("he", 20)}
	subs := subspace.Partition(records, [][]string{{"language"}, {"age"}})
	require.Len(t, subs, 1)
	assert.Equal(t, "language=he||age=20", subs[0].Key)
}
