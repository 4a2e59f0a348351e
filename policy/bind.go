package policy

import (
	"fmt"

	"github.com/bloomgroup/engine/field"
)

// defaultGroupSize is the group_size used when a policy document omits it.
const defaultGroupSize = 6

// defaultMinGroupSize / defaultMaxGroupSize are the fallback bounds used
// when the document's fallback block doesn't set them: 4/6, widened to
// group_size when group_size exceeds 6.
const (
	defaultMinGroupSize = 4
	defaultMaxGroupSize = 6
)

// Bind validates doc against schema and produces a frozen Policy: field
// references exist, tolerances are positive, weights are non-negative,
// bands are non-empty when age_rules is present, and min_group_size <=
// group_size <= max_group_size.
func Bind(schema field.Schema, doc Doc) (*Policy, error) {
	groupSize := doc.GroupSize
	if groupSize == 0 {
		groupSize = defaultGroupSize
	}

	hard, err := bindHard(schema, doc)
	if err != nil {
		return nil, err
	}

	soft, err := bindSoft(schema, doc)
	if err != nil {
		return nil, err
	}

	ageRules, err := bindAgeRules(schema, doc.AgeRules)
	if err != nil {
		return nil, err
	}

	if err := validateSubspaces(schema, doc.Subspaces); err != nil {
		return nil, err
	}

	fallback, err := bindFallback(doc, groupSize)
	if err != nil {
		return nil, err
	}

	pairs := bindPairs(doc.Pairs)

	pol := &Policy{
		GroupSize:       groupSize,
		Subspaces:       doc.Subspaces,
		Hard:            hard,
		Soft:            soft,
		AgeRules:        ageRules,
		Pairs:           pairs,
		Fallback:        fallback,
		FlexibleAnswers: doc.Normalization.FlexibleAnswers,
	}
	pol.PolicyHash = Hash(doc)

	return pol, nil
}

func bindHard(schema field.Schema, doc Doc) (Hard, error) {
	for _, f := range doc.Hard.CategoricalEqual {
		if !schema.Has(f) {
			return Hard{}, fmt.Errorf("hard.categorical_equal %q: %w", f, ErrUnknownField)
		}
	}
	for _, f := range doc.Hard.MultiOverlap {
		if !schema.Has(f) {
			return Hard{}, fmt.Errorf("hard.multi_overlap %q: %w", f, ErrUnknownField)
		}
	}
	for f, tol := range doc.Hard.NumericTol {
		if !schema.Has(f) {
			return Hard{}, fmt.Errorf("hard.numeric_tol %q: %w", f, ErrUnknownField)
		}
		if tol <= 0 {
			return Hard{}, fmt.Errorf("hard.numeric_tol %q=%v: %w", f, tol, ErrNonPositiveTolerance)
		}
	}
	return Hard{
		CategoricalEqual: doc.Hard.CategoricalEqual,
		MultiOverlap:     doc.Hard.MultiOverlap,
		NumericTol:       doc.Hard.NumericTol,
	}, nil
}

func bindSoft(schema field.Schema, doc Doc) (Soft, error) {
	for _, f := range doc.Soft.NumericFeatures {
		if !schema.Has(f) {
			return Soft{}, fmt.Errorf("soft.numeric_features %q: %w", f, ErrUnknownField)
		}
	}

	categorical := make(map[string]CategoricalMode, len(doc.Soft.Categorical))
	for f, mode := range doc.Soft.Categorical {
		if !schema.Has(f) {
			return Soft{}, fmt.Errorf("soft.categorical %q: %w", f, ErrUnknownField)
		}
		switch mode {
		case "diversity":
			categorical[f] = ModeDiversity
		case "balance":
			categorical[f] = ModeBalance
		default:
			return Soft{}, fmt.Errorf("soft.categorical %q=%q: %w", f, mode, ErrInvalidCategoricalMode)
		}
	}

	multi := make([]string, 0, len(doc.Soft.MultiChoice))
	for f := range doc.Soft.MultiChoice {
		if !schema.Has(f) {
			return Soft{}, fmt.Errorf("soft.multi_choice %q: %w", f, ErrUnknownField)
		}
		multi = append(multi, f)
	}

	weights := Weights{
		DiversityNumeric:     DefaultDiversityNumeric,
		SimilarityBonus:      DefaultSimilarityBonus,
		CategoricalDiversity: DefaultCategoricalDiversity,
		MultiOverlapBonus:    DefaultMultiOverlapBonus,
	}
	for key, w := range doc.Soft.Weights {
		if w < 0 {
			return Soft{}, fmt.Errorf("soft.weights %q=%v: %w", key, w, ErrNegativeWeight)
		}
		switch key {
		case WeightDiversityNumeric:
			weights.DiversityNumeric = w
		case WeightSimilarityBonus:
			weights.SimilarityBonus = w
		case WeightCategoricalDiversity:
			weights.CategoricalDiversity = w
		case WeightMultiOverlapBonus:
			weights.MultiOverlapBonus = w
		}
	}

	return Soft{
		NumericFeatures: doc.Soft.NumericFeatures,
		Categorical:     categorical,
		MultiChoice:     multi,
		Weights:         weights,
	}, nil
}

func bindAgeRules(schema field.Schema, doc *AgeRulesDoc) (*AgeRules, error) {
	if doc == nil {
		return nil, nil
	}
	if !schema.Has(doc.Field) {
		return nil, fmt.Errorf("age_rules.field %q: %w", doc.Field, ErrUnknownField)
	}
	if len(doc.Bands) == 0 {
		return nil, ErrEmptyBands
	}

	bands := make([]AgeBand, 0, len(doc.Bands))
	for _, b := range doc.Bands {
		if b.Min > b.Max {
			return nil, fmt.Errorf("age_rules.bands %q [%v,%v]: %w", b.Name, b.Min, b.Max, ErrInvalidBand)
		}
		if b.MaxSpread != nil && *b.MaxSpread <= 0 {
			return nil, fmt.Errorf("age_rules.bands %q max_spread=%v: %w", b.Name, *b.MaxSpread, ErrInvalidBand)
		}
		bands = append(bands, AgeBand{Name: b.Name, Min: b.Min, Max: b.Max, MaxSpread: b.MaxSpread})
	}

	gc := GroupConstraints{}
	if doc.GroupConstraints != nil {
		gc.MaxAgeDifference = doc.GroupConstraints.MaxAgeDifference
		gc.MaxAgeStd = doc.GroupConstraints.MaxAgeStd
	}

	return &AgeRules{
		Field:              doc.Field,
		Bands:              bands,
		AllowCrossBand:     doc.AllowCrossBand,
		BoundarySlackYears: doc.BoundarySlackYears,
		GroupConstraints:   gc,
	}, nil
}

func validateSubspaces(schema field.Schema, subspaces [][]string) error {
	for _, keyList := range subspaces {
		for _, f := range keyList {
			if !schema.Has(f) {
				return fmt.Errorf("subspaces %q: %w", f, ErrUnknownField)
			}
		}
	}
	return nil
}

func bindFallback(doc Doc, groupSize int) (Fallback, error) {
	if doc.Fallback.AlternativeSeedOnFailure {
		return Fallback{}, ErrUnsupportedFallback
	}

	minSize := doc.Fallback.MinGroupSize
	if minSize == 0 {
		minSize = defaultMinGroupSize
	}
	maxSize := doc.Fallback.MaxGroupSize
	if maxSize == 0 {
		maxSize = defaultMaxGroupSize
		if groupSize > maxSize {
			maxSize = groupSize
		}
	}

	if minSize > groupSize || groupSize > maxSize {
		return Fallback{}, fmt.Errorf("min=%d group_size=%d max=%d: %w", minSize, groupSize, maxSize, ErrGroupSizeBounds)
	}

	return Fallback{
		MinGroupSize:       minSize,
		MaxGroupSize:       maxSize,
		DeferIfInfeasible:  doc.Fallback.DeferIfInfeasible,
		AllowPartialGroups: doc.Fallback.AllowPartialGroups,
	}, nil
}

func bindPairs(doc *PairRulesDoc) PairRules {
	if doc == nil {
		return PairRules{}
	}
	return PairRules{
		FriendPairs:      doc.FriendPairs,
		SitTogether:      doc.SitTogether,
		MaxPairsPerGroup: doc.MaxPairsPerGroup,
	}
}
