package policy

// Doc is the wire shape of a PolicyDoc. Field names match the recognized
// JSON/YAML keys exactly; unknown keys are rejected by Decode, not by
// this struct (json.Decoder.DisallowUnknownFields does the rejecting,
// see decode.go).
type Doc struct {
	GroupSize int        `json:"group_size" yaml:"group_size" validate:"omitempty,gte=2"`
	Subspaces [][]string `json:"subspaces" yaml:"subspaces"`

	Hard struct {
		CategoricalEqual []string           `json:"categorical_equal" yaml:"categorical_equal"`
		MultiOverlap     []string           `json:"multi_overlap" yaml:"multi_overlap"`
		NumericTol       map[string]float64 `json:"numeric_tol" yaml:"numeric_tol"`
	} `json:"hard" yaml:"hard"`

	AgeRules *AgeRulesDoc `json:"age_rules" yaml:"age_rules"`

	Soft struct {
		NumericFeatures []string          `json:"numeric_features" yaml:"numeric_features"`
		Categorical     map[string]string `json:"categorical" yaml:"categorical"`
		MultiChoice     map[string]string `json:"multi_choice" yaml:"multi_choice"`
		Weights         map[string]float64 `json:"weights" yaml:"weights"`
	} `json:"soft" yaml:"soft"`

	// Pairs is parsed and validated but does not affect
	// compat/score/groupbuilder; it is carried through for forward
	// compatibility with richer pairing rules.
	Pairs *PairRulesDoc `json:"pairs" yaml:"pairs"`

	Fallback struct {
		MinGroupSize       int  `json:"min_group_size" yaml:"min_group_size"`
		MaxGroupSize       int  `json:"max_group_size" yaml:"max_group_size"`
		DeferIfInfeasible  bool `json:"defer_if_infeasible" yaml:"defer_if_infeasible"`
		AllowPartialGroups bool `json:"allow_partial_groups" yaml:"allow_partial_groups"`

		// AlternativeSeedOnFailure extends the seed-failure stop condition;
		// parsed but rejected at Bind time until a fallback-seed strategy
		// is implemented. See DESIGN.md.
		AlternativeSeedOnFailure bool `json:"alternative_seed_on_failure" yaml:"alternative_seed_on_failure"`
	} `json:"fallback" yaml:"fallback"`

	Normalization struct {
		FlexibleAnswers []string `json:"flexible_answers" yaml:"flexible_answers"`
	} `json:"normalization" yaml:"normalization"`
}

// AgeBandDoc is one band entry in AgeRulesDoc.Bands.
type AgeBandDoc struct {
	Name      string   `json:"name" yaml:"name"`
	Min       float64  `json:"min" yaml:"min"`
	Max       float64  `json:"max" yaml:"max"`
	MaxSpread *float64 `json:"max_spread" yaml:"max_spread"`
}

// AgeRulesDoc is the wire shape of the optional age_rules block.
type AgeRulesDoc struct {
	Field               string       `json:"field" yaml:"field"`
	Bands               []AgeBandDoc `json:"bands" yaml:"bands"`
	AllowCrossBand      bool         `json:"allow_cross_band" yaml:"allow_cross_band"`
	BoundarySlackYears  float64      `json:"boundary_slack_years" yaml:"boundary_slack_years"`
	GroupConstraints    *struct {
		MaxAgeDifference *float64 `json:"max_age_difference" yaml:"max_age_difference"`
		MaxAgeStd        *float64 `json:"max_age_std" yaml:"max_age_std"`
	} `json:"group_constraints" yaml:"group_constraints"`
}

// PairRulesDoc is a "pairs" policy block: parsed and validated, but
// intentionally inert in this engine.
type PairRulesDoc struct {
	FriendPairs     bool `json:"friend_pairs" yaml:"friend_pairs"`
	SitTogether     bool `json:"sit_together" yaml:"sit_together"`
	MaxPairsPerGroup *int `json:"max_pairs_per_group" yaml:"max_pairs_per_group"`
}

// Weight keys recognized under soft.weights.
const (
	WeightDiversityNumeric   = "diversity_numeric"
	WeightSimilarityBonus    = "similarity_bonus"
	WeightCategoricalDiversity = "categorical_diversity"
	WeightMultiOverlapBonus  = "multi_overlap_bonus"
)

// Default soft-score weights, used when soft.weights omits a key.
const (
	DefaultDiversityNumeric     = 1.0
	DefaultSimilarityBonus      = 0.2
	DefaultCategoricalDiversity = 0.4
	DefaultMultiOverlapBonus    = 0.5
)

// CategoricalMode is the scoring treatment for a soft-categorical field.
type CategoricalMode int

const (
	// ModeDiversity scores unique_count / k, k being the scored group's size.
	ModeDiversity CategoricalMode = iota
	// ModeBalance scores min(1, unique_count/3).
	ModeBalance
)

// Hard is the bound, validated hard-constraint spec.
type Hard struct {
	CategoricalEqual []string
	MultiOverlap     []string
	NumericTol       map[string]float64
}

// Soft is the bound, validated soft-scoring spec.
type Soft struct {
	NumericFeatures []string
	Categorical     map[string]CategoricalMode
	MultiChoice     []string
	Weights         Weights
}

// Weights are the four soft-score term multipliers.
type Weights struct {
	DiversityNumeric     float64
	SimilarityBonus      float64
	CategoricalDiversity float64
	MultiOverlapBonus    float64
}

// GroupConstraints are whole-group bounds checked alongside pairwise hard
// constraints.
type GroupConstraints struct {
	MaxAgeDifference *float64
	MaxAgeStd        *float64
}

// AgeBand is one bound, validated age band.
type AgeBand struct {
	Name      string
	Min, Max  float64
	MaxSpread *float64
}

// AgeRules is the bound, validated age-rules spec.
type AgeRules struct {
	Field              string
	Bands              []AgeBand
	AllowCrossBand     bool
	BoundarySlackYears float64
	GroupConstraints   GroupConstraints
}

// PairRules is the bound, validated (but inert) pairs spec.
type PairRules struct {
	FriendPairs      bool
	SitTogether      bool
	MaxPairsPerGroup *int
}

// Fallback are the acceptance-bound and fallback-behavior settings.
type Fallback struct {
	MinGroupSize       int
	MaxGroupSize       int
	DeferIfInfeasible  bool
	AllowPartialGroups bool
}

// Policy is the frozen, validated snapshot bound to a run. It is immutable
// once returned by Bind and safe for concurrent reads.
type Policy struct {
	GroupSize       int
	Subspaces       [][]string
	Hard            Hard
	Soft            Soft
	AgeRules        *AgeRules
	Pairs           PairRules
	Fallback        Fallback
	FlexibleAnswers []string
	PolicyHash      string
}
