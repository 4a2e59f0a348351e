// Command-free library module github.com/bloomgroup/engine implements the
// bloomgroup cohort-formation engine: it turns a population of survey
// responses into small, policy-compatible groups.
//
// The pipeline, leaves first:
//
//	field        — typed survey-schema declarations (FieldSpec, Schema)
//	normalize    — raw response map -> FeatureRecord, wildcard expansion
//	policy       — PolicyDoc -> Policy/AgeRules, validation, hashing
//	subspace     — composite-key partitioning of FeatureRecords
//	compat       — per-subspace symmetric CompatibilityMatrix construction
//	score        — group-quality scoring with memoization and explain mode
//	groupbuilder — greedy seed-and-extend group construction
//	rundriver    — orchestration: subspace loop, explanations, stats
//	featuretable — columnar FeaturesTable plus CSV/JSON loaders
//
// cmd/bloomgroup is a CLI harness that reads a schema, a policy document,
// and a features file from disk and prints the resulting RunResult as
// JSON. See SPEC_FULL.md for the full requirements this module
// implements and DESIGN.md for how each package is grounded.
package engine
