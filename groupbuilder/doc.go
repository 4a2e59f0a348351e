// Package groupbuilder implements greedy seed-and-extend group
// construction: pick the hardest-to-place survivor as seed, repeatedly
// extend with the highest-scoring feasible candidate, and accept or
// discard based on the configured minimum size.
package groupbuilder
