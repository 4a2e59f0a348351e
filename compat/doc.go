// Package compat builds the symmetric, reflexive pairwise
// CompatibilityMatrix a subspace's candidates must satisfy, built once per
// subspace and queried over the shrinking pool of available candidates.
package compat
