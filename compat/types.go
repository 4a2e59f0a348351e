package compat

import "fmt"

// Matrix is a symmetric, reflexive n×n boolean compatibility relation over
// one subspace's candidate indices. Its backing store is a flat
// row-major []bool, built once per subspace; later lookups are restricted
// to the still-available indices instead of rebuilding it.
type Matrix struct {
	n    int
	data []bool // row-major, data[i*n+j]
}

// NewMatrix allocates an n×n Matrix with every entry initialized to true;
// callers apply hard-rule layers afterward to AND it down.
func NewMatrix(n int) (*Matrix, error) {
	if n < 0 {
		return nil, fmt.Errorf("compat: negative size %d: %w", n, ErrInvalidSize)
	}
	data := make([]bool, n*n)
	for i := range data {
		data[i] = true
	}
	return &Matrix{n: n, data: data}, nil
}

// Size returns the matrix's dimension.
func (m *Matrix) Size() int { return m.n }

// At reports whether i and j are compatible.
func (m *Matrix) At(i, j int) bool {
	return m.data[i*m.n+j]
}

// set writes a single symmetric entry.
func (m *Matrix) set(i, j, v bool) {
	m.data[i*m.n+j] = v
	m.data[j*m.n+i] = v
}

// andPair intersects (logical AND) the (i,j) entry with v, keeping the
// matrix symmetric. Used by each rule layer so later layers only ever
// narrow compatibility, never widen it.
func (m *Matrix) andPair(i, j int, v bool) {
	if !v {
		m.set(i, j, false)
	}
}

// ForceDiagonal sets every diagonal entry to true, guaranteeing every
// record is compatible with itself regardless of the rule layers applied.
func (m *Matrix) ForceDiagonal() {
	for i := 0; i < m.n; i++ {
		m.data[i*m.n+i] = true
	}
}

// Degree returns the number of indices in candidates (excluding self) that i
// is compatible with — the row-sum groupbuilder's seed selection needs.
// candidates holds local matrix indices.
func (m *Matrix) Degree(i int, candidates []int) int {
	deg := 0
	for _, j := range candidates {
		if j == i {
			continue
		}
		if m.At(i, j) {
			deg++
		}
	}
	return deg
}

// CompatibleWithAll reports whether i is compatible with every index in
// group.
func (m *Matrix) CompatibleWithAll(i int, group []int) bool {
	for _, g := range group {
		if !m.At(i, g) {
			return false
		}
	}
	return true
}
