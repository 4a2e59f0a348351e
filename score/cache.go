package score

import (
	"hash/fnv"
	"sort"

	"github.com/puzpuzpuz/xsync/v4"
)

// Cache memoizes Score results by the sorted tuple of candidate indices.
// It is safe for concurrent use — when rundriver processes subspaces in
// parallel, each worker constructs its own Cache rather than sharing one,
// since subspaces never share indices and sharing would only add
// contention.
type Cache struct {
	m *xsync.Map[uint64, Result]
}

// NewCache returns an empty Cache.
func NewCache() *Cache {
	return &Cache{m: xsync.NewMap[uint64, Result]()}
}

// Get returns the cached Result for group, if present. group need not be
// pre-sorted; Get sorts a copy before hashing.
func (c *Cache) Get(group []int) (Result, bool) {
	return c.m.Load(cacheKey(group))
}

// Put stores result under group's cache key.
func (c *Cache) Put(group []int, result Result) {
	c.m.Store(cacheKey(group), result)
}

// Clear empties the cache. rundriver calls this (via Scorer.ClearCache)
// when a subspace's extraction loop ends; each subspace starts with a
// fresh Scorer and so an empty cache.
func (c *Cache) Clear() {
	c.m.Clear()
}

// cacheKey hashes the sorted tuple of indices with FNV-1a over a
// length-prefixed byte stream. The map is keyed on this hash alone (no
// stored tuple to verify against), so a collision would return another
// group's Result; per spec.md §9 the hash is deemed sufficient and no
// verification slot is carried.
func cacheKey(group []int) uint64 {
	sorted := append([]int(nil), group...)
	sort.Ints(sorted)

	h := fnv.New64a()
	var buf [8]byte
	putUint64(buf[:], uint64(len(sorted)))
	_, _ = h.Write(buf[:])
	for _, idx := range sorted {
		putUint64(buf[:], uint64(int64(idx)))
		_, _ = h.Write(buf[:])
	}
	return h.Sum64()
}

func putUint64(b []byte, v uint64) {
	for i := 0; i < 8; i++ {
		b[i] = byte(v >> (8 * i))
	}
}
