package bucketindex

import (
	"github.com/therealutkarshpriyadarshi/clusterdb/pkg/hashgen"
	"github.com/therealutkarshpriyadarshi/clusterdb/pkg/vector"
)

// Index is a fixed array of M buckets plus the one HashGenerator it owns
// exclusively. Grounded in original_source/lib/data_structures/cust_hashtable.hpp.
type Index struct {
	gen     hashgen.Generator
	buckets []Bucket
}

// New creates an index with bucketCount buckets, taking ownership of gen.
func New(gen hashgen.Generator, bucketCount int) *Index {
	return &Index{
		gen:     gen,
		buckets: make([]Bucket, bucketCount),
	}
}

// BucketCount returns M.
func (idx *Index) BucketCount() int { return len(idx.buckets) }

// HashOf returns mod(generator(q), M), the bucket index used for q.
func (idx *Index) HashOf(q *vector.Vector) int {
	return hashgen.Mod(idx.gen.Generate(q), len(idx.buckets))
}

// Insert appends v to bucket mod(generator(v), M).
func (idx *Index) Insert(v *vector.Vector) {
	idx.buckets[idx.HashOf(v)].insert(v)
}

// BucketFor returns the raw bucket contents at mod(generator(q), M), with no
// detailed-hash filtering.
func (idx *Index) BucketFor(q *vector.Vector) []*vector.Vector {
	return idx.buckets[idx.HashOf(q)].Vectors()
}

// BucketAt gives raw access to a specific bucket index, used by Hypercube
// Hamming-neighbour probing.
func (idx *Index) BucketAt(i int) []*vector.Vector {
	return idx.buckets[i].Vectors()
}

// FilteredBucketFor returns BucketFor(q) narrowed to vectors whose detailed
// sub-code matches q's detailed sub-code component-wise, when the
// underlying generator exposes one. Self is never filtered out: a vector's
// detailed hash always equals its own.
func (idx *Index) FilteredBucketFor(q *vector.Vector) []*vector.Vector {
	raw := idx.BucketFor(q)
	if !idx.gen.HasDetailed() {
		return raw
	}

	queryCodes := idx.gen.DetailedCodes(q.ID())
	filtered := make([]*vector.Vector, 0, len(raw))
	for _, cand := range raw {
		candCodes := idx.gen.DetailedCodes(cand.ID())
		if detailedCodesEqual(queryCodes, candCodes) {
			filtered = append(filtered, cand)
		}
	}
	return filtered
}

func detailedCodesEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
