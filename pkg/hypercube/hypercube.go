// Package hypercube builds the single Bucketed Index over a k-bit
// projection and implements the Hamming-neighbour probing used for reverse
// range search.
//
// Grounded in original_source/lib/lsh_cube.hpp's create_hypercube /
// get_hypercube_combined_buckets and lib/utils.cpp's
// get_num_hamming_dist_from.
package hypercube

import (
	"math/rand"

	"github.com/therealutkarshpriyadarshi/clusterdb/pkg/bucketindex"
	"github.com/therealutkarshpriyadarshi/clusterdb/pkg/hashgen"
	"github.com/therealutkarshpriyadarshi/clusterdb/pkg/vector"
)

// Index wraps a single bucketindex.Index built with a Hypercube generator
// over k bits (2^k buckets).
type Index struct {
	idx *bucketindex.Index
	k   int
}

// Build constructs the hypercube: k EuclideanF sub-generators under the
// Euclidean metric, or k CosineH sub-generators under Cosine.
func Build(vectors []*vector.Vector, metric vector.Metric, k int, euclideanW float64, rng *rand.Rand) *Index {
	dimNum := 0
	if len(vectors) > 0 {
		dimNum = vectors[0].DimCount()
	}

	bits := make([]hashgen.Generator, k)
	for i := 0; i < k; i++ {
		if metric == vector.Cosine {
			bits[i] = hashgen.NewCosineH(dimNum, rng)
		} else {
			bits[i] = hashgen.NewEuclideanF(dimNum, euclideanW, rng)
		}
	}

	gen := hashgen.NewHypercube(bits)
	bucketCount := 1 << uint(k)
	idx := bucketindex.New(gen, bucketCount)
	for _, v := range vectors {
		idx.Insert(v)
	}

	return &Index{idx: idx, k: k}
}

// HashOf returns q's home bucket index.
func (h *Index) HashOf(q *vector.Vector) int { return h.idx.HashOf(q) }

// BucketAt gives raw bucket access, used directly by tests and by
// CombinedBuckets.
func (h *Index) BucketAt(i int) []*vector.Vector { return h.idx.BucketAt(i) }

// CombinedBuckets starts from q's home bucket, then walks increasing
// Hamming distance d = 1, 2, ... from q's code, consuming the probes budget
// one bucket at a time until probes reaches 0 or the whole cube (distance >
// k) has been exhausted. Duplicates across probed buckets are NOT
// deduplicated at this layer — the range-assignment predicate masks the
// consequence, per spec.md §9's "Hypercube probe dedup" note.
func (h *Index) CombinedBuckets(q *vector.Vector, probes int) []*vector.Vector {
	home := h.HashOf(q)
	out := append([]*vector.Vector(nil), h.idx.BucketAt(home)...)

	if probes <= 0 {
		return out
	}

	dist := 1
	neighbours := HammingNeighbours(home, dist, 0, h.k)
	neighI := 0

	remaining := probes
	for remaining > 0 {
		if neighI < len(neighbours) {
			out = append(out, h.idx.BucketAt(neighbours[neighI])...)
			neighI++
			remaining--
			continue
		}

		dist++
		if dist > h.k {
			break
		}
		neighbours = HammingNeighbours(home, dist, 0, h.k)
		neighI = 0
		if len(neighbours) == 0 {
			break
		}
	}

	return out
}

// HammingNeighbours recursively enumerates every code at exactly Hamming
// distance dist from num, flipping bits at positions >= minBit, over a
// bits-bit code space.
//
// Grounded verbatim in original_source/lib/utils.cpp's
// get_num_hamming_dist_from.
func HammingNeighbours(num, dist, minBit, bits int) []int {
	mask := 1 << uint(minBit)

	var result []int
	for i := minBit; i < bits; i++ {
		flipped := num ^ mask

		switch {
		case dist > 1:
			result = append(result, HammingNeighbours(flipped, dist-1, i+1, bits)...)
		case dist == 1:
			result = append(result, flipped)
		}

		mask <<= 1
	}

	return result
}
