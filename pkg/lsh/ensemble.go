// Package lsh builds the LSH Ensemble: L independent Bucketed Indexes over
// the same vector set, queried as a deduplicated union.
//
// Grounded in original_source/lib/lsh_cube.hpp's create_LSH_hashtables /
// get_LSH_combined_buckets.
package lsh

import (
	"math/rand"

	"github.com/therealutkarshpriyadarshi/clusterdb/pkg/bucketindex"
	"github.com/therealutkarshpriyadarshi/clusterdb/pkg/hashgen"
	"github.com/therealutkarshpriyadarshi/clusterdb/pkg/vector"
)

// Ensemble is an ordered sequence of L Bucketed Indexes, each with its own
// independently seeded hash generator.
type Ensemble struct {
	indexes []*bucketindex.Index
}

// Config controls how the L indexes are built.
type Config struct {
	Metric       vector.Metric
	K            int // number of hash functions (amplification width)
	L            int // number of hash tables
	BucketDiv    int // Euclidean-only: M = ceil(N / BucketDiv)
	EuclideanW   float64
}

// Build constructs L independent Bucketed Indexes over vectors and inserts
// every vector into every index.
func Build(vectors []*vector.Vector, cfg Config, rng *rand.Rand) *Ensemble {
	ens := &Ensemble{indexes: make([]*bucketindex.Index, cfg.L)}
	dimNum := 0
	if len(vectors) > 0 {
		dimNum = vectors[0].DimCount()
	}

	for i := 0; i < cfg.L; i++ {
		var idx *bucketindex.Index
		switch cfg.Metric {
		case vector.Cosine:
			gen := hashgen.NewCosineG(cfg.K, dimNum, rng)
			bucketCount := 1 << uint(cfg.K)
			idx = bucketindex.New(gen, bucketCount)
		default:
			gen := hashgen.NewEuclideanPhi(cfg.K, dimNum, cfg.EuclideanW, rng)
			bucketDiv := cfg.BucketDiv
			if bucketDiv <= 0 {
				bucketDiv = 1
			}
			bucketCount := ceilDiv(len(vectors), bucketDiv)
			if bucketCount <= 0 {
				bucketCount = 1
			}
			idx = bucketindex.New(gen, bucketCount)
		}

		for _, v := range vectors {
			idx.Insert(v)
		}
		ens.indexes[i] = idx
	}

	return ens
}

func ceilDiv(n, d int) int {
	if d == 0 {
		return n
	}
	return (n + d - 1) / d
}

// CombinedBuckets returns the union (as a set of distinct vector ids) of the
// filtered bucket returned by each of the L indexes for q, in an ordered
// sequence with no duplicate ids.
func (ens *Ensemble) CombinedBuckets(q *vector.Vector) []*vector.Vector {
	seen := make(map[string]struct{})
	var out []*vector.Vector
	for _, idx := range ens.indexes {
		for _, cand := range idx.FilteredBucketFor(q) {
			if _, dup := seen[cand.ID()]; dup {
				continue
			}
			seen[cand.ID()] = struct{}{}
			out = append(out, cand)
		}
	}
	return out
}

// Len returns L.
func (ens *Ensemble) Len() int { return len(ens.indexes) }
