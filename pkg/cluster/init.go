// Package cluster implements the initialization, assignment, update and
// silhouette phases that the orchestrator composes into a full run.
//
// Grounded in original_source/lib/clustering_phases/{initialization,
// assignment,update,silhouette}.hpp.
package cluster

import (
	"math/rand"
	"sort"

	"github.com/therealutkarshpriyadarshi/clusterdb/pkg/vector"
)

// RandomUniform draws k distinct indices uniformly from [0, N) without
// replacement and returns the referenced vectors as centroids.
func RandomUniform(vectors []*vector.Vector, k int, rng *rand.Rand) []*vector.Vector {
	centroids := make([]*vector.Vector, k)
	chosen := make(map[int]struct{}, k)

	for i := 0; i < k; i++ {
		idx := rng.Intn(len(vectors))
		for {
			if _, dup := chosen[idx]; !dup {
				break
			}
			idx = rng.Intn(len(vectors))
		}
		chosen[idx] = struct{}{}
		centroids[i] = vectors[idx]
	}

	return centroids
}

// KMeansPlusPlus picks c0 uniformly, then for i = 1..k-1 draws the next
// centroid with probability proportional to the square of its distance to
// the nearest already-chosen centroid. A per-(vector,centroid) distance
// cache keyed "<vid>to<cid>" avoids recomputation across iterations.
func KMeansPlusPlus(vectors []*vector.Vector, k int, metric vector.Metric, rng *rand.Rand) ([]*vector.Vector, error) {
	centroids := make([]*vector.Vector, k)
	centroids[0] = vectors[rng.Intn(len(vectors))]

	cache := make(map[string]float64)
	minDists := make([]float64, len(vectors))

	for i := 1; i < k; i++ {
		var maxForNormalizing float64

		for vi, v := range vectors {
			min := -1.0
			for ci := 0; ci < i; ci++ {
				c := centroids[ci]
				key := v.ID() + "to" + c.ID()
				d, ok := cache[key]
				if !ok {
					var err error
					d, err = vector.Distance(metric, v, c)
					if err != nil {
						return nil, err
					}
					cache[key] = d
				}
				if min == -1 || d < min {
					min = d
				}
			}
			minDists[vi] = min
			if min > maxForNormalizing {
				maxForNormalizing = min
			}
		}

		cum := make([]float64, len(vectors))
		if maxForNormalizing == 0 {
			// Every remaining vector coincides with an already-chosen
			// centroid; fall back to a uniform cumulative sum so the
			// draw below still makes progress.
			for j := range cum {
				cum[j] = float64(j + 1)
			}
		} else {
			norm0 := minDists[0] / maxForNormalizing
			cum[0] = norm0 * norm0
			for j := 1; j < len(minDists); j++ {
				norm := minDists[j] / maxForNormalizing
				cum[j] = cum[j-1] + norm*norm
			}
		}

		target := rng.Float64() * cum[len(cum)-1]
		chosen := 0
		if target > cum[0] {
			chosen = sort.Search(len(cum), func(j int) bool { return cum[j] >= target })
		}

		centroids[i] = vectors[chosen]
	}

	return centroids, nil
}
