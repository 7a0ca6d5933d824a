package cluster

import (
	"github.com/therealutkarshpriyadarshi/clusterdb/pkg/hypercube"
	"github.com/therealutkarshpriyadarshi/clusterdb/pkg/lsh"
	"github.com/therealutkarshpriyadarshi/clusterdb/pkg/vector"
)

// RemoveClustering resets every vector to the unassigned state. Required
// before either reverse-range assignment policy runs.
func RemoveClustering(vectors []*vector.Vector) {
	for _, v := range vectors {
		v.Unassign()
	}
}

// LloydsAssignment assigns every input vector to the nearest centroid,
// breaking ties by lowest centroid index, then marks each centroid with its
// own cluster index.
func LloydsAssignment(input []*vector.Vector, centroids []*vector.Vector, metric vector.Metric) error {
	for _, v := range input {
		if err := assignNearest(v, centroids, metric); err != nil {
			return err
		}
	}
	markCentroids(centroids)
	return nil
}

// LloydsForRemaining runs Lloyd's assignment only over vectors still at
// cluster index -1, used to mop up candidates that never appeared in any
// probed bucket.
func LloydsForRemaining(input []*vector.Vector, centroids []*vector.Vector, metric vector.Metric) error {
	for _, v := range input {
		if v.Cluster() != -1 {
			continue
		}
		if err := assignNearest(v, centroids, metric); err != nil {
			return err
		}
	}
	return nil
}

func assignNearest(v *vector.Vector, centroids []*vector.Vector, metric vector.Metric) error {
	min := -1.0
	minCentroid := 0
	for ci, c := range centroids {
		d, err := vector.Distance(metric, v, c)
		if err != nil {
			return err
		}
		if min == -1 || d < min {
			min = d
			minCentroid = ci
		}
	}
	v.Assign(minCentroid, min)
	return nil
}

func markCentroids(centroids []*vector.Vector) {
	for ci, c := range centroids {
		c.Assign(ci, 0)
	}
}

// LSHRangeAssignment runs the shared range-assignment protocol over the
// candidate buckets the LSH Ensemble returns for each centroid, then mops up
// remaining unassigned vectors with Lloyd's.
func LSHRangeAssignment(input []*vector.Vector, ensemble *lsh.Ensemble, centroids []*vector.Vector, metric vector.Metric) error {
	RemoveClustering(input)

	combBuckets := make([][]*vector.Vector, len(centroids))
	for ci, c := range centroids {
		combBuckets[ci] = ensemble.CombinedBuckets(c)
	}

	if err := rangeAssignment(combBuckets, centroids, metric); err != nil {
		return err
	}
	if err := LloydsForRemaining(input, centroids, metric); err != nil {
		return err
	}
	markCentroids(centroids)
	return nil
}

// CubeRangeAssignment is the Hypercube-Index counterpart of
// LSHRangeAssignment.
func CubeRangeAssignment(input []*vector.Vector, cube *hypercube.Index, centroids []*vector.Vector, metric vector.Metric, probes int) error {
	RemoveClustering(input)

	combBuckets := make([][]*vector.Vector, len(centroids))
	for ci, c := range centroids {
		combBuckets[ci] = cube.CombinedBuckets(c, probes)
	}

	if err := rangeAssignment(combBuckets, centroids, metric); err != nil {
		return err
	}
	if err := LloydsForRemaining(input, centroids, metric); err != nil {
		return err
	}
	markCentroids(centroids)
	return nil
}

// rangeAssignment is the shared doubling-radius reverse-range-search
// protocol (spec.md §4.7.1). The radius advance happens inside the centroid
// loop, not after it — successive centroids within the same outer iteration
// see progressively larger radii. This matches the source behaviour and is
// preserved bit-for-bit rather than "fixed", since later phases depend on
// reproducing its exact output.
func rangeAssignment(combBuckets [][]*vector.Vector, centroids []*vector.Vector, metric vector.Metric) error {
	minDist, err := minPairwiseCentroidDistance(centroids, metric)
	if err != nil {
		return err
	}

	radius := minDist / 2
	minRadius := 0.0
	cache := make(map[string]float64)

	for {
		assignedCount := 0

		for ci, c := range centroids {
			for _, cand := range combBuckets[ci] {
				if cand.Cluster() != -1 && cand.DistFromCentroid() < minRadius {
					continue
				}

				key := c.ID() + "to" + cand.ID()
				d, cached := cache[key]
				if !cached {
					var err error
					d, err = vector.Distance(metric, c, cand)
					if err != nil {
						return err
					}
					cache[key] = d
				}

				if d >= minRadius && d < radius {
					if cand.Cluster() == -1 {
						cand.Assign(ci, d)
						assignedCount++
					} else if d < cand.DistFromCentroid() {
						cand.Assign(ci, d)
						assignedCount++
					}
				}
			}

			minRadius = radius
			radius *= 2
		}

		if assignedCount == 0 {
			break
		}
	}

	return nil
}

func minPairwiseCentroidDistance(centroids []*vector.Vector, metric vector.Metric) (float64, error) {
	min := -1.0
	for i := 0; i < len(centroids); i++ {
		for j := 0; j < len(centroids); j++ {
			if i == j {
				continue
			}
			d, err := vector.Distance(metric, centroids[i], centroids[j])
			if err != nil {
				return 0, err
			}
			if min == -1 || d < min {
				min = d
			}
		}
	}
	if min == -1 {
		return 0, nil
	}
	return min, nil
}
