package cluster

import "github.com/therealutkarshpriyadarshi/clusterdb/pkg/vector"

// syntheticCentroidID marks a centroid produced by KMeansUpdate rather than
// drawn from the input set, so callers (and a future update) can tell it
// apart from a real input vector.
const syntheticCentroidID = "k_means_center"

// KMeansUpdate recomputes each cluster's centroid as the arithmetic mean of
// its members (a cluster of size 0 yields the zero vector), then tests
// convergence: if every new centroid is within minDist of its predecessor,
// clustering stops and the old centroid set is returned unchanged. Otherwise
// the whole centroid set is replaced and "continue" is reported.
func KMeansUpdate(input []*vector.Vector, centroids []*vector.Vector, metric vector.Metric, minDist float64) ([]*vector.Vector, bool, error) {
	dimCount := 0
	if len(centroids) > 0 {
		dimCount = centroids[0].DimCount()
	}

	newCentroids := make([]*vector.Vector, len(centroids))
	memberCount := make([]int, len(centroids))
	for i := range newCentroids {
		newCentroids[i] = vector.Zero(syntheticCentroidID, dimCount)
	}

	for _, v := range input {
		ci := v.Cluster()
		memberCount[ci]++
		newCentroids[ci].AddInto(v)
	}
	for i := range newCentroids {
		newCentroids[i].DivBy(float64(memberCount[i]))
	}

	for i := range newCentroids {
		d, err := vector.Distance(metric, newCentroids[i], centroids[i])
		if err != nil {
			return nil, false, err
		}
		if d > minDist {
			return newCentroids, true, nil
		}
	}

	return centroids, false, nil
}

// PAMUpdate partitions input by cluster index, then for each cluster picks
// the member minimising the summed distance to every other member of that
// cluster (a cached pairwise distance dictionary avoids the symmetric
// recomputation) and swaps it in if it differs from the current centroid.
// Reports "continue" iff at least one swap occurred.
func PAMUpdate(input []*vector.Vector, centroids []*vector.Vector, metric vector.Metric) ([]*vector.Vector, bool, error) {
	clusters := partitionByCluster(input, len(centroids))
	newCentroids := append([]*vector.Vector(nil), centroids...)

	swapped := false
	for ci, members := range clusters {
		if len(members) == 0 {
			continue
		}

		cache := make(map[string]float64)
		minSum := -1.0
		minIdx := 0

		for pi, pot := range members {
			sum := 0.0
			for _, cur := range members {
				key := pot.ID() + "to" + cur.ID()
				reverseKey := cur.ID() + "to" + pot.ID()

				d, ok := cache[key]
				if !ok {
					var err error
					d, err = vector.Distance(metric, pot, cur)
					if err != nil {
						return nil, false, err
					}
					cache[reverseKey] = d
				}
				sum += d
			}

			if minSum == -1 || sum < minSum {
				minSum = sum
				minIdx = pi
			}
		}

		if members[minIdx].ID() != newCentroids[ci].ID() {
			newCentroids[ci] = members[minIdx]
			swapped = true
		}
	}

	return newCentroids, swapped, nil
}

// partitionByCluster groups input by cluster index into k buckets.
func partitionByCluster(input []*vector.Vector, k int) [][]*vector.Vector {
	clusters := make([][]*vector.Vector, k)
	for _, v := range input {
		ci := v.Cluster()
		clusters[ci] = append(clusters[ci], v)
	}
	return clusters
}
