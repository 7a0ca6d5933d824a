package cluster

import "github.com/therealutkarshpriyadarshi/clusterdb/pkg/vector"

// Silhouette computes, for each cluster, its nearest neighbour cluster (by
// centroid distance, excluding itself), then the per-vector silhouette
// score s(v) = (b(v)-a(v)) / max(a(v),b(v)) where a(v) is the mean distance
// to v's own cluster members (0 for a singleton cluster) and b(v) is the
// mean distance to the neighbour cluster's members.
//
// The result has length len(clusters)+1: per-cluster means at positions
// [0,k) and the overall mean (sum over every vector's score, divided by N)
// at position k. A single distance cache, keyed by both orderings of the id
// pair, is shared across every cluster.
func Silhouette(clusters [][]*vector.Vector, centroids []*vector.Vector, metric vector.Metric) ([]float64, error) {
	// k=1: there is no neighbour cluster to separate from. By convention
	// every per-cluster and the overall score is 0 rather than undefined.
	if len(clusters) == 1 {
		return []float64{0, 0}, nil
	}

	nearest := make([]int, len(centroids))
	for ci, c := range centroids {
		min := -1.0
		minI := 0
		for i, other := range centroids {
			if i == ci {
				continue
			}
			d, err := vector.Distance(metric, c, other)
			if err != nil {
				return nil, err
			}
			if min == -1 || d < min {
				min = d
				minI = i
			}
		}
		nearest[ci] = minI
	}

	cache := make(map[string]float64)
	result := make([]float64, len(clusters)+1)
	vectorNum := 0

	for ci, members := range clusters {
		var clusterSum float64
		for vi := range members {
			s, err := silhouetteOf(members, vi, clusters[nearest[ci]], metric, cache)
			if err != nil {
				return nil, err
			}
			clusterSum += s
		}
		result[len(clusters)] += clusterSum
		if len(members) > 0 {
			result[ci] = clusterSum / float64(len(members))
		}
		vectorNum += len(members)
	}

	if vectorNum > 0 {
		result[len(clusters)] /= float64(vectorNum)
	}

	return result, nil
}

func silhouetteOf(cluster []*vector.Vector, vi int, neighbourCluster []*vector.Vector, metric vector.Metric, cache map[string]float64) (float64, error) {
	v := cluster[vi]

	var aSum float64
	for _, member := range cluster {
		d, err := cachedDistance(v, member, metric, cache)
		if err != nil {
			return 0, err
		}
		aSum += d
	}
	a := aSum
	if len(cluster) != 1 {
		a /= float64(len(cluster) - 1)
	}

	var bSum float64
	for _, member := range neighbourCluster {
		d, err := cachedDistance(v, member, metric, cache)
		if err != nil {
			return 0, err
		}
		bSum += d
	}
	b := bSum / float64(len(neighbourCluster))

	max := a
	if b > a {
		max = b
	}
	if max == 0 {
		return 0, nil
	}
	return (b - a) / max, nil
}

func cachedDistance(u, v *vector.Vector, metric vector.Metric, cache map[string]float64) (float64, error) {
	key := u.ID() + "to" + v.ID()
	reverseKey := v.ID() + "to" + u.ID()
	if d, ok := cache[key]; ok {
		return d, nil
	}
	if d, ok := cache[reverseKey]; ok {
		return d, nil
	}
	d, err := vector.Distance(metric, u, v)
	if err != nil {
		return 0, err
	}
	cache[reverseKey] = d
	return d, nil
}
