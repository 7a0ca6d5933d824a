package cluster

import (
	"fmt"
	"strconv"
	"strings"
)

// Format renders the report in the layout spec.md §6 describes, the same
// layout cmd/clusterctl writes to its output file.
func (r *Report) Format() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Algorithm: %s\n", r.Algorithm)
	fmt.Fprintf(&b, "Metric: %s\n", r.Metric)

	for i, c := range r.Clusters {
		if c.IsMedoid {
			fmt.Fprintf(&b, "CLUSTER-%d {size: %d centroid: %s}\n", i+1, c.Size, c.CentroidID)
		} else {
			dims := make([]string, len(c.CentroidDims))
			for j, d := range c.CentroidDims {
				dims[j] = strconv.FormatFloat(d, 'g', -1, 64)
			}
			fmt.Fprintf(&b, "CLUSTER-%d {size: %d centroid: %s}\n", i+1, c.Size, strings.Join(dims, " "))
		}
	}

	fmt.Fprintf(&b, "clustering_time: %s\n", strconv.FormatFloat(r.ClusteringTime.Seconds(), 'f', -1, 64))

	sils := make([]string, len(r.Silhouette))
	for i, s := range r.Silhouette {
		sils[i] = strconv.FormatFloat(s, 'f', 4, 64)
	}
	fmt.Fprintf(&b, "Silhouette: [%s]\n", strings.Join(sils, ", "))

	for i, c := range r.Clusters {
		if len(c.Members) == 0 {
			continue
		}
		fmt.Fprintf(&b, "CLUSTER-%d {%s}\n", i+1, strings.Join(c.Members, ", "))
	}

	return b.String()
}
