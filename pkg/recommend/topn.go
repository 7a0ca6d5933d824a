package recommend

import (
	"sort"

	"github.com/therealutkarshpriyadarshi/clusterdb/pkg/vector"
)

// Ranked pairs a candidate neighbour with its cosine similarity to the
// query user, in descending similarity order.
type Ranked struct {
	Vector     *vector.Vector
	Similarity float64
}

// TopClosest scores every neighbour against user by cosine similarity and
// returns the top p, most-similar first. The source sorts with a hand-rolled
// parallel quicksort over two parallel slices; sort.Slice over a single
// slice of pairs is the idiomatic Go equivalent and carries the same
// descending-similarity contract.
func TopClosest(neighbors []*vector.Vector, user *vector.Vector, p int) ([]Ranked, error) {
	ranked := make([]Ranked, len(neighbors))
	for i, n := range neighbors {
		sim, err := vector.CosineSimilarity(n, user)
		if err != nil {
			return nil, err
		}
		ranked[i] = Ranked{Vector: n, Similarity: sim}
	}

	sort.Slice(ranked, func(i, j int) bool {
		return ranked[i].Similarity > ranked[j].Similarity
	})

	if len(ranked) > p {
		ranked = ranked[:p]
	}
	return ranked, nil
}
