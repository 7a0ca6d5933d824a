package hashgen

import (
	"math/rand"

	"github.com/therealutkarshpriyadarshi/clusterdb/pkg/vector"
)

// EuclideanF wraps one EuclideanH and maps its integer output to a single
// bit, used as a Hypercube sub-generator under the Euclidean metric.
//
// Grounded in original_source/lib/generators/euclidean_f_gen.hpp: the first
// time a given underlying hash value is seen, a uniform draw from {1,2} is
// taken and the bit is mod(hashValue, draw) — memoized by the hash value (not
// by vector id), so two different vectors landing on the same underlying
// EuclideanH bucket always get the same bit.
type EuclideanF struct {
	h    *EuclideanH
	rng  *rand.Rand
	seen map[int]int
}

func NewEuclideanF(dimNum int, w float64, rng *rand.Rand) *EuclideanF {
	return &EuclideanF{
		h:    NewEuclideanH(dimNum, w, rng),
		rng:  rng,
		seen: make(map[int]int),
	}
}

func (g *EuclideanF) Generate(v *vector.Vector) int {
	hv := g.h.Generate(v)
	if bit, ok := g.seen[hv]; ok {
		return bit
	}
	draw := 1 + g.rng.Intn(2) // uniform in {1, 2}
	bit := Mod(hv, draw)
	g.seen[hv] = bit
	return bit
}

func (g *EuclideanF) HasDetailed() bool                { return false }
func (g *EuclideanF) DetailedCodes(id string) []int { return nil }
