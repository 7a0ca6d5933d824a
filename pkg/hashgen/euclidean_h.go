package hashgen

import (
	"math"
	"math/rand"

	"github.com/therealutkarshpriyadarshi/clusterdb/pkg/vector"
)

// EuclideanH is the base Euclidean-LSH hash: h(v) = floor((a.v + t) / w) for
// one normal-distributed projection vector a and one uniform offset t.
//
// Grounded in original_source/lib/generators/euclidean_h_gen.hpp. It has no
// detailed sub-code of its own; EuclideanPhi is the generator that retains
// one.
type EuclideanH struct {
	a *vector.Vector
	t float64
	w float64
}

// NewEuclideanH draws a ~ N(0,1)^dimNum and t ~ U(0, w) from rng.
func NewEuclideanH(dimNum int, w float64, rng *rand.Rand) *EuclideanH {
	dims := make([]float64, dimNum)
	for i := range dims {
		dims[i] = rng.NormFloat64()
	}
	return &EuclideanH{
		a: vector.New("a", dims),
		t: rng.Float64() * w,
		w: w,
	}
}

func (g *EuclideanH) Generate(v *vector.Vector) int {
	inner, err := vector.InnerProduct(g.a, v, 0)
	if err != nil {
		panic(err)
	}
	return int(math.Floor((inner + g.t) / g.w))
}

func (g *EuclideanH) HasDetailed() bool                { return false }
func (g *EuclideanH) DetailedCodes(id string) []int { return nil }
