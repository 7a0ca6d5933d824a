package hashgen

import (
	"math/rand"

	"github.com/therealutkarshpriyadarshi/clusterdb/pkg/vector"
)

// CosineH is the base Cosine-LSH hash: h(v) = 1 if r.v >= 0 else 0, for one
// normal-distributed random vector r.
//
// Grounded in original_source/lib/generators/cosine_h_gen.hpp.
type CosineH struct {
	r *vector.Vector
}

func NewCosineH(dimNum int, rng *rand.Rand) *CosineH {
	dims := make([]float64, dimNum)
	for i := range dims {
		dims[i] = rng.NormFloat64()
	}
	return &CosineH{r: vector.New("r", dims)}
}

func (g *CosineH) Generate(v *vector.Vector) int {
	inner, err := vector.InnerProduct(g.r, v, 0)
	if err != nil {
		panic(err)
	}
	if inner >= 0 {
		return 1
	}
	return 0
}

func (g *CosineH) HasDetailed() bool                { return false }
func (g *CosineH) DetailedCodes(id string) []int { return nil }
