package hashgen

import (
	"math/rand"

	"github.com/therealutkarshpriyadarshi/clusterdb/pkg/vector"
)

// CosineG concatenates k CosineH one-bit outputs into a k-bit integer.
//
// Grounded in original_source/lib/generators/cosine_g_gen.hpp. The k-bit
// code fully determines the bucket, so (like CosineH) it carries no
// detailed hash.
type CosineG struct {
	h []*CosineH
}

func NewCosineG(k, dimNum int, rng *rand.Rand) *CosineG {
	g := &CosineG{h: make([]*CosineH, k)}
	for i := range g.h {
		g.h[i] = NewCosineH(dimNum, rng)
	}
	return g
}

func (g *CosineG) Generate(v *vector.Vector) int {
	code := 0
	for _, h := range g.h {
		code = code<<1 + h.Generate(v)
	}
	return code
}

func (g *CosineG) HasDetailed() bool                { return false }
func (g *CosineG) DetailedCodes(id string) []int { return nil }
