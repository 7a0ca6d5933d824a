package hashgen

import "github.com/therealutkarshpriyadarshi/clusterdb/pkg/vector"

// Hypercube concatenates k one-bit sub-generators (EuclideanF under the
// Euclidean metric, CosineH under Cosine) into a k-bit code. The index
// built from it has exactly 2^k buckets.
//
// Grounded in original_source/lib/generators/hypercube_gen.hpp.
type Hypercube struct {
	bits []Generator
}

// NewHypercube takes ownership of the bit generators (each of which must
// produce 0 or 1).
func NewHypercube(bits []Generator) *Hypercube {
	return &Hypercube{bits: bits}
}

func (g *Hypercube) Generate(v *vector.Vector) int {
	code := 0
	for _, b := range g.bits {
		code = code<<1 + b.Generate(v)
	}
	return code
}

func (g *Hypercube) HasDetailed() bool                { return false }
func (g *Hypercube) DetailedCodes(id string) []int { return nil }
