package hashgen

import (
	"math/rand"

	"github.com/therealutkarshpriyadarshi/clusterdb/pkg/vector"
)

// euclideanPhiModulus is 2^32 - 5, the prime modulus from
// original_source/lib/generators/euclidean_phi_gen.hpp.
const euclideanPhiModulus = int64(1<<32) - 5

// EuclideanPhi amplifies k independent EuclideanH hashes into one code:
// phi(v) = mod(sum(r_i * h_i(v)), M). It retains the k sub-hashes as the
// "detailed hash" for v's id, so the bucketed index can filter a bucket down
// to vectors whose sub-codes all match before returning a candidate.
type EuclideanPhi struct {
	h   []*EuclideanH
	r   []int64
	det map[string][]int
}

// NewEuclideanPhi draws k EuclideanH instances (width w, dimNum dims) and k
// integer coefficients uniform in [0,100] from rng.
func NewEuclideanPhi(k, dimNum int, w float64, rng *rand.Rand) *EuclideanPhi {
	g := &EuclideanPhi{
		h:   make([]*EuclideanH, k),
		r:   make([]int64, k),
		det: make(map[string][]int),
	}
	for i := 0; i < k; i++ {
		g.h[i] = NewEuclideanH(dimNum, w, rng)
		g.r[i] = int64(rng.Intn(101))
	}
	return g
}

func (g *EuclideanPhi) Generate(v *vector.Vector) int {
	detailed := make([]int, len(g.h))
	var total int64
	for i, h := range g.h {
		hi := h.Generate(v)
		detailed[i] = hi
		total += Mod64(int64(hi)*g.r[i], euclideanPhiModulus)
	}
	g.det[v.ID()] = detailed
	return int(Mod64(total, euclideanPhiModulus))
}

func (g *EuclideanPhi) HasDetailed() bool { return true }

func (g *EuclideanPhi) DetailedCodes(id string) []int {
	return g.det[id]
}

// Mod64 is Mod for int64, used where the prime modulus 2^32-5 overflows int32.
func Mod64(x, n int64) int64 {
	r := x % n
	if r < 0 {
		r += n
	}
	return r
}
