package hashgen

import (
	"math/rand"
	"testing"

	"github.com/therealutkarshpriyadarshi/clusterdb/pkg/vector"
)

func TestModAlwaysInRange(t *testing.T) {
	cases := []struct{ x, n int }{
		{-7, 3}, {7, 3}, {0, 5}, {-1, 1}, {10, 10},
	}
	for _, c := range cases {
		got := Mod(c.x, c.n)
		if got < 0 || got >= c.n {
			t.Errorf("Mod(%d, %d) = %d, want value in [0, %d)", c.x, c.n, got, c.n)
		}
	}
}

func TestCosineHIsBinary(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	g := NewCosineH(4, rng)
	v := vector.New("v", []float64{1, 2, 3, 4})
	got := g.Generate(v)
	if got != 0 && got != 1 {
		t.Errorf("CosineH.Generate = %d, want 0 or 1", got)
	}
}

func TestCosineGConcatenatesBits(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	g := NewCosineG(4, 4, rng)
	v := vector.New("v", []float64{1, 2, 3, 4})
	code := g.Generate(v)
	if code < 0 || code >= 1<<4 {
		t.Errorf("CosineG.Generate = %d, want in [0, 16)", code)
	}
}

func TestEuclideanPhiHasDetailedHash(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	g := NewEuclideanPhi(3, 2, 0.5, rng)
	v := vector.New("v1", []float64{1, 2})

	if !g.HasDetailed() {
		t.Fatal("EuclideanPhi must report HasDetailed() == true")
	}

	g.Generate(v)
	det := g.DetailedCodes("v1")
	if len(det) != 3 {
		t.Fatalf("detailed hash length = %d, want 3", len(det))
	}
}

func TestEuclideanHNoDetailedHash(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	g := NewEuclideanH(2, 0.5, rng)
	if g.HasDetailed() {
		t.Fatal("EuclideanH must report HasDetailed() == false")
	}
	if g.DetailedCodes("anything") != nil {
		t.Fatal("EuclideanH.DetailedCodes must be nil")
	}
}

func TestEuclideanFMemoizesByHashValue(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	g := NewEuclideanF(2, 1.0, rng)

	v := vector.New("v", []float64{1, 1})
	first := g.Generate(v)
	second := g.Generate(v)
	if first != second {
		t.Errorf("EuclideanF.Generate not stable across repeated calls: %d != %d", first, second)
	}
	if first != 0 && first != 1 {
		t.Errorf("EuclideanF.Generate = %d, want 0 or 1", first)
	}
}

func TestHypercubeConcatenatesSubBits(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	bits := []Generator{
		NewCosineH(2, rng),
		NewCosineH(2, rng),
		NewCosineH(2, rng),
	}
	h := NewHypercube(bits)
	v := vector.New("v", []float64{1, -1})
	code := h.Generate(v)
	if code < 0 || code >= 1<<3 {
		t.Errorf("Hypercube.Generate = %d, want in [0, 8)", code)
	}
}
