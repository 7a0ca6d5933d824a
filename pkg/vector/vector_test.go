package vector

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func TestEuclideanDistance(t *testing.T) {
	tests := []struct {
		name     string
		a, b     []float64
		expected float64
	}{
		{"identical", []float64{0, 0}, []float64{0, 0}, 0},
		{"unit step", []float64{0, 0}, []float64{0, 1}, 1},
		{"scenario1 A-C", []float64{0, 0}, []float64{10, 0}, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := New("a", tt.a)
			b := New("b", tt.b)
			got, err := EuclideanDistance(a, b)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !almostEqual(got, tt.expected) {
				t.Errorf("EuclideanDistance = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestEuclideanDistanceDimensionMismatch(t *testing.T) {
	a := New("a", []float64{0, 0})
	b := New("b", []float64{0, 0, 0})
	if _, err := EuclideanDistance(a, b); err == nil {
		t.Fatal("expected DimensionMismatchError, got nil")
	}
}

func TestCosineDistanceOpposite(t *testing.T) {
	a := New("a", []float64{1, 0})
	b := New("b", []float64{-1, 0})
	got, err := CosineDistance(a, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !almostEqual(got, 2) {
		t.Errorf("CosineDistance = %v, want 2", got)
	}
}

func TestCosineDistanceOrthogonal(t *testing.T) {
	a := New("a", []float64{1, 0})
	b := New("b", []float64{0, 1})
	got, err := CosineDistance(a, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !almostEqual(got, 1) {
		t.Errorf("CosineDistance = %v, want 1", got)
	}
}

func TestCosineDistanceZeroNorm(t *testing.T) {
	a := New("a", []float64{0, 0})
	b := New("b", []float64{1, 0})
	got, err := CosineDistance(a, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !math.IsInf(got, 1) {
		t.Errorf("CosineDistance with zero-norm vector = %v, want +Inf", got)
	}
}

func TestAssignUnassign(t *testing.T) {
	v := New("a", []float64{1, 2})
	if v.Cluster() != -1 || v.DistFromCentroid() != 0 {
		t.Fatalf("new vector should be unassigned")
	}
	v.Assign(2, 3.5)
	if v.Cluster() != 2 || v.DistFromCentroid() != 3.5 {
		t.Fatalf("Assign did not mutate cluster slot")
	}
	v.Unassign()
	if v.Cluster() != -1 || v.DistFromCentroid() != 0 {
		t.Fatalf("Unassign did not reset to -1/0")
	}
}

func TestAddIntoDivBy(t *testing.T) {
	acc := Zero("acc", 2)
	acc.AddInto(New("a", []float64{2, 4}))
	acc.AddInto(New("b", []float64{4, 8}))
	acc.DivBy(2)
	if !almostEqual(acc.Dims()[0], 3) || !almostEqual(acc.Dims()[1], 6) {
		t.Errorf("mean accumulation = %v, want [3 6]", acc.Dims())
	}

	// div by zero is a no-op
	before := append([]float64(nil), acc.Dims()...)
	acc.DivBy(0)
	if !almostEqual(acc.Dims()[0], before[0]) || !almostEqual(acc.Dims()[1], before[1]) {
		t.Errorf("DivBy(0) mutated dims: %v", acc.Dims())
	}
}

func TestInnerProductSeed(t *testing.T) {
	a := New("a", []float64{1, 2, 3})
	b := New("b", []float64{4, 5, 6})
	got, err := InnerProduct(a, b, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := 10.0 + 1*4 + 2*5 + 3*6
	if !almostEqual(got, want) {
		t.Errorf("InnerProduct = %v, want %v", got, want)
	}
}
