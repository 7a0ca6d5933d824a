package cluster

import (
	"testing"

	"github.com/therealutkarshpriyadarshi/clusterdb/pkg/vector"
)

func TestKMeansUpdateRecomputesMeanAndConverges(t *testing.T) {
	centroids := []*vector.Vector{
		vector.New("c0", []float64{0, 0}),
		vector.New("c1", []float64{10, 10}),
	}
	input := []*vector.Vector{
		vector.New("a", []float64{0, 0}),
		vector.New("b", []float64{2, 0}),
		vector.New("c", []float64{10, 10}),
		vector.New("d", []float64{12, 10}),
	}
	input[0].Assign(0, 0)
	input[1].Assign(0, 0)
	input[2].Assign(1, 0)
	input[3].Assign(1, 0)

	newCentroids, cont, err := KMeansUpdate(input, centroids, vector.Euclidean, 0.05)
	if err != nil {
		t.Fatalf("KMeansUpdate: %v", err)
	}
	if !cont {
		t.Fatalf("KMeansUpdate reported convergence on the first move, want continue")
	}
	if newCentroids[0].Dims()[0] != 1 || newCentroids[0].Dims()[1] != 0 {
		t.Errorf("cluster 0 mean = %v, want [1 0]", newCentroids[0].Dims())
	}
	if newCentroids[1].Dims()[0] != 11 || newCentroids[1].Dims()[1] != 10 {
		t.Errorf("cluster 1 mean = %v, want [11 10]", newCentroids[1].Dims())
	}

	_, cont2, err := KMeansUpdate(input, newCentroids, vector.Euclidean, 0.05)
	if err != nil {
		t.Fatalf("KMeansUpdate (second call): %v", err)
	}
	if cont2 {
		t.Error("second KMeansUpdate call reported movement, want convergence once the means are recomputed")
	}
}

func TestKMeansUpdateEmptyClusterYieldsZeroVector(t *testing.T) {
	centroids := []*vector.Vector{
		vector.New("c0", []float64{5, 5}),
		vector.New("c1", []float64{-5, -5}),
	}
	input := []*vector.Vector{
		vector.New("a", []float64{1, 1}),
	}
	input[0].Assign(0, 0)

	newCentroids, _, err := KMeansUpdate(input, centroids, vector.Euclidean, 0.05)
	if err != nil {
		t.Fatalf("KMeansUpdate: %v", err)
	}
	if newCentroids[1].Dims()[0] != 0 || newCentroids[1].Dims()[1] != 0 {
		t.Errorf("empty cluster centroid = %v, want [0 0]", newCentroids[1].Dims())
	}
}

func TestPAMUpdateSwapsToMedoid(t *testing.T) {
	centroids := []*vector.Vector{
		vector.New("c0", []float64{100, 100}), // deliberately far from its own cluster
	}
	input := []*vector.Vector{
		vector.New("a", []float64{0, 0}),
		vector.New("b", []float64{1, 0}),
		vector.New("c", []float64{0, 1}),
	}
	for _, v := range input {
		v.Assign(0, 0)
	}

	newCentroids, swapped, err := PAMUpdate(input, centroids, vector.Euclidean)
	if err != nil {
		t.Fatalf("PAMUpdate: %v", err)
	}
	if !swapped {
		t.Fatal("PAMUpdate did not report a swap")
	}
	if newCentroids[0].ID() == "c0" {
		t.Error("PAMUpdate left the far-away centroid in place")
	}
}

func TestPAMUpdateNoSwapWhenAlreadyMedoid(t *testing.T) {
	a := vector.New("a", []float64{0, 0})
	b := vector.New("b", []float64{1, 0})
	c := vector.New("c", []float64{-1, 0})
	a.Assign(0, 0)
	b.Assign(0, 0)
	c.Assign(0, 0)

	centroids := []*vector.Vector{a}
	input := []*vector.Vector{a, b, c}

	_, swapped, err := PAMUpdate(input, centroids, vector.Euclidean)
	if err != nil {
		t.Fatalf("PAMUpdate: %v", err)
	}
	if swapped {
		t.Error("PAMUpdate swapped away from the already-optimal medoid")
	}
}
