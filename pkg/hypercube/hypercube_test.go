package hypercube

import (
	"sort"
	"testing"
)

func TestHammingNeighboursDistanceOneFromCode5(t *testing.T) {
	got := HammingNeighbours(5, 1, 0, 3)
	want := []int{4, 7, 1} // 101 -> flip bit0=100(4), bit1=111(7), bit2=001(1)

	gotSorted := append([]int(nil), got...)
	wantSorted := append([]int(nil), want...)
	sort.Ints(gotSorted)
	sort.Ints(wantSorted)

	if len(gotSorted) != len(wantSorted) {
		t.Fatalf("HammingNeighbours(5,1,0,3) = %v, want set %v", got, want)
	}
	for i := range gotSorted {
		if gotSorted[i] != wantSorted[i] {
			t.Fatalf("HammingNeighbours(5,1,0,3) = %v, want set %v", got, want)
		}
	}
}

func TestHammingNeighboursDistanceTwo(t *testing.T) {
	// From a 3-bit cube, distance-2 neighbours of 0 (000) are 011,101,110.
	got := HammingNeighbours(0, 2, 0, 3)
	want := map[int]bool{3: true, 5: true, 6: true}
	if len(got) != 3 {
		t.Fatalf("HammingNeighbours(0,2,0,3) = %v, want 3 elements", got)
	}
	for _, n := range got {
		if !want[n] {
			t.Errorf("unexpected neighbour %d at distance 2 from 0", n)
		}
	}
}

func TestHammingNeighboursBeyondBitsIsEmpty(t *testing.T) {
	got := HammingNeighbours(0, 4, 0, 3)
	if len(got) != 0 {
		t.Errorf("HammingNeighbours with dist > bits = %v, want empty", got)
	}
}
