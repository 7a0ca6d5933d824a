// Package hashgen implements the family of polymorphic hash producers used
// by the LSH ensemble and the Hypercube index: EuclideanH, EuclideanPhi,
// EuclideanF, CosineH, CosineG, and Hypercube.
//
// Grounded in original_source/lib/generators/*.hpp. The C++ source expresses
// this as an abstract-class hierarchy; Go has no need for virtual dispatch
// over a closed variant set, so each generator is just a concrete type that
// satisfies the Generator interface.
package hashgen

import "github.com/therealutkarshpriyadarshi/clusterdb/pkg/vector"

// Generator maps a vector to an integer code. Some generators also retain a
// "detailed" sub-code per vector id, used by the bucketed index to filter
// bucket contents by exact sub-code equality before returning a candidate.
type Generator interface {
	Generate(v *vector.Vector) int
	HasDetailed() bool
	// DetailedCodes returns the retained sub-code for id, or nil if this
	// generator has no detailed hash, or the id was never hashed.
	DetailedCodes(id string) []int
}

// Mod is the mathematical modulus used throughout this package and its
// callers: always in [0, n).
func Mod(x, n int) int {
	r := x % n
	if r < 0 {
		r += n
	}
	return r
}
