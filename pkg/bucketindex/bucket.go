// Package bucketindex implements the Bucketed Index ("Hashtable" in the
// original source): a fixed array of buckets keyed by hash-mod-M, each
// holding non-owning references to the vectors that hash into it.
//
// Grounded in original_source/lib/data_structures/{vector_bucket,
// cust_hashtable}.hpp. Unlike pkg/hnsw's Node (which guards neighbor lists
// with a sync.RWMutex because HNSW serves concurrent inserts/searches), a
// Bucket here needs no locking: spec.md §5 is explicit that a clustering run
// is single-threaded and synchronous, so buckets are built once and only
// ever read afterward.
package bucketindex

import "github.com/therealutkarshpriyadarshi/clusterdb/pkg/vector"

// Bucket holds an append-only, ordered multiset of vector references.
type Bucket struct {
	vectors []*vector.Vector
}

func (b *Bucket) insert(v *vector.Vector) {
	b.vectors = append(b.vectors, v)
}

// Vectors returns the bucket's contents. Callers must not mutate the
// returned slice.
func (b *Bucket) Vectors() []*vector.Vector {
	return b.vectors
}
