package recommend

import (
	"testing"

	"github.com/therealutkarshpriyadarshi/clusterdb/pkg/sentiment"
	"github.com/therealutkarshpriyadarshi/clusterdb/pkg/vector"
)

func TestUserVectorsFromTweetsFillsUnknownsWithMean(t *testing.T) {
	tweets := []*sentiment.Tweet{
		{UserID: "u1", ID: "t1", CryptoIndexes: []int{0}, SentimentScore: 4},
		{UserID: "u1", ID: "t2", CryptoIndexes: []int{1}, SentimentScore: 2},
	}

	vecs := UserVectorsFromTweets(tweets, 3)
	if len(vecs) != 1 {
		t.Fatalf("got %d user vectors, want 1", len(vecs))
	}
	v := vecs[0]
	if v.ID() != "u1" {
		t.Fatalf("vector id = %q, want u1", v.ID())
	}
	if v.Dims()[0] != 4 || v.Dims()[1] != 2 {
		t.Errorf("known dims = %v, want [4 2 ?]", v.Dims())
	}
	if v.Dims()[2] != 3 { // mean of 4 and 2
		t.Errorf("unknown dim filled with %v, want mean 3", v.Dims()[2])
	}
	if len(v.UnknownIndexes) != 1 || v.UnknownIndexes[0] != 2 {
		t.Errorf("UnknownIndexes = %v, want [2]", v.UnknownIndexes)
	}
}

func TestUserVectorsFromTweetsDropsUselessUsers(t *testing.T) {
	tweets := []*sentiment.Tweet{
		{UserID: "u1", ID: "t1", CryptoIndexes: []int{0}, SentimentScore: -1}, // never positive, never accumulated
	}
	vecs := UserVectorsFromTweets(tweets, 2)
	if len(vecs) != 0 {
		t.Errorf("got %d vectors, want 0 (user vector is all-zero)", len(vecs))
	}
}

func TestTopClosestOrdersBySimilarityDescending(t *testing.T) {
	user := vector.New("u", []float64{1, 0})
	neighbors := []*vector.Vector{
		vector.New("far", []float64{0, 1}),
		vector.New("same", []float64{1, 0}),
		vector.New("mid", []float64{1, 1}),
	}

	ranked, err := TopClosest(neighbors, user, 2)
	if err != nil {
		t.Fatalf("TopClosest: %v", err)
	}
	if len(ranked) != 2 {
		t.Fatalf("got %d ranked results, want 2", len(ranked))
	}
	if ranked[0].Vector.ID() != "same" {
		t.Errorf("ranked[0] = %s, want same", ranked[0].Vector.ID())
	}
	if ranked[1].Vector.ID() != "mid" {
		t.Errorf("ranked[1] = %s, want mid", ranked[1].Vector.ID())
	}
}
