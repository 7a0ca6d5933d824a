// Package recommend builds per-user score vectors out of scored tweets and
// ranks candidate neighbours by cosine similarity.
//
// Grounded in original_source/lib/crypto_rec.hpp's tweets_to_user_vectors
// and get_P_closest.
package recommend

import (
	"github.com/therealutkarshpriyadarshi/clusterdb/pkg/sentiment"
	"github.com/therealutkarshpriyadarshi/clusterdb/pkg/vector"
)

// UserVectorsFromTweets folds tweets into one vector per user: dimension i
// accumulates the positive sentiment score of every tweet mentioning
// cryptocurrency i, and every dimension the user never mentioned is filled
// with the mean of the dimensions they did mention. Users whose vector is
// entirely zero (no positive mentions at all) are dropped, matching the
// source's "useless" filter.
func UserVectorsFromTweets(tweets []*sentiment.Tweet, cryptoNum int) []*vector.Vector {
	type accum struct {
		dims  []float64
		known []bool
	}
	users := make(map[string]*accum)
	order := make([]string, 0)

	for _, tw := range tweets {
		a, ok := users[tw.UserID]
		if !ok {
			a = &accum{dims: make([]float64, cryptoNum), known: make([]bool, cryptoNum)}
			users[tw.UserID] = a
			order = append(order, tw.UserID)
		}

		for _, idx := range tw.CryptoIndexes {
			if tw.SentimentScore > 0 {
				a.dims[idx] += tw.SentimentScore
			}
			a.known[idx] = true
		}
	}

	var result []*vector.Vector
	for _, userID := range order {
		a := users[userID]

		var sum float64
		knownCount := 0
		var unknown []int
		useless := true

		for i := 0; i < cryptoNum; i++ {
			if !a.known[i] {
				unknown = append(unknown, i)
			} else {
				sum += a.dims[i]
				knownCount++
			}
			if a.dims[i] != 0 {
				useless = false
			}
		}
		if useless {
			continue
		}

		mean := 0.0
		if knownCount > 0 {
			mean = sum / float64(knownCount)
		}
		for _, idx := range unknown {
			a.dims[idx] = mean
		}

		result = append(result, vector.NewWithUnknowns(userID, a.dims, unknown, mean))
	}

	return result
}
