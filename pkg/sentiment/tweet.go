package sentiment

import "math"

// sentimentAlpha is the smoothing constant in the score formula below; the
// source hardcodes it to 15 and the spec carries no reason to change it.
const sentimentAlpha = 15

// Tweet holds the essential fields extracted from a raw tweet for
// recommendation purposes: the source never needs the tweet's words again
// once its score is computed.
type Tweet struct {
	ID             string
	UserID         string
	CryptoIndexes  []int
	SentimentScore float64
}

// NewTweet scores words[2:] (words[0] is the user id, words[1] is the tweet
// id) against lexicon, accumulating every matched word's score; unmatched
// words are checked against queryCrypto's variations and recorded as
// cryptocurrency mentions by index. The final score is
// total / sqrt(total^2 + alpha), which keeps it in (-1, 1) regardless of how
// many lexicon words a tweet contains.
func NewTweet(words []string, lexicon Lexicon, queryCrypto [][]string) *Tweet {
	t := &Tweet{
		UserID: words[0],
		ID:     words[1],
	}

	seen := make(map[int]struct{})
	var total float64

	for _, word := range words[2:] {
		if score, ok := lexicon[word]; ok {
			total += score
			continue
		}

		for coinIndex, variations := range queryCrypto {
			for _, variation := range variations {
				if word == variation {
					seen[coinIndex] = struct{}{}
				}
			}
		}
	}

	for idx := range seen {
		t.CryptoIndexes = append(t.CryptoIndexes, idx)
	}

	t.SentimentScore = total / math.Sqrt(total*total+sentimentAlpha)
	return t
}
