// Package sentiment scores tweets against a word-to-score lexicon and
// extracts the cryptocurrency mentions a tweet carries, for the
// recommendation collaborator built on top of pkg/cluster.
//
// Grounded in original_source/lib/utils.cpp's file_to_lexicon and
// lib/data_structures/tweet.{h,cpp}.
package sentiment

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Lexicon maps a word to its sentiment contribution.
type Lexicon map[string]float64

// LoadLexicon reads filename as delimiter-separated "word score" lines.
func LoadLexicon(filename string, delimiter byte) (Lexicon, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("sentiment: open %s: %w", filename, err)
	}
	defer f.Close()

	lexicon := make(Lexicon)
	sep := string(delimiter)

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		fields := strings.Split(line, sep)
		if len(fields) < 2 {
			continue
		}
		score, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, fmt.Errorf("sentiment: parsing score for %q: %w", fields[0], err)
		}
		lexicon[fields[0]] = score
	}

	return lexicon, scanner.Err()
}
