// Package vectorio reads delimited vector files: a fixed number of metadata
// lines followed by one vector per line.
//
// Grounded in original_source/lib/in_out/vector_reader.hpp.
package vectorio

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/therealutkarshpriyadarshi/clusterdb/pkg/vector"
)

// Reader reads vectors from filename, splitting each data line on delimiter
// after skipping a fixed number of metadata lines at the start of the file.
type Reader struct {
	filename  string
	metaLines []string
	vectors   []*vector.Vector
}

// NewReader returns a Reader bound to filename. Nothing is read yet.
func NewReader(filename string) *Reader {
	return &Reader{filename: filename}
}

// Read opens the file, skips startLine-1 metadata lines (stored for
// MetaLine), then parses every remaining line as
// "<id><delimiter><coord_1><delimiter>...<delimiter><coord_d>". Trailing \r
// bytes are stripped before splitting. Coordinates are parsed as float64.
//
// Returns a wrapped *os.PathError on open failure, matching the
// InputOpenFailed error kind.
func (r *Reader) Read(delimiter byte, startLine int) error {
	f, err := os.Open(r.filename)
	if err != nil {
		return fmt.Errorf("vectorio: open %s: %w", r.filename, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	lineNum := 1
	for lineNum < startLine && scanner.Scan() {
		r.metaLines = append(r.metaLines, scanner.Text())
		lineNum++
	}

	sep := string(delimiter)
	for scanner.Scan() {
		line := strings.ReplaceAll(scanner.Text(), "\r", "")
		if line == "" {
			continue
		}

		idx := strings.IndexByte(line, delimiter)
		if idx < 0 {
			return fmt.Errorf("vectorio: line %q has no delimiter %q", line, sep)
		}

		id := line[:idx]
		rest := strings.Split(line[idx+1:], sep)

		dims := make([]float64, 0, len(rest))
		for _, tok := range rest {
			if tok == "" {
				continue
			}
			d, err := strconv.ParseFloat(tok, 64)
			if err != nil {
				return fmt.Errorf("vectorio: parsing coordinate %q for vector %q: %w", tok, id, err)
			}
			dims = append(dims, d)
		}

		r.vectors = append(r.vectors, vector.New(id, dims))
	}

	return scanner.Err()
}

// Vectors returns every vector read so far.
func (r *Reader) Vectors() []*vector.Vector { return r.vectors }

// MetaLine returns the i-th metadata line skipped during Read, or "" if out
// of range.
func (r *Reader) MetaLine(i int) string {
	if i < 0 || i >= len(r.metaLines) {
		return ""
	}
	return r.metaLines[i]
}
