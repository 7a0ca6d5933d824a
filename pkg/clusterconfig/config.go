// Package clusterconfig reads the flat "key value" configuration file that
// drives a single clustering run (hash-function width, bucket counts,
// iteration caps). This is deliberately separate from pkg/config, which
// configures the optional long-running service (host, port, TLS, auth) —
// the two have no knobs in common.
//
// Grounded in original_source/main.cpp's get_config and
// lib/in_out/arg_parser.{h,cpp}.
package clusterconfig

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds every recognised key from spec.md §6's configuration table.
// Zero-value fields are filled by Default before a file is applied.
type Config struct {
	NumberOfClusters     int
	NumberOfHashFunctions int
	NumberOfHashTables   int
	LSHBucketDiv         int
	EuclideanHW          float64
	CubeProbes           int
	CubeRangeC           int
	MaxAlgoIterations    int
	MinDistKMeans        float64
	CSVDelimiter         byte
}

// Default returns the documented defaults. NumberOfClusters has no default
// and is left at 0 — the caller (cmd/clusterctl) must prompt for it if the
// file doesn't set it.
func Default() Config {
	return Config{
		NumberOfHashFunctions: 4,
		NumberOfHashTables:    5,
		LSHBucketDiv:          4,
		EuclideanHW:           0.01,
		CubeProbes:            0,
		CubeRangeC:            1,
		MaxAlgoIterations:     30,
		MinDistKMeans:         0.05,
		CSVDelimiter:          ' ',
	}
}

// Load reads filename as a sequence of "key value" lines (whitespace
// separated, like the original's flag-style config), applying any
// recognised key on top of Default. Unrecognised keys are ignored, matching
// the original's flagExists-gated parsing.
func Load(filename string) (Config, error) {
	cfg := Default()

	f, err := os.Open(filename)
	if err != nil {
		return cfg, fmt.Errorf("clusterconfig: open %s: %w", filename, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		key, value := fields[0], fields[1]

		if err := applyKey(&cfg, key, value); err != nil {
			return cfg, fmt.Errorf("clusterconfig: key %q: %w", key, err)
		}
	}

	return cfg, scanner.Err()
}

func applyKey(cfg *Config, key, value string) error {
	switch key {
	case "number_of_clusters":
		n, err := strconv.Atoi(value)
		if err != nil {
			return err
		}
		cfg.NumberOfClusters = n
	case "number_of_hash_functions":
		n, err := strconv.Atoi(value)
		if err != nil {
			return err
		}
		cfg.NumberOfHashFunctions = n
	case "number_of_hash_tables":
		n, err := strconv.Atoi(value)
		if err != nil {
			return err
		}
		cfg.NumberOfHashTables = n
	case "lsh_bucket_div":
		n, err := strconv.Atoi(value)
		if err != nil {
			return err
		}
		cfg.LSHBucketDiv = n
	case "euclidean_h_w":
		d, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return err
		}
		cfg.EuclideanHW = d
	case "cube_probes":
		n, err := strconv.Atoi(value)
		if err != nil {
			return err
		}
		cfg.CubeProbes = n
	case "cube_range_c":
		n, err := strconv.Atoi(value)
		if err != nil {
			return err
		}
		cfg.CubeRangeC = n
	case "max_algo_iterations":
		n, err := strconv.Atoi(value)
		if err != nil {
			return err
		}
		cfg.MaxAlgoIterations = n
	case "min_dist_kmeans":
		d, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return err
		}
		cfg.MinDistKMeans = d
	case "csv_delimiter":
		if len(value) == 0 {
			return fmt.Errorf("empty delimiter")
		}
		cfg.CSVDelimiter = value[0]
	}
	return nil
}
