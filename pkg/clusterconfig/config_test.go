package clusterconfig

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultMatchesDocumentedValues(t *testing.T) {
	cfg := Default()
	if cfg.NumberOfHashFunctions != 4 {
		t.Errorf("NumberOfHashFunctions = %d, want 4", cfg.NumberOfHashFunctions)
	}
	if cfg.NumberOfHashTables != 5 {
		t.Errorf("NumberOfHashTables = %d, want 5", cfg.NumberOfHashTables)
	}
	if cfg.LSHBucketDiv != 4 {
		t.Errorf("LSHBucketDiv = %d, want 4", cfg.LSHBucketDiv)
	}
	if cfg.EuclideanHW != 0.01 {
		t.Errorf("EuclideanHW = %v, want 0.01", cfg.EuclideanHW)
	}
	if cfg.MaxAlgoIterations != 30 {
		t.Errorf("MaxAlgoIterations = %d, want 30", cfg.MaxAlgoIterations)
	}
	if cfg.MinDistKMeans != 0.05 {
		t.Errorf("MinDistKMeans = %v, want 0.05", cfg.MinDistKMeans)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cluster.conf")
	content := "number_of_clusters 5\nnumber_of_hash_tables 8\nunused_key ignored\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.NumberOfClusters != 5 {
		t.Errorf("NumberOfClusters = %d, want 5", cfg.NumberOfClusters)
	}
	if cfg.NumberOfHashTables != 8 {
		t.Errorf("NumberOfHashTables = %d, want 8", cfg.NumberOfHashTables)
	}
	// untouched keys keep their defaults
	if cfg.LSHBucketDiv != 4 {
		t.Errorf("LSHBucketDiv = %d, want unchanged default 4", cfg.LSHBucketDiv)
	}
}

func TestLoadMissingFileReturnsError(t *testing.T) {
	if _, err := Load("/nonexistent/cluster.conf"); err == nil {
		t.Fatal("Load on missing file returned nil error")
	}
}
