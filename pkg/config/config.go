// Package config holds the configuration for the optional long-running
// clusterd service (gRPC + REST submission of clustering runs). It is
// deliberately separate from pkg/clusterconfig, which configures a single
// run's algorithm knobs.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all clusterd configuration.
type Config struct {
	Server  ServerConfig
	Defaults RunDefaultsConfig
	Cache   ReportCacheConfig
	Storage StorageConfig
	REST    RESTConfig
}

// ServerConfig holds gRPC server configuration.
type ServerConfig struct {
	Host            string        // Server host (default: "0.0.0.0")
	Port            int           // Server port (default: 50051)
	MaxConnections  int           // Max concurrent connections
	RequestTimeout  time.Duration // Request timeout
	ShutdownTimeout time.Duration // Graceful shutdown timeout
	EnableTLS       bool          // Enable TLS
	CertFile        string        // TLS certificate file
	KeyFile         string        // TLS key file
}

// Address returns the server address (host:port).
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// RunDefaultsConfig seeds clusterconfig.Config for runs submitted without
// their own overrides.
type RunDefaultsConfig struct {
	NumberOfHashFunctions int
	NumberOfHashTables    int
	LSHBucketDiv          int
	EuclideanHW           float64
	MaxAlgoIterations     int
	MinDistKMeans         float64
}

// ReportCacheConfig bounds the in-memory cache of recently completed run
// reports that the REST/gRPC surfaces serve back to clients.
type ReportCacheConfig struct {
	Enabled  bool
	Capacity int
	TTL      time.Duration
}

// StorageConfig holds a data directory and a concurrent-run limit. Validate
// requires both to be set; the server writes nothing to DataDir and does not
// cap concurrent runs by MaxConcurrentRuns.
type StorageConfig struct {
	DataDir       string
	MaxConcurrentRuns int
}

// RESTConfig mirrors the teacher's REST surface configuration, retargeted to
// run-submission and run-report endpoints.
type RESTConfig struct {
	Enabled bool
	Host    string
	Port    int

	CORSEnabled bool
	CORSOrigins []string

	AuthEnabled bool
	JWTSecret   string
	PublicPaths []string
	AdminPaths  []string

	RateLimitEnabled bool
	RateLimitPerSec  float64
	RateLimitBurst   int
	RateLimitPerIP   bool
	RateLimitPerUser bool
	RateLimitGlobal  int
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            50051,
			MaxConnections:  1000,
			RequestTimeout:  30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			EnableTLS:       false,
		},
		Defaults: RunDefaultsConfig{
			NumberOfHashFunctions: 4,
			NumberOfHashTables:    5,
			LSHBucketDiv:          4,
			EuclideanHW:           0.01,
			MaxAlgoIterations:     30,
			MinDistKMeans:         0.05,
		},
		Cache: ReportCacheConfig{
			Enabled:  true,
			Capacity: 1000,
			TTL:      30 * time.Minute,
		},
		Storage: StorageConfig{
			DataDir:           "./data",
			MaxConcurrentRuns: 4,
		},
		REST: RESTConfig{
			Enabled:          true,
			Host:             "0.0.0.0",
			Port:             8080,
			RateLimitEnabled: true,
			RateLimitPerSec:  10,
			RateLimitBurst:   20,
			RateLimitPerIP:   true,
			PublicPaths:      []string{"/v1/health"},
		},
	}
}

// LoadFromEnv loads configuration from environment variables.
func LoadFromEnv() *Config {
	cfg := Default()

	if host := os.Getenv("CLUSTERD_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if port := os.Getenv("CLUSTERD_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.Server.Port = p
		}
	}
	if maxConn := os.Getenv("CLUSTERD_MAX_CONNECTIONS"); maxConn != "" {
		if mc, err := strconv.Atoi(maxConn); err == nil {
			cfg.Server.MaxConnections = mc
		}
	}
	if timeout := os.Getenv("CLUSTERD_REQUEST_TIMEOUT"); timeout != "" {
		if t, err := time.ParseDuration(timeout); err == nil {
			cfg.Server.RequestTimeout = t
		}
	}
	if enableTLS := os.Getenv("CLUSTERD_ENABLE_TLS"); enableTLS == "true" {
		cfg.Server.EnableTLS = true
		cfg.Server.CertFile = os.Getenv("CLUSTERD_TLS_CERT")
		cfg.Server.KeyFile = os.Getenv("CLUSTERD_TLS_KEY")
	}

	if k := os.Getenv("CLUSTERD_NUMBER_OF_HASH_FUNCTIONS"); k != "" {
		if v, err := strconv.Atoi(k); err == nil {
			cfg.Defaults.NumberOfHashFunctions = v
		}
	}
	if l := os.Getenv("CLUSTERD_NUMBER_OF_HASH_TABLES"); l != "" {
		if v, err := strconv.Atoi(l); err == nil {
			cfg.Defaults.NumberOfHashTables = v
		}
	}
	if iters := os.Getenv("CLUSTERD_MAX_ALGO_ITERATIONS"); iters != "" {
		if v, err := strconv.Atoi(iters); err == nil {
			cfg.Defaults.MaxAlgoIterations = v
		}
	}

	if cacheEnabled := os.Getenv("CLUSTERD_CACHE_ENABLED"); cacheEnabled == "false" {
		cfg.Cache.Enabled = false
	}
	if capacity := os.Getenv("CLUSTERD_CACHE_CAPACITY"); capacity != "" {
		if c, err := strconv.Atoi(capacity); err == nil {
			cfg.Cache.Capacity = c
		}
	}
	if ttl := os.Getenv("CLUSTERD_CACHE_TTL"); ttl != "" {
		if t, err := time.ParseDuration(ttl); err == nil {
			cfg.Cache.TTL = t
		}
	}

	if dataDir := os.Getenv("CLUSTERD_DATA_DIR"); dataDir != "" {
		cfg.Storage.DataDir = dataDir
	}

	if jwtSecret := os.Getenv("CLUSTERD_JWT_SECRET"); jwtSecret != "" {
		cfg.REST.AuthEnabled = true
		cfg.REST.JWTSecret = jwtSecret
	}

	return cfg
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d (must be 1-65535)", c.Server.Port)
	}
	if c.Server.MaxConnections < 1 {
		return fmt.Errorf("invalid max connections: %d (must be > 0)", c.Server.MaxConnections)
	}
	if c.Server.EnableTLS {
		if c.Server.CertFile == "" || c.Server.KeyFile == "" {
			return fmt.Errorf("TLS enabled but cert or key file not specified")
		}
	}

	if c.Defaults.NumberOfHashFunctions < 1 {
		return fmt.Errorf("invalid number_of_hash_functions default: %d (must be > 0)", c.Defaults.NumberOfHashFunctions)
	}
	if c.Defaults.NumberOfHashTables < 1 {
		return fmt.Errorf("invalid number_of_hash_tables default: %d (must be > 0)", c.Defaults.NumberOfHashTables)
	}
	if c.Defaults.MaxAlgoIterations < 1 {
		return fmt.Errorf("invalid max_algo_iterations default: %d (must be > 0)", c.Defaults.MaxAlgoIterations)
	}

	if c.Cache.Enabled && c.Cache.Capacity < 1 {
		return fmt.Errorf("invalid cache capacity: %d (must be > 0)", c.Cache.Capacity)
	}

	if c.Storage.DataDir == "" {
		return fmt.Errorf("data directory not specified")
	}
	if c.Storage.MaxConcurrentRuns < 1 {
		return fmt.Errorf("invalid max concurrent runs: %d (must be > 0)", c.Storage.MaxConcurrentRuns)
	}

	if c.REST.Enabled && c.REST.AuthEnabled && c.REST.JWTSecret == "" {
		return fmt.Errorf("REST auth enabled but JWT secret not specified")
	}

	return nil
}
