// Command clusterd runs the optional long-running clustering service: a
// gRPC ClusterRunner server plus an HTTP REST proxy in front of it.
//
// Grounded in the startup/signal-handling shape of
// _examples/therealutkarshpriyadarshi-vector's cmd/server/main.go,
// retargeted from a vector-database banner/HNSW startup report to a
// clustering-run service.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	grpcserver "github.com/therealutkarshpriyadarshi/clusterdb/pkg/api/grpc"
	"github.com/therealutkarshpriyadarshi/clusterdb/pkg/api/rest"
	"github.com/therealutkarshpriyadarshi/clusterdb/pkg/api/rest/middleware"
	"github.com/therealutkarshpriyadarshi/clusterdb/pkg/config"
	"github.com/therealutkarshpriyadarshi/clusterdb/pkg/observability"
)

const version = "1.0.0"

func main() {
	var (
		showVersion = flag.Bool("version", false, "show version and exit")
		host        = flag.String("host", "", "gRPC server host (overrides config/env)")
		port        = flag.Int("port", 0, "gRPC server port (overrides config/env)")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("clusterd v%s\n", version)
		os.Exit(0)
	}

	log := observability.NewLogger(observability.INFO, os.Stdout)
	metrics := observability.NewMetrics()

	cfg := config.LoadFromEnv()
	if *host != "" {
		cfg.Server.Host = *host
	}
	if *port > 0 {
		cfg.Server.Port = *port
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid configuration", map[string]interface{}{"error": err.Error()})
	}

	grpcServer, err := grpcserver.NewServer(cfg, metrics, log)
	if err != nil {
		log.Fatal("failed to create gRPC server", map[string]interface{}{"error": err.Error()})
	}

	errChan := make(chan error, 2)
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Info("starting clusterd gRPC server")
		if err := grpcServer.Start(); err != nil {
			errChan <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	var restServer *rest.Server
	if cfg.REST.Enabled {
		wg.Add(1)
		go func() {
			defer wg.Done()
			time.Sleep(500 * time.Millisecond)

			restConfig := rest.Config{
				Host:        cfg.REST.Host,
				Port:        cfg.REST.Port,
				GRPCAddress: cfg.Server.Address(),
				CORSEnabled: cfg.REST.CORSEnabled,
				CORSOrigins: cfg.REST.CORSOrigins,
				Auth: middleware.AuthConfig{
					Enabled:     cfg.REST.AuthEnabled,
					JWTSecret:   cfg.REST.JWTSecret,
					PublicPaths: cfg.REST.PublicPaths,
					AdminPaths:  cfg.REST.AdminPaths,
				},
				RateLimit: middleware.RateLimitConfig{
					Enabled:        cfg.REST.RateLimitEnabled,
					RequestsPerSec: cfg.REST.RateLimitPerSec,
					Burst:          cfg.REST.RateLimitBurst,
					PerIP:          cfg.REST.RateLimitPerIP,
					PerUser:        cfg.REST.RateLimitPerUser,
					GlobalLimit:    cfg.REST.RateLimitGlobal > 0,
				},
			}

			var err error
			restServer, err = rest.NewServer(restConfig, log)
			if err != nil {
				errChan <- fmt.Errorf("failed to create REST server: %w", err)
				return
			}

			log.Info("starting clusterd REST server")
			if err := restServer.Start(); err != nil {
				errChan <- fmt.Errorf("REST server error: %w", err)
			}
		}()
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	log.Info("clusterd ready", map[string]interface{}{
		"grpc_address": cfg.Server.Address(),
		"rest_enabled": cfg.REST.Enabled,
	})

	select {
	case sig := <-sigChan:
		log.Info("received signal", map[string]interface{}{"signal": sig.String()})
	case err := <-errChan:
		log.Error("server error", map[string]interface{}{"error": err.Error()})
	}

	log.Info("shutting down gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if restServer != nil {
		if err := restServer.Stop(ctx); err != nil {
			log.Error("error stopping REST server", map[string]interface{}{"error": err.Error()})
		}
	}
	if err := grpcServer.Stop(); err != nil {
		log.Error("error stopping gRPC server", map[string]interface{}{"error": err.Error()})
	}

	wg.Wait()
	log.Info("clusterd stopped")
}
