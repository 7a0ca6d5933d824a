// Package grpc exposes the clustering orchestrator as a gRPC service,
// grounded in the teacher's pkg/api/grpc/server.go (TLS/keepalive-configured
// grpc.Server, namespace-style component maps, Start/Stop/Wait/Stats shape),
// retargeted from an HNSW vector index per namespace to clustering-run
// submission and a bounded in-memory report cache.
package grpc

import (
	"context"
	"crypto/tls"
	"fmt"
	"math/rand"
	"net"
	"sync"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/keepalive"
	"google.golang.org/grpc/reflection"

	"github.com/therealutkarshpriyadarshi/clusterdb/pkg/api/grpc/proto"
	"github.com/therealutkarshpriyadarshi/clusterdb/pkg/cluster"
	"github.com/therealutkarshpriyadarshi/clusterdb/pkg/config"
	"github.com/therealutkarshpriyadarshi/clusterdb/pkg/observability"
	"github.com/therealutkarshpriyadarshi/clusterdb/pkg/vector"
)

// Server implements proto.ClusterRunnerServer over the clustering
// orchestrator in pkg/cluster.
type Server struct {
	proto.UnimplementedClusterRunnerServer

	cfg       *config.Config
	metrics   *observability.Metrics
	log       *observability.Logger
	startTime time.Time

	grpcServer *grpc.Server
	listener   net.Listener

	shutdownMu sync.Mutex
	isShutdown bool

	cacheMu sync.Mutex
	cache   map[string]*proto.RunReport
	order   []string // FIFO eviction order, oldest first
}

// NewServer validates cfg and constructs a Server ready to Start.
func NewServer(cfg *config.Config, metrics *observability.Metrics, log *observability.Logger) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &Server{
		cfg:       cfg,
		metrics:   metrics,
		log:       log,
		startTime: time.Now(),
		cache:     make(map[string]*proto.RunReport),
	}, nil
}

// SubmitRun decodes the request into vector.Vector inputs and a
// cluster.Config, runs the algorithm triple synchronously (the orchestrator
// is single-threaded by design, see spec's concurrency model), caches the
// report, and returns it.
func (s *Server) SubmitRun(ctx context.Context, req *proto.SubmitRunRequest) (*proto.SubmitRunResponse, error) {
	s.metrics.IncActiveJobs()
	defer s.metrics.DecActiveJobs()

	start := time.Now()

	input, runCfg, algorithm, err := s.buildRun(req)
	if err != nil {
		s.metrics.RecordRun(algorithm, req.Metric, "rejected", time.Since(start))
		return &proto.SubmitRunResponse{Error: err.Error()}, nil
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	report, err := cluster.Run(input, runCfg, rng)
	if err != nil {
		s.metrics.RecordRun(algorithm, req.Metric, "failed", time.Since(start))
		s.log.Error("run failed", map[string]interface{}{"algorithm": algorithm, "error": err.Error()})
		return &proto.SubmitRunResponse{Error: err.Error()}, nil
	}

	out := toProtoReport(report)
	out.RunId = newRunID()
	s.storeReport(out)

	s.metrics.RecordRun(algorithm, req.Metric, "converged", time.Since(start))
	s.metrics.UpdateSilhouette(algorithm, out.Silhouette[len(out.Silhouette)-1])
	for _, c := range out.Clusters {
		s.metrics.UpdateClusterSize(algorithm, int(c.Index), int(c.Size))
	}

	return &proto.SubmitRunResponse{Report: out}, nil
}

// GetReport looks up a previously completed run's report by id.
func (s *Server) GetReport(ctx context.Context, req *proto.GetReportRequest) (*proto.GetReportResponse, error) {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()

	report, ok := s.cache[req.RunId]
	if ok {
		s.metrics.RecordCacheHit()
	} else {
		s.metrics.RecordCacheMiss()
	}
	return &proto.GetReportResponse{Found: ok, Report: report}, nil
}

// HealthCheck reports liveness and uptime.
func (s *Server) HealthCheck(ctx context.Context, req *proto.HealthCheckRequest) (*proto.HealthCheckResponse, error) {
	return &proto.HealthCheckResponse{Status: "ok", UptimeSeconds: time.Since(s.startTime).Seconds()}, nil
}

func (s *Server) storeReport(r *proto.RunReport) {
	if !s.cfg.Cache.Enabled {
		return
	}
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()

	s.cache[r.RunId] = r
	s.order = append(s.order, r.RunId)
	for len(s.order) > s.cfg.Cache.Capacity {
		evict := s.order[0]
		s.order = s.order[1:]
		delete(s.cache, evict)
	}
	s.metrics.UpdateCacheSize(len(s.cache))
}

func newRunID() string {
	return fmt.Sprintf("run-%d", time.Now().UnixNano())
}

// Start starts the gRPC server, with TLS configured from s.cfg and fixed
// keepalive parameters.
func (s *Server) Start() error {
	var opts []grpc.ServerOption

	if s.cfg.Server.EnableTLS {
		cert, err := tls.LoadX509KeyPair(s.cfg.Server.CertFile, s.cfg.Server.KeyFile)
		if err != nil {
			return fmt.Errorf("failed to load TLS certificates: %w", err)
		}
		tlsConfig := &tls.Config{Certificates: []tls.Certificate{cert}, MinVersion: tls.VersionTLS12}
		opts = append(opts, grpc.Creds(credentials.NewTLS(tlsConfig)))
		s.log.Info("TLS enabled")
	}

	kaParams := keepalive.ServerParameters{
		MaxConnectionIdle: 15 * time.Second,
		MaxConnectionAge:  30 * time.Second,
		Time:              5 * time.Second,
		Timeout:           1 * time.Second,
	}
	opts = append(opts, grpc.KeepaliveParams(kaParams))
	opts = append(opts, grpc.MaxConcurrentStreams(uint32(s.cfg.Server.MaxConnections)))
	opts = append(opts, grpc.UnaryInterceptor(s.metricsInterceptor))

	s.grpcServer = grpc.NewServer(opts...)
	proto.RegisterClusterRunnerServer(s.grpcServer, s)
	reflection.Register(s.grpcServer)

	addr := s.cfg.Server.Address()
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	s.listener = listener

	s.log.Info("clusterd gRPC server listening", map[string]interface{}{"address": addr})

	go func() {
		if err := s.grpcServer.Serve(listener); err != nil {
			s.log.Error("gRPC server error", map[string]interface{}{"error": err.Error()})
		}
	}()

	return nil
}

// Stop gracefully shuts the server down, forcing a stop if the shutdown
// timeout elapses first.
func (s *Server) Stop() error {
	s.shutdownMu.Lock()
	defer s.shutdownMu.Unlock()

	if s.isShutdown {
		return nil
	}
	s.log.Info("shutting down clusterd gRPC server")

	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
	defer cancel()

	stopped := make(chan struct{})
	go func() {
		s.grpcServer.GracefulStop()
		close(stopped)
	}()

	select {
	case <-stopped:
		s.log.Info("server stopped gracefully")
	case <-ctx.Done():
		s.log.Warn("shutdown timeout exceeded, forcing stop")
		s.grpcServer.Stop()
	}

	s.isShutdown = true
	return nil
}

// Uptime returns server uptime.
func (s *Server) Uptime() time.Duration { return time.Since(s.startTime) }

func (s *Server) metricsInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	start := time.Now()
	resp, err := handler(ctx, req)
	status := "success"
	if err != nil {
		status = "error"
		s.metrics.RecordError(info.FullMethod, "internal")
	}
	s.metrics.RecordRequest(info.FullMethod, status, time.Since(start))
	return resp, err
}

func toProtoVectors(in []*proto.Vector) ([]*vector.Vector, error) {
	out := make([]*vector.Vector, len(in))
	for i, v := range in {
		if v.Id == "" {
			return nil, fmt.Errorf("vector %d: empty id", i)
		}
		out[i] = vector.New(v.Id, v.Dims)
	}
	return out, nil
}

func toProtoReport(r *cluster.Report) *proto.RunReport {
	out := &proto.RunReport{
		Algorithm:             r.Algorithm,
		Metric:                r.Metric,
		ClusteringTimeSeconds: r.ClusteringTime.Seconds(),
		Silhouette:            r.Silhouette,
	}
	for i, c := range r.Clusters {
		cs := &proto.ClusterSummary{
			Index:      int32(i),
			Size:       int32(c.Size),
			Centroid:   c.CentroidDims,
			CentroidId: c.CentroidID,
			Members:    c.Members,
		}
		out.Clusters = append(out.Clusters, cs)
	}
	return out
}
