// Package integration exercises clusterd's gRPC and REST surfaces
// end-to-end over real sockets, grounded in the teacher's
// test/integration/api_test.go (dial a live server, round-trip requests
// through the hand-written ClusterRunner client), retargeted from vector insert/search calls
// to clustering run submission.
package integration

import (
	"context"
	"testing"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	grpcserver "github.com/therealutkarshpriyadarshi/clusterdb/pkg/api/grpc"
	"github.com/therealutkarshpriyadarshi/clusterdb/pkg/api/grpc/proto"
	"github.com/therealutkarshpriyadarshi/clusterdb/pkg/config"
	"github.com/therealutkarshpriyadarshi/clusterdb/pkg/observability"
)

func setupTestServer(t *testing.T, port int) (*grpcserver.Server, proto.ClusterRunnerClient, func()) {
	t.Helper()

	cfg := config.Default()
	cfg.Server.Port = port

	metrics := observability.NewMetrics()
	log := observability.NewLogger(observability.ERROR, nil)

	server, err := grpcserver.NewServer(cfg, metrics, log)
	if err != nil {
		t.Fatalf("failed to create server: %v", err)
	}
	if err := server.Start(); err != nil {
		t.Fatalf("failed to start server: %v", err)
	}

	time.Sleep(100 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	addr := cfg.Server.Address()
	conn, err := grpc.DialContext(ctx, addr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithBlock(),
		grpc.WithDefaultCallOptions(grpc.CallContentSubtype(proto.JSONContentSubtype)),
	)
	if err != nil {
		server.Stop()
		t.Fatalf("failed to connect to server: %v", err)
	}

	client := proto.NewClusterRunnerClient(conn)

	cleanup := func() {
		conn.Close()
		server.Stop()
	}

	return server, client, cleanup
}

func twoClusterVectors() []*proto.Vector {
	return []*proto.Vector{
		{Id: "A", Dims: []float64{0, 0}},
		{Id: "B", Dims: []float64{0, 1}},
		{Id: "C", Dims: []float64{10, 0}},
		{Id: "D", Dims: []float64{10, 1}},
	}
}

func TestHealthCheck(t *testing.T) {
	_, client, cleanup := setupTestServer(t, 50061)
	defer cleanup()

	resp, err := client.HealthCheck(context.Background(), &proto.HealthCheckRequest{})
	if err != nil {
		t.Fatalf("HealthCheck failed: %v", err)
	}
	if resp.Status != "ok" {
		t.Errorf("expected status ok, got %q", resp.Status)
	}
}

func TestSubmitRunLloydKMeans(t *testing.T) {
	_, client, cleanup := setupTestServer(t, 50062)
	defer cleanup()

	req := &proto.SubmitRunRequest{
		Vectors:   twoClusterVectors(),
		Metric:    "euclidean",
		Algorithm: "I1A1U1",
		K:         2,
	}

	resp, err := client.SubmitRun(context.Background(), req)
	if err != nil {
		t.Fatalf("SubmitRun failed: %v", err)
	}
	if resp.Error != "" {
		t.Fatalf("SubmitRun returned error: %s", resp.Error)
	}
	if resp.Report == nil {
		t.Fatal("expected a report")
	}
	if len(resp.Report.Clusters) != 2 {
		t.Fatalf("expected 2 clusters, got %d", len(resp.Report.Clusters))
	}
	if len(resp.Report.Silhouette) != 3 {
		t.Fatalf("expected silhouette of length k+1=3, got %d", len(resp.Report.Silhouette))
	}
}

func TestSubmitRunThenGetReport(t *testing.T) {
	_, client, cleanup := setupTestServer(t, 50063)
	defer cleanup()

	req := &proto.SubmitRunRequest{
		Vectors:   twoClusterVectors(),
		Metric:    "euclidean",
		Algorithm: "I1A1U2",
		K:         2,
	}

	submitResp, err := client.SubmitRun(context.Background(), req)
	if err != nil {
		t.Fatalf("SubmitRun failed: %v", err)
	}
	if submitResp.Report == nil || submitResp.Report.RunId == "" {
		t.Fatal("expected a report with a run id")
	}

	getResp, err := client.GetReport(context.Background(), &proto.GetReportRequest{RunId: submitResp.Report.RunId})
	if err != nil {
		t.Fatalf("GetReport failed: %v", err)
	}
	if !getResp.Found {
		t.Fatal("expected the run to be found in the report cache")
	}
	if getResp.Report.Algorithm != "I1A1U2" && getResp.Report.Algorithm != submitResp.Report.Algorithm {
		t.Errorf("report mismatch: got %q want %q", getResp.Report.Algorithm, submitResp.Report.Algorithm)
	}
}

func TestSubmitRunRejectsBadAlgorithm(t *testing.T) {
	_, client, cleanup := setupTestServer(t, 50064)
	defer cleanup()

	req := &proto.SubmitRunRequest{
		Vectors:   twoClusterVectors(),
		Metric:    "euclidean",
		Algorithm: "I9A1U1",
		K:         2,
	}

	resp, err := client.SubmitRun(context.Background(), req)
	if err != nil {
		t.Fatalf("SubmitRun transport error: %v", err)
	}
	if resp.Error == "" {
		t.Fatal("expected an error for an invalid algorithm triple")
	}
}

func TestGetReportMissingRun(t *testing.T) {
	_, client, cleanup := setupTestServer(t, 50065)
	defer cleanup()

	resp, err := client.GetReport(context.Background(), &proto.GetReportRequest{RunId: "does-not-exist"})
	if err != nil {
		t.Fatalf("GetReport failed: %v", err)
	}
	if resp.Found {
		t.Fatal("expected Found=false for a missing run id")
	}
}
