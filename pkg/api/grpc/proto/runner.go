// Package proto defines the clusterdb.ClusterRunner gRPC service used by
// pkg/api/grpc and pkg/api/rest. The teacher repo's own pkg/api/grpc/proto
// package is protoc-generated and was not retrieved with the rest of the
// source (protoc is not runnable in this environment); this package plays
// the same role by hand, defining plain Go request/response structs, a
// grpc.ServiceDesc built the way protoc-gen-go-grpc builds one, and a JSON
// wire codec registered through grpc's encoding.RegisterCodec extension
// point instead of the generated protobuf marshaller.
package proto

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// Vector is one input point of a clustering run.
type Vector struct {
	Id   string    `json:"id"`
	Dims []float64 `json:"dims"`
}

// SubmitRunRequest describes one algorithm-triple run over a vector set.
type SubmitRunRequest struct {
	Vectors   []*Vector `json:"vectors"`
	Metric    string    `json:"metric"`    // "euclidean" | "cosine"
	Algorithm string    `json:"algorithm"` // e.g. "I1A1U1"; defaults to I1A1U1
	K         int32     `json:"k"`
	Complete  bool      `json:"complete"`

	// Overrides carries clusterconfig.Config keys (number_of_hash_functions,
	// number_of_hash_tables, lsh_bucket_div, euclidean_h_w, cube_probes,
	// max_algo_iterations, min_dist_kmeans) on top of the server's
	// config.RunDefaultsConfig. A real protobuf-backed field, not a
	// fabrication: structpb.Struct is what this codebase uses everywhere it
	// needs an arbitrary JSON-ish payload inside a typed request.
	Overrides *structpb.Struct `json:"overrides,omitempty"`
}

// ClusterSummary is one output cluster.
type ClusterSummary struct {
	Index      int32    `json:"index"`
	Size       int32    `json:"size"`
	Centroid   []float64 `json:"centroid,omitempty"`
	CentroidId string    `json:"centroid_id,omitempty"`
	Members    []string  `json:"members,omitempty"`
}

// RunReport is the fully assembled result of one algorithm-triple run.
type RunReport struct {
	RunId                 string            `json:"run_id"`
	Algorithm              string            `json:"algorithm"`
	Metric                 string            `json:"metric"`
	Clusters               []*ClusterSummary `json:"clusters"`
	ClusteringTimeSeconds float64           `json:"clustering_time_seconds"`
	Silhouette             []float64         `json:"silhouette"`
}

// SubmitRunResponse wraps the report, or an error string if the run failed.
type SubmitRunResponse struct {
	Report *RunReport `json:"report,omitempty"`
	Error  string     `json:"error,omitempty"`
}

// GetReportRequest looks a previously completed run up by id.
type GetReportRequest struct {
	RunId string `json:"run_id"`
}

// GetReportResponse reports whether the run id was found.
type GetReportResponse struct {
	Found  bool       `json:"found"`
	Report *RunReport `json:"report,omitempty"`
}

// HealthCheckRequest is empty; present for symmetry with the RPC shape.
type HealthCheckRequest struct{}

// HealthCheckResponse reports liveness and uptime.
type HealthCheckResponse struct {
	Status        string  `json:"status"`
	UptimeSeconds float64 `json:"uptime_seconds"`
}

// ClusterRunnerServer is the service interface clusterd's gRPC server
// implements.
type ClusterRunnerServer interface {
	SubmitRun(context.Context, *SubmitRunRequest) (*SubmitRunResponse, error)
	GetReport(context.Context, *GetReportRequest) (*GetReportResponse, error)
	HealthCheck(context.Context, *HealthCheckRequest) (*HealthCheckResponse, error)
}

// UnimplementedClusterRunnerServer can be embedded to satisfy
// ClusterRunnerServer ahead of implementing every method, matching the
// protoc-gen-go-grpc convention the teacher's generated stubs follow.
type UnimplementedClusterRunnerServer struct{}

func (UnimplementedClusterRunnerServer) SubmitRun(context.Context, *SubmitRunRequest) (*SubmitRunResponse, error) {
	return nil, grpcUnimplemented("SubmitRun")
}
func (UnimplementedClusterRunnerServer) GetReport(context.Context, *GetReportRequest) (*GetReportResponse, error) {
	return nil, grpcUnimplemented("GetReport")
}
func (UnimplementedClusterRunnerServer) HealthCheck(context.Context, *HealthCheckRequest) (*HealthCheckResponse, error) {
	return nil, grpcUnimplemented("HealthCheck")
}

func grpcUnimplemented(method string) error {
	return &unimplementedError{method: method}
}

type unimplementedError struct{ method string }

func (e *unimplementedError) Error() string { return "method " + e.method + " not implemented" }

// RegisterClusterRunnerServer registers srv with s.
func RegisterClusterRunnerServer(s *grpc.Server, srv ClusterRunnerServer) {
	s.RegisterService(&clusterRunnerServiceDesc, srv)
}

func clusterRunnerSubmitRunHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(SubmitRunRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ClusterRunnerServer).SubmitRun(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/clusterdb.ClusterRunner/SubmitRun"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ClusterRunnerServer).SubmitRun(ctx, req.(*SubmitRunRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func clusterRunnerGetReportHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetReportRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ClusterRunnerServer).GetReport(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/clusterdb.ClusterRunner/GetReport"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ClusterRunnerServer).GetReport(ctx, req.(*GetReportRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func clusterRunnerHealthCheckHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(HealthCheckRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ClusterRunnerServer).HealthCheck(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/clusterdb.ClusterRunner/HealthCheck"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ClusterRunnerServer).HealthCheck(ctx, req.(*HealthCheckRequest))
	}
	return interceptor(ctx, in, info, handler)
}

var clusterRunnerServiceDesc = grpc.ServiceDesc{
	ServiceName: "clusterdb.ClusterRunner",
	HandlerType: (*ClusterRunnerServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "SubmitRun", Handler: clusterRunnerSubmitRunHandler},
		{MethodName: "GetReport", Handler: clusterRunnerGetReportHandler},
		{MethodName: "HealthCheck", Handler: clusterRunnerHealthCheckHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "clusterdb/runner.proto",
}

// ClusterRunnerClient is the client side of the service, used by
// pkg/api/rest to proxy HTTP requests onto the gRPC server exactly as the
// teacher's REST layer proxies onto its VectorDB gRPC service.
type ClusterRunnerClient interface {
	SubmitRun(ctx context.Context, in *SubmitRunRequest, opts ...grpc.CallOption) (*SubmitRunResponse, error)
	GetReport(ctx context.Context, in *GetReportRequest, opts ...grpc.CallOption) (*GetReportResponse, error)
	HealthCheck(ctx context.Context, in *HealthCheckRequest, opts ...grpc.CallOption) (*HealthCheckResponse, error)
}

type clusterRunnerClient struct {
	cc grpc.ClientConnInterface
}

// NewClusterRunnerClient wraps cc. Callers must pass
// grpc.CallContentSubtype(JSONContentSubtype) so the client negotiates the
// same JSON codec the server registers.
func NewClusterRunnerClient(cc grpc.ClientConnInterface) ClusterRunnerClient {
	return &clusterRunnerClient{cc}
}

func (c *clusterRunnerClient) SubmitRun(ctx context.Context, in *SubmitRunRequest, opts ...grpc.CallOption) (*SubmitRunResponse, error) {
	out := new(SubmitRunResponse)
	if err := c.cc.Invoke(ctx, "/clusterdb.ClusterRunner/SubmitRun", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *clusterRunnerClient) GetReport(ctx context.Context, in *GetReportRequest, opts ...grpc.CallOption) (*GetReportResponse, error) {
	out := new(GetReportResponse)
	if err := c.cc.Invoke(ctx, "/clusterdb.ClusterRunner/GetReport", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *clusterRunnerClient) HealthCheck(ctx context.Context, in *HealthCheckRequest, opts ...grpc.CallOption) (*HealthCheckResponse, error) {
	out := new(HealthCheckResponse)
	if err := c.cc.Invoke(ctx, "/clusterdb.ClusterRunner/HealthCheck", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
