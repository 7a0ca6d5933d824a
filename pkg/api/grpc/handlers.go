package grpc

import (
	"fmt"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/therealutkarshpriyadarshi/clusterdb/pkg/api/grpc/proto"
	"github.com/therealutkarshpriyadarshi/clusterdb/pkg/cluster"
	"github.com/therealutkarshpriyadarshi/clusterdb/pkg/config"
	"github.com/therealutkarshpriyadarshi/clusterdb/pkg/lsh"
	"github.com/therealutkarshpriyadarshi/clusterdb/pkg/vector"
)

// buildRun validates req and assembles the vector.Vector input slice and
// cluster.Config a SubmitRun call needs, applying s.cfg.Defaults underneath
// any per-request Overrides.
func (s *Server) buildRun(req *proto.SubmitRunRequest) ([]*vector.Vector, cluster.Config, string, error) {
	algorithm := req.Algorithm
	if algorithm == "" {
		algorithm = "I1A1U1"
	}

	if len(req.Vectors) == 0 {
		return nil, cluster.Config{}, algorithm, fmt.Errorf("empty input: no vectors submitted")
	}
	if req.K <= 0 {
		return nil, cluster.Config{}, algorithm, fmt.Errorf("number_of_clusters must be > 0")
	}

	metric, err := vector.ParseMetric(req.Metric)
	if err != nil {
		return nil, cluster.Config{}, algorithm, err
	}

	initM, assignM, updateM, err := parseAlgorithm(algorithm)
	if err != nil {
		return nil, cluster.Config{}, algorithm, err
	}

	input, err := toProtoVectors(req.Vectors)
	if err != nil {
		return nil, cluster.Config{}, algorithm, err
	}

	defaults := s.cfg.Defaults
	applyOverrides(&defaults, req.Overrides)
	cubeProbes := 0
	if req.Overrides != nil {
		if v, ok := req.Overrides.GetFields()["cube_probes"]; ok {
			cubeProbes = int(v.GetNumberValue())
		}
	}

	runCfg := cluster.Config{
		K:              int(req.K),
		Metric:         metric,
		Init:           initM,
		Assign:         assignM,
		Update:         updateM,
		MaxIterations:  defaults.MaxAlgoIterations,
		MinDistKMeans:  defaults.MinDistKMeans,
		LSH: lsh.Config{
			Metric:     metric,
			K:          defaults.NumberOfHashFunctions,
			L:          defaults.NumberOfHashTables,
			BucketDiv:  defaults.LSHBucketDiv,
			EuclideanW: defaults.EuclideanHW,
		},
		CubeK:          defaults.NumberOfHashFunctions,
		CubeProbes:     cubeProbes,
		CubeEuclideanW: defaults.EuclideanHW,
		Complete:       req.Complete,
	}

	return input, runCfg, algorithm, nil
}

// parseAlgorithm parses the fixed "I{1|2}A{1|2|3}U{1|2}" shape spec.md §6
// uses to name an algorithm triple.
func parseAlgorithm(s string) (cluster.InitMethod, cluster.AssignMethod, cluster.UpdateMethod, error) {
	var i, a, u int
	if n, err := fmt.Sscanf(s, "I%dA%dU%d", &i, &a, &u); err != nil || n != 3 {
		return 0, 0, 0, fmt.Errorf("invalid algorithm triple %q: want I{1|2}A{1|2|3}U{1|2}", s)
	}

	var initM cluster.InitMethod
	switch i {
	case 1:
		initM = cluster.InitRandom
	case 2:
		initM = cluster.InitKMeansPP
	default:
		return 0, 0, 0, fmt.Errorf("invalid initialization %d", i)
	}

	var assignM cluster.AssignMethod
	switch a {
	case 1:
		assignM = cluster.AssignLloyds
	case 2:
		assignM = cluster.AssignLSH
	case 3:
		assignM = cluster.AssignHypercube
	default:
		return 0, 0, 0, fmt.Errorf("invalid assignment %d", a)
	}

	var updateM cluster.UpdateMethod
	switch u {
	case 1:
		updateM = cluster.UpdateKMeans
	case 2:
		updateM = cluster.UpdatePAM
	default:
		return 0, 0, 0, fmt.Errorf("invalid update %d", u)
	}

	return initM, assignM, updateM, nil
}

// applyOverrides merges the run-tuning keys of overrides on top of defaults:
// number_of_hash_functions, number_of_hash_tables, lsh_bucket_div,
// euclidean_h_w, max_algo_iterations and min_dist_kmeans. cube_probes is read
// by buildRun; other clusterconfig keys are ignored.
func applyOverrides(defaults *config.RunDefaultsConfig, overrides *structpb.Struct) {
	if overrides == nil {
		return
	}
	fields := overrides.GetFields()

	if v, ok := fields["number_of_hash_functions"]; ok {
		defaults.NumberOfHashFunctions = int(v.GetNumberValue())
	}
	if v, ok := fields["number_of_hash_tables"]; ok {
		defaults.NumberOfHashTables = int(v.GetNumberValue())
	}
	if v, ok := fields["lsh_bucket_div"]; ok {
		defaults.LSHBucketDiv = int(v.GetNumberValue())
	}
	if v, ok := fields["euclidean_h_w"]; ok {
		defaults.EuclideanHW = v.GetNumberValue()
	}
	if v, ok := fields["max_algo_iterations"]; ok {
		defaults.MaxAlgoIterations = int(v.GetNumberValue())
	}
	if v, ok := fields["min_dist_kmeans"]; ok {
		defaults.MinDistKMeans = v.GetNumberValue()
	}
}
