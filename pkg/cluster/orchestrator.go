package cluster

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/therealutkarshpriyadarshi/clusterdb/pkg/hypercube"
	"github.com/therealutkarshpriyadarshi/clusterdb/pkg/lsh"
	"github.com/therealutkarshpriyadarshi/clusterdb/pkg/vector"
)

// InitMethod selects the centroid-initialization policy.
type InitMethod int

const (
	InitRandom InitMethod = iota + 1
	InitKMeansPP
)

func (m InitMethod) String() string {
	if m == InitKMeansPP {
		return "2"
	}
	return "1"
}

// AssignMethod selects the assignment policy.
type AssignMethod int

const (
	AssignLloyds AssignMethod = iota + 1
	AssignLSH
	AssignHypercube
)

func (m AssignMethod) String() string {
	switch m {
	case AssignLSH:
		return "2"
	case AssignHypercube:
		return "3"
	default:
		return "1"
	}
}

// UpdateMethod selects the centroid-update policy.
type UpdateMethod int

const (
	UpdateKMeans UpdateMethod = iota + 1
	UpdatePAM
)

func (m UpdateMethod) String() string {
	if m == UpdatePAM {
		return "2"
	}
	return "1"
}

// Config holds every knob a single algorithm-triple run needs.
type Config struct {
	K      int
	Metric vector.Metric

	Init   InitMethod
	Assign AssignMethod
	Update UpdateMethod

	MaxIterations int
	MinDistKMeans float64

	LSH lsh.Config

	CubeK          int
	CubeProbes     int
	CubeEuclideanW float64

	Complete bool // dump cluster membership in the report
}

// Report is the fully assembled output of one algorithm-triple run, shaped
// to match the text layout of spec.md §6.
type Report struct {
	Algorithm      string
	Metric         string
	Clusters       []ClusterReport
	ClusteringTime time.Duration
	Silhouette     []float64
}

// ClusterReport describes one output cluster. For a k-means run,
// CentroidDims holds the mean coordinates; for a PAM run, CentroidID holds
// the medoid's input id instead.
type ClusterReport struct {
	Size         int
	CentroidDims []float64
	CentroidID   string
	IsMedoid     bool
	Members      []string // populated only when Config.Complete is set
}

// Run executes initialization, then (assignment, update)* until convergence
// or the iteration cap, then the silhouette phase, and assembles the report.
func Run(input []*vector.Vector, cfg Config, rng *rand.Rand) (*Report, error) {
	start := time.Now()

	centroids, err := initialize(input, cfg, rng)
	if err != nil {
		return nil, err
	}

	var ensemble *lsh.Ensemble
	if cfg.Assign == AssignLSH {
		ensemble = lsh.Build(input, cfg.LSH, rng)
	}
	var cube *hypercube.Index
	if cfg.Assign == AssignHypercube {
		cube = hypercube.Build(input, cfg.Metric, cfg.CubeK, cfg.CubeEuclideanW, rng)
	}

	iter := 0
	for {
		if err := assign(input, centroids, ensemble, cube, cfg); err != nil {
			return nil, err
		}

		var cont bool
		centroids, cont, err = update(input, centroids, cfg)
		if err != nil {
			return nil, err
		}

		iter++
		if !cont || iter >= cfg.MaxIterations {
			break
		}
	}

	clusters := partitionByCluster(input, cfg.K)
	sil, err := Silhouette(clusters, centroids, cfg.Metric)
	if err != nil {
		return nil, err
	}

	report := &Report{
		Algorithm:      fmt.Sprintf("I%sA%sU%s", cfg.Init, cfg.Assign, cfg.Update),
		Metric:         cfg.Metric.String(),
		ClusteringTime: time.Since(start),
		Silhouette:     sil,
	}

	for ci, members := range clusters {
		cr := ClusterReport{Size: len(members)}
		if cfg.Update == UpdatePAM {
			cr.CentroidID = centroids[ci].ID()
			cr.IsMedoid = true
		} else {
			cr.CentroidDims = append([]float64(nil), centroids[ci].Dims()...)
		}
		if cfg.Complete {
			for _, m := range members {
				cr.Members = append(cr.Members, m.ID())
			}
		}
		report.Clusters = append(report.Clusters, cr)
	}

	return report, nil
}

func initialize(input []*vector.Vector, cfg Config, rng *rand.Rand) ([]*vector.Vector, error) {
	if cfg.Init == InitKMeansPP {
		return KMeansPlusPlus(input, cfg.K, cfg.Metric, rng)
	}
	return RandomUniform(input, cfg.K, rng), nil
}

func assign(input []*vector.Vector, centroids []*vector.Vector, ensemble *lsh.Ensemble, cube *hypercube.Index, cfg Config) error {
	switch cfg.Assign {
	case AssignLSH:
		return LSHRangeAssignment(input, ensemble, centroids, cfg.Metric)
	case AssignHypercube:
		return CubeRangeAssignment(input, cube, centroids, cfg.Metric, cfg.CubeProbes)
	default:
		return LloydsAssignment(input, centroids, cfg.Metric)
	}
}

func update(input []*vector.Vector, centroids []*vector.Vector, cfg Config) ([]*vector.Vector, bool, error) {
	if cfg.Update == UpdatePAM {
		return PAMUpdate(input, centroids, cfg.Metric)
	}
	return KMeansUpdate(input, centroids, cfg.Metric, cfg.MinDistKMeans)
}
