// Command clusterctl runs every (initialization, assignment, update)
// algorithm triple over one input vector file and writes the resulting
// reports to an output file.
//
// Grounded in the flag-dispatch shape of
// _examples/therealutkarshpriyadarshi-vector's cmd/cli/main.go and the CLI
// surface described in original_source/main.cpp's flag handling.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/therealutkarshpriyadarshi/clusterdb/pkg/cluster"
	"github.com/therealutkarshpriyadarshi/clusterdb/pkg/clusterconfig"
	"github.com/therealutkarshpriyadarshi/clusterdb/pkg/lsh"
	"github.com/therealutkarshpriyadarshi/clusterdb/pkg/observability"
	"github.com/therealutkarshpriyadarshi/clusterdb/pkg/vector"
	"github.com/therealutkarshpriyadarshi/clusterdb/pkg/vectorio"
)

var log = observability.NewLogger(observability.INFO, os.Stdout)

func main() {
	var (
		inputPath  = flag.String("i", "", "input vector file")
		configPath = flag.String("c", "", "clustering configuration file")
		outputPath = flag.String("o", "", "output report file")
		metricFlag = flag.String("d", "", "distance metric: euclidean|cosine")
		complete   = flag.Bool("complete", false, "dump cluster membership in the report")
	)
	flag.Parse()

	reader := bufio.NewReader(os.Stdin)
	*inputPath = promptIfEmpty(reader, *inputPath, "Input file: ")
	*configPath = promptIfEmpty(reader, *configPath, "Config file: ")
	*outputPath = promptIfEmpty(reader, *outputPath, "Output file: ")
	*metricFlag = promptIfEmpty(reader, *metricFlag, "Metric (euclidean|cosine): ")

	metric, err := vector.ParseMetric(strings.TrimSpace(*metricFlag))
	if err != nil {
		log.Error("invalid metric", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}

	cfg, err := clusterconfig.Load(*configPath)
	if err != nil {
		log.Error("failed to load clustering config", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}
	if cfg.NumberOfClusters == 0 {
		numStr := promptIfEmpty(reader, "", "Number of clusters: ")
		fmt.Sscanf(numStr, "%d", &cfg.NumberOfClusters)
	}

	vr := vectorio.NewReader(*inputPath)
	if err := vr.Read(cfg.CSVDelimiter, 2); err != nil {
		log.Error("failed to open input file", map[string]interface{}{"path": *inputPath, "error": err.Error()})
		os.Exit(1)
	}
	vectors := vr.Vectors()
	if len(vectors) == 0 {
		log.Error("input file contained no usable vectors", map[string]interface{}{"path": *inputPath})
		os.Exit(1)
	}

	out, err := os.Create(*outputPath)
	if err != nil {
		log.Error("failed to open output file", map[string]interface{}{"path": *outputPath, "error": err.Error()})
		os.Exit(1)
	}
	defer out.Close()

	runEveryTriple(out, vectors, cfg, metric, *complete)
}

func runEveryTriple(out *os.File, vectors []*vector.Vector, cfg clusterconfig.Config, metric vector.Metric, complete bool) {
	inits := []cluster.InitMethod{cluster.InitRandom, cluster.InitKMeansPP}
	assigns := []cluster.AssignMethod{cluster.AssignLloyds, cluster.AssignLSH, cluster.AssignHypercube}
	updates := []cluster.UpdateMethod{cluster.UpdateKMeans, cluster.UpdatePAM}

	for _, initM := range inits {
		for _, assignM := range assigns {
			for _, updateM := range updates {
				rng := rand.New(rand.NewSource(time.Now().UnixNano()))

				runCfg := cluster.Config{
					K:              cfg.NumberOfClusters,
					Metric:         metric,
					Init:           initM,
					Assign:         assignM,
					Update:         updateM,
					MaxIterations:  cfg.MaxAlgoIterations,
					MinDistKMeans:  cfg.MinDistKMeans,
					LSH:            lsh.Config{Metric: metric, K: cfg.NumberOfHashFunctions, L: cfg.NumberOfHashTables, BucketDiv: cfg.LSHBucketDiv, EuclideanW: cfg.EuclideanHW},
					CubeK:          cfg.NumberOfHashFunctions,
					CubeProbes:     cfg.CubeProbes,
					CubeEuclideanW: cfg.EuclideanHW,
					Complete:       complete,
				}

				report, err := cluster.Run(cloneVectors(vectors), runCfg, rng)
				if err != nil {
					log.Error("algorithm triple failed", map[string]interface{}{
						"init": initM, "assign": assignM, "update": updateM, "error": err.Error(),
					})
					continue
				}

				fmt.Fprint(out, report.Format())
			}
		}
	}
}

// cloneVectors gives each algorithm triple its own unassigned copy of the
// input so that one run's cluster/distance slots never leak into the next.
func cloneVectors(vectors []*vector.Vector) []*vector.Vector {
	out := make([]*vector.Vector, len(vectors))
	for i, v := range vectors {
		dims := append([]float64(nil), v.Dims()...)
		out[i] = vector.New(v.ID(), dims)
	}
	return out
}

func promptIfEmpty(reader *bufio.Reader, value, prompt string) string {
	if strings.TrimSpace(value) != "" {
		return value
	}
	fmt.Print(prompt)
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}
