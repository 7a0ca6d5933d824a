package observability

import (
	"testing"
	"time"
)

func TestMetrics(t *testing.T) {
	m := NewMetrics()

	t.Run("NewMetrics", func(t *testing.T) {
		if m == nil {
			t.Fatal("NewMetrics returned nil")
		}
		if m.RequestsTotal == nil {
			t.Error("RequestsTotal not initialized")
		}
		if m.RunsTotal == nil {
			t.Error("RunsTotal not initialized")
		}
		if m.SilhouetteScore == nil {
			t.Error("SilhouetteScore not initialized")
		}
		if m.CacheHits == nil {
			t.Error("CacheHits not initialized")
		}
	})

	t.Run("RecordRequest", func(t *testing.T) {
		duration := 100 * time.Millisecond
		m.RecordRequest("SubmitRun", "success", duration)
		m.RecordRequest("GetReport", "error", 50*time.Millisecond)

		methods := []string{"SubmitRun", "GetReport", "HealthCheck"}
		statuses := []string{"success", "error", "timeout"}
		for _, method := range methods {
			for _, status := range statuses {
				m.RecordRequest(method, status, duration)
			}
		}
	})

	t.Run("RecordError", func(t *testing.T) {
		m.RecordError("SubmitRun", "validation_error")
		m.RecordError("GetReport", "not_found")
	})

	t.Run("RecordRun", func(t *testing.T) {
		m.RecordRun("I1A1U1", "euclidean", "converged", 250*time.Millisecond)
		m.RecordRun("I2A2U2", "cosine", "converged", 1200*time.Millisecond)
		m.RecordRun("I1A3U1", "euclidean", "iteration_cap", 5*time.Second)
	})

	t.Run("RecordAssignment", func(t *testing.T) {
		m.RecordAssignment("lloyd", 10*time.Millisecond)
		m.RecordAssignment("lsh", 5*time.Millisecond)
		m.RecordAssignment("hypercube", 7*time.Millisecond)
	})

	t.Run("RecordIterations", func(t *testing.T) {
		m.RecordIterations("kmeans", 8)
		m.RecordIterations("pam", 3)
	})

	t.Run("UpdateSilhouette", func(t *testing.T) {
		m.UpdateSilhouette("I1A1U1", 0.87)
		m.UpdateSilhouette("I2A2U2", 0.42)
	})

	t.Run("UpdateClusterSize", func(t *testing.T) {
		m.UpdateClusterSize("I1A1U1", 0, 50)
		m.UpdateClusterSize("I1A1U1", 1, 50)
	})

	t.Run("ActiveJobs", func(t *testing.T) {
		m.IncActiveJobs()
		m.IncActiveJobs()
		m.DecActiveJobs()
	})

	t.Run("ReportCache", func(t *testing.T) {
		for i := 0; i < 10; i++ {
			m.RecordCacheHit()
		}
		for i := 0; i < 5; i++ {
			m.RecordCacheMiss()
		}
		m.UpdateCacheSize(15)
	})

	t.Run("SystemMetrics", func(t *testing.T) {
		m.UpdateGoroutineCount(32)
		m.UpdateMemoryUsage(1024 * 1024 * 128)
	})
}
