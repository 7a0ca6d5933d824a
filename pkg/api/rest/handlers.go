package rest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/grpc"

	"github.com/therealutkarshpriyadarshi/clusterdb/pkg/api/grpc/proto"
)

// Handler wraps the gRPC client and provides HTTP handlers.
type Handler struct {
	client proto.ClusterRunnerClient
}

// NewHandler creates a new REST API handler over client.
func NewHandler(client proto.ClusterRunnerClient) *Handler {
	return &Handler{client: client}
}

// jsonCall is the CallOption every request needs to negotiate clusterdb's
// hand-rolled JSON codec instead of grpc's default proto codec.
func jsonCall() grpc.CallOption {
	return grpc.CallContentSubtype(proto.JSONContentSubtype)
}

// HealthCheck handles GET /v1/health.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	resp, err := h.client.HealthCheck(r.Context(), &proto.HealthCheckRequest{}, jsonCall())
	if err != nil {
		writeError(w, fmt.Sprintf("Health check failed: %v", err), http.StatusInternalServerError)
		return
	}

	writeJSON(w, resp, http.StatusOK)
}

// SubmitRun handles POST /v1/runs.
func (h *Handler) SubmitRun(w http.ResponseWriter, r *http.Request) {
	var req proto.SubmitRunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	resp, err := h.client.SubmitRun(r.Context(), &req, jsonCall())
	if err != nil {
		writeError(w, fmt.Sprintf("Run submission failed: %v", err), http.StatusInternalServerError)
		return
	}

	if resp.Error != "" {
		writeError(w, resp.Error, http.StatusBadRequest)
		return
	}

	writeJSON(w, resp, http.StatusCreated)
}

// GetReport handles GET /v1/runs/{run_id}.
func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	runID := strings.TrimPrefix(r.URL.Path, "/v1/runs/")
	if runID == "" {
		writeError(w, "Missing run id", http.StatusBadRequest)
		return
	}

	resp, err := h.client.GetReport(r.Context(), &proto.GetReportRequest{RunId: runID}, jsonCall())
	if err != nil {
		writeError(w, fmt.Sprintf("Failed to get report: %v", err), http.StatusInternalServerError)
		return
	}

	if !resp.Found {
		writeError(w, fmt.Sprintf("No report for run %q", runID), http.StatusNotFound)
		return
	}

	writeJSON(w, resp, http.StatusOK)
}

func writeJSON(w http.ResponseWriter, v interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, message string, status int) {
	writeJSON(w, map[string]interface{}{"error": message, "status": status}, status)
}
