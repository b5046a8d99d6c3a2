package server

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"audiorr/internal/models"
	"audiorr/internal/process"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const defaultSessionListLimit = 50

// runRequest is the POST /api/v1/runs payload.
type runRequest struct {
	URL       string `json:"url"`
	MaxVideos *int   `json:"max_videos,omitempty"`
	Upload    *bool  `json:"upload,omitempty"`
}

// runRecord tracks one submitted run for later retrieval.
type runRecord struct {
	ID         string             `json:"id"`
	URL        string             `json:"url"`
	Status     string             `json:"status"`
	Error      string             `json:"error,omitempty"`
	Summary    *models.RunSummary `json:"summary,omitempty"`
	StartedAt  time.Time          `json:"started_at"`
	FinishedAt time.Time          `json:"finished_at"`
}

// handleStartRun runs one full download session synchronously and responds
// with the run summary. Runs are serialized, one session at a time.
func handleStartRun(w http.ResponseWriter, r *http.Request) {
	var req runRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.URL) == "" {
		http.Error(w, "missing 'url'", http.StatusBadRequest)
		return
	}

	rec := &runRecord{
		ID:        uuid.NewString(),
		URL:       req.URL,
		Status:    "running",
		StartedAt: time.Now(),
	}
	runsMu.Lock()
	runs[rec.ID] = rec
	runsMu.Unlock()

	runMu.Lock()
	sum, err := runner.RunWithOptions(r.Context(), req.URL, process.Options{
		MaxVideos: req.MaxVideos,
		Upload:    req.Upload,
	})
	runMu.Unlock()

	runsMu.Lock()
	rec.FinishedAt = time.Now()
	rec.Summary = sum
	if err != nil {
		rec.Status = "failed"
		rec.Error = err.Error()
	} else {
		rec.Status = "completed"
	}
	runsMu.Unlock()

	status := http.StatusOK
	if err != nil && sum == nil {
		status = http.StatusUnprocessableEntity
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if encErr := json.NewEncoder(w).Encode(rec); encErr != nil {
		http.Error(w, "failed to encode JSON", http.StatusInternalServerError)
	}
}

// handleGetRun returns a previously submitted run.
func handleGetRun(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	// Snapshot under the lock: the owning run handler mutates the record
	// on completion, so the encoder must not read the shared struct.
	runsMu.RLock()
	rec, found := runs[id]
	var snapshot runRecord
	if found {
		snapshot = *rec
	}
	runsMu.RUnlock()
	if !found {
		http.Error(w, "run not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(snapshot); err != nil {
		http.Error(w, "failed to encode JSON", http.StatusInternalServerError)
	}
}

// handleListSessions lists stored session history, newest first.
func handleListSessions(w http.ResponseWriter, r *http.Request) {
	if ss == nil {
		http.Error(w, "no session store configured", http.StatusServiceUnavailable)
		return
	}

	recs, err := ss.ListSessions(defaultSessionListLimit)
	if err != nil {
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(recs); err != nil {
		http.Error(w, "failed to encode JSON", http.StatusInternalServerError)
	}
}

// handleGetSession returns one stored session with its per-video results.
func handleGetSession(w http.ResponseWriter, r *http.Request) {
	if ss == nil {
		http.Error(w, "no session store configured", http.StatusServiceUnavailable)
		return
	}

	id := chi.URLParam(r, "id")

	rec, found, err := ss.GetSession(id)
	if err != nil {
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if !found {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}

	results, err := ss.GetSessionResults(id)
	if err != nil {
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	resp := struct {
		Session *models.SessionRecord `json:"session"`
		Results []models.VideoResult  `json:"results"`
	}{Session: rec, Results: results}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		http.Error(w, "failed to encode JSON", http.StatusInternalServerError)
	}
}

// handleStorageInfo probes the configured upload bucket.
func handleStorageInfo(w http.ResponseWriter, r *http.Request) {
	if prober == nil {
		http.Error(w, "no upload bucket configured", http.StatusServiceUnavailable)
		return
	}

	info, err := prober.Info(r.Context())
	if err != nil {
		http.Error(w, "bucket not accessible", http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(info); err != nil {
		http.Error(w, "failed to encode JSON", http.StatusInternalServerError)
	}
}

// handleHealthz reports liveness.
func handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
