// Package server sets up the Audiorr web server.
package server

import (
	"context"
	"log"
	"net/http"
	"sync"

	"audiorr/internal/contracts"
	"audiorr/internal/models"
	"audiorr/internal/process"
	"audiorr/internal/uploads"
	"audiorr/internal/utils/logging"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Runner executes one download session per submitted URL.
type Runner interface {
	RunWithOptions(ctx context.Context, rawURL string, opts process.Options) (*models.RunSummary, error)
}

// StorageProber reports on the configured upload bucket.
type StorageProber interface {
	Info(ctx context.Context) (*uploads.BucketInfo, error)
}

var (
	ss contracts.SessionStore

	runner Runner
	prober StorageProber

	// runMu serializes pipeline runs: one active session at a time.
	runMu sync.Mutex

	runsMu sync.RWMutex
	runs   map[string]*runRecord
)

// NewRouter returns a http Handler. The prober may be nil when no bucket
// is configured.
func NewRouter(s contracts.Store, r Runner, p StorageProber) http.Handler {
	// Inject stores and pipeline
	ss = nil
	if s != nil {
		ss = s.SessionStore()
	}
	runner = r
	prober = p
	runs = make(map[string]*runRecord)

	// Initialize router
	router := chi.NewRouter()

	// Middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	// --- Static Frontend ---
	// Serve compiled web UI for non-API routes.
	router.Handle("/*", StaticHandler())

	router.Get("/healthz", handleHealthz)

	// --- API Routes ---
	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/runs", func(r chi.Router) {
			r.Post("/", handleStartRun)
			r.Get("/{id}", handleGetRun)
		})

		r.Route("/sessions", func(r chi.Router) {
			r.Get("/", handleListSessions)
			r.Get("/{id}", handleGetSession)
		})

		r.Get("/storage", handleStorageInfo)
	})

	return router
}

// StartServer starts the HTTP server on the specified port.
func StartServer(port string, s contracts.Store, r Runner, p StorageProber) {
	router := NewRouter(s, r, p)
	addr := ":" + port
	logging.S("Audiorr web server running on http://localhost%s\n", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

// StaticHandler serves the compiled web UI.
func StaticHandler() http.Handler {
	fs := http.FileServer(http.Dir("./web/dist"))
	return http.StripPrefix("/", fs)
}
