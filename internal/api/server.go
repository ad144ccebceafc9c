// internal/api/server.go

// Package api serves the latest snapshot over HTTP, together with health
// and metrics endpoints. The server reads the snapshot file on demand, so
// it always reflects the most recent completed run.
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"

	"github.com/valpere/StageScrapexter/internal/config"
	"github.com/valpere/StageScrapexter/internal/monitoring"
	"github.com/valpere/StageScrapexter/internal/utils"
	"github.com/valpere/StageScrapexter/pkg/types"
)

// Server exposes the snapshot API.
type Server struct {
	listenAddress string
	snapshotFile  string
	router        *mux.Router
	logger        utils.Logger
}

// NewServer creates a snapshot server for the given configuration.
func NewServer(cfg config.ServerConfig, logger utils.Logger, metrics *monitoring.Metrics) *Server {
	if logger == nil {
		logger = utils.NewLogger()
	}

	server := &Server{
		listenAddress: cfg.ListenAddress,
		snapshotFile:  cfg.SnapshotFile,
		router:        mux.NewRouter(),
		logger:        logger,
	}

	server.router.HandleFunc("/healthz", server.handleHealth).Methods(http.MethodGet)
	server.router.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)
	server.router.HandleFunc("/api/v1/snapshot", server.handleSnapshot).Methods(http.MethodGet)
	server.router.HandleFunc("/api/v1/productions/{id}", server.handleProduction).Methods(http.MethodGet)

	return server
}

// Handler returns the router, used by tests and by ListenAndServe.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe blocks serving the API.
func (s *Server) ListenAndServe() error {
	s.logger.Infof("serving snapshot API on %s", s.listenAddress)

	server := &http.Server{
		Addr:         s.listenAddress,
		Handler:      s.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return server.ListenAndServe()
}

// loadSnapshot reads and parses the snapshot file.
func (s *Server) loadSnapshot() (*types.Snapshot, error) {
	data, err := os.ReadFile(s.snapshotFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	var snapshot types.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot: %w", err)
	}

	return &snapshot, nil
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSnapshot(w http.ResponseWriter, _ *http.Request) {
	snapshot, err := s.loadSnapshot()
	if err != nil {
		s.logger.Errorf("snapshot unavailable: %v", err)
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "snapshot unavailable"})
		return
	}

	writeJSON(w, http.StatusOK, snapshot)
}

func (s *Server) handleProduction(w http.ResponseWriter, r *http.Request) {
	snapshot, err := s.loadSnapshot()
	if err != nil {
		s.logger.Errorf("snapshot unavailable: %v", err)
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "snapshot unavailable"})
		return
	}

	id := mux.Vars(r)["id"]
	for _, item := range snapshot.Items {
		if item.ID == id {
			writeJSON(w, http.StatusOK, item)
			return
		}
	}

	writeJSON(w, http.StatusNotFound, map[string]string{"error": "production not found"})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	_ = encoder.Encode(payload)
}
