// Package server implements the HTTP relay that serves the project feed,
// the latest release and per-client download recommendations.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/ionnetwork/dlpick/internal/classifier"
	"github.com/ionnetwork/dlpick/internal/fingerprint"
	"github.com/ionnetwork/dlpick/internal/models"
	"github.com/ionnetwork/dlpick/internal/selector"
	"github.com/ionnetwork/dlpick/internal/source"
	"github.com/klauspost/compress/gzhttp"
	"github.com/sirupsen/logrus"
)

// Message returned when the project feed cannot be relayed
const projectsFailure = "Failed to fetch projects"

// Server relays upstream data to launcher web pages
type Server struct {
	config   *models.Config
	assets   source.AssetSource
	projects source.ProjectSource
	now      func() time.Time
}

// New creates a relay server over the given sources
func New(config *models.Config, assets source.AssetSource, projects source.ProjectSource) *Server {
	return &Server{
		config:   config,
		assets:   assets,
		projects: projects,
		now:      time.Now,
	}
}

// RecommendResponse is the body of /api/recommend
type RecommendResponse struct {
	Version        string                 `json:"version"`
	Fingerprint    models.Fingerprint     `json:"fingerprint"`
	PlatformName   string                 `json:"platformName,omitempty"`
	Recommendation *models.Recommendation `json:"recommendation"`
	Links          models.LinkTable       `json:"links"`
	Copyright      string                 `json:"copyright,omitempty"`
}

// Handler returns the routed, compressed HTTP handler
func (s *Server) Handler() http.Handler {
	router := mux.NewRouter()

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/projects", s.handleProjects).Methods(http.MethodGet)
	api.HandleFunc("/release", s.handleRelease).Methods(http.MethodGet)
	api.HandleFunc("/recommend", s.handleRecommend).Methods(http.MethodGet)

	router.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("ok"))
	}).Methods(http.MethodGet)

	router.Use(requestID, logRequests)

	return gzhttp.GzipHandler(router)
}

// ListenAndServe serves until ctx is cancelled
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.config.Listen,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logrus.Infof("Relay listening on %s", s.config.Listen)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		logrus.Info("Shutting down relay...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := s.projects.FetchProjects(r.Context())
	if err != nil {
		logrus.Errorf("Failed to fetch distribution data: %v", err)
		respondError(w, projectsFailure, http.StatusInternalServerError)
		return
	}
	respondJSON(w, projects, http.StatusOK)
}

func (s *Server) handleRelease(w http.ResponseWriter, r *http.Request) {
	release, err := s.assets.FetchRelease(r.Context())
	if err != nil {
		logrus.Errorf("Failed to fetch release from %s: %v", s.assets.Name(), err)
		respondError(w, err.Error(), http.StatusBadGateway)
		return
	}

	assets := release.Assets
	respondJSON(w, source.ReleasePayload{TagName: release.Tag, Assets: &assets}, http.StatusOK)
}

func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	release, err := s.assets.FetchRelease(r.Context())
	if err != nil {
		logrus.Errorf("Failed to fetch release from %s: %v", s.assets.Name(), err)
		respondError(w, err.Error(), http.StatusBadGateway)
		return
	}

	userAgent, platform := clientSignals(r)
	fp := fingerprint.Detect(userAgent, platform)
	table := classifier.Classify(release.Assets)

	resp := RecommendResponse{
		Version:        release.DisplayVersion(),
		Fingerprint:    fp,
		PlatformName:   fp.PlatformName(),
		Recommendation: selector.Select(table, fp),
		Links:          table,
	}
	if s.config.CopyrightOwner != "" {
		resp.Copyright = CopyrightText(s.config.CopyrightOwner, s.config.CopyrightStart, s.now().Year())
	}

	respondJSON(w, resp, http.StatusOK)
}

// clientSignals reads the user agent and platform the client reported. An
// explicit platform query parameter wins over the client hint header.
func clientSignals(r *http.Request) (string, string) {
	query := r.URL.Query()

	userAgent := query.Get("ua")
	if userAgent == "" {
		userAgent = r.UserAgent()
	}

	platform := query.Get("platform")
	if platform == "" {
		platform = strings.Trim(r.Header.Get("Sec-CH-UA-Platform"), `"`)
	}
	return userAgent, platform
}

func respondJSON(w http.ResponseWriter, v interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.Warnf("Failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, msg string, status int) {
	respondJSON(w, map[string]string{"error": msg}, status)
}
