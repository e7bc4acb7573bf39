package http

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/fwojciec/saucier"
	"github.com/rs/zerolog"
)

// Server exposes the extraction pipeline over JSON. It is a thin adapter:
// request parsing, the fetch collaborator, and response shaping live here;
// extraction itself stays in the pipeline.
type Server struct {
	server *http.Server
	ln     net.Listener

	// Addr is the bind address, e.g. ":10000".
	Addr string

	// Fetcher retrieves page HTML before extraction runs.
	Fetcher saucier.Fetcher

	// Extractor is the extraction pipeline.
	Extractor saucier.Extractor

	// Recipes optionally caches extraction results. Nil disables caching.
	Recipes saucier.RecipeService

	// CacheTTL bounds how long cached results are served. Zero means
	// cached results never expire.
	CacheTTL time.Duration

	Logger zerolog.Logger
}

// NewServer creates a Server with routes registered.
func NewServer() *Server {
	s := &Server{Logger: zerolog.Nop()}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /extract", s.handleExtract)
	mux.HandleFunc("GET /health", s.handleHealth)

	s.server = &http.Server{
		Handler:           s.logRequests(mux),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      90 * time.Second,
	}
	return s
}

// Open begins listening on Addr. It returns once the listener is bound;
// serving continues on a background goroutine.
func (s *Server) Open() error {
	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return err
	}
	s.ln = ln

	go func() {
		if err := s.server.Serve(ln); err != nil && err != http.ErrServerClosed {
			s.Logger.Error().Err(err).Msg("server stopped")
		}
	}()
	return nil
}

// Close gracefully shuts the server down.
func (s *Server) Close(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// URL returns the server's base URL once Open has succeeded. Used by tests.
func (s *Server) URL() string {
	return "http://" + s.ln.Addr().String()
}

func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	rawURL := r.URL.Query().Get("url")
	if rawURL == "" {
		s.writeError(w, saucier.Errorf(saucier.EINVALID, "missing url parameter"))
		return
	}
	if u, err := url.Parse(rawURL); err != nil || !u.IsAbs() || u.Host == "" {
		s.writeError(w, saucier.Errorf(saucier.EINVALID, "invalid url parameter: %q", rawURL))
		return
	}

	if rec, ok := s.cached(r.Context(), rawURL); ok {
		s.writeJSON(w, http.StatusOK, rec)
		return
	}

	html, finalURL, err := s.Fetcher.Fetch(r.Context(), rawURL)
	if err != nil {
		s.writeError(w, saucier.Errorf(saucier.EUNAVAILABLE, "fetch failed: %s", saucier.ErrorMessage(err)))
		return
	}

	rec, err := s.Extractor.Extract(html, finalURL)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.store(r.Context(), rawURL, rec)
	s.writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// cached returns a fresh cached result for the URL, when caching is on.
func (s *Server) cached(ctx context.Context, rawURL string) (*saucier.Recipe, bool) {
	if s.Recipes == nil {
		return nil, false
	}
	stored, err := s.Recipes.FindRecipeByURL(ctx, rawURL)
	if err != nil {
		if saucier.ErrorCode(err) != saucier.ENOTFOUND {
			s.Logger.Warn().Err(err).Str("url", rawURL).Msg("cache lookup failed")
		}
		return nil, false
	}
	if s.CacheTTL > 0 && time.Since(stored.FetchedAt) > s.CacheTTL {
		return nil, false
	}
	return stored.Recipe, true
}

// store caches an extraction result. Failures are logged, never surfaced:
// caching is an optimization, not part of the response contract.
func (s *Server) store(ctx context.Context, rawURL string, rec *saucier.Recipe) {
	if s.Recipes == nil {
		return
	}
	err := s.Recipes.CreateRecipe(ctx, &saucier.StoredRecipe{
		SourceURL: rawURL,
		Recipe:    rec,
	})
	if err != nil {
		s.Logger.Warn().Err(err).Str("url", rawURL).Msg("cache store failed")
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Error().Err(err).Msg("response encoding failed")
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	s.writeJSON(w, statusFromCode(saucier.ErrorCode(err)), map[string]string{
		"error": saucier.ErrorMessage(err),
	})
}

// statusFromCode maps application error codes to HTTP statuses.
func statusFromCode(code string) int {
	switch code {
	case saucier.EINVALID:
		return http.StatusBadRequest
	case saucier.ENOTFOUND:
		return http.StatusNotFound
	case saucier.EUNAVAILABLE:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.Logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}
