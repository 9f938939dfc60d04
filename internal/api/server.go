// Package api exposes the tracker as a small JSON HTTP service.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Veraticus/the-wheel-must-spin/internal/engine"
)

// RequestTimeout bounds every request.
const RequestTimeout = 30 * time.Second

// Server handles HTTP requests.
type Server struct {
	tracker   *engine.Tracker
	startTime time.Time
	version   string
}

// NewServer creates a server backed by tracker.
func NewServer(tracker *engine.Tracker, version string) *Server {
	return &Server{
		tracker:   tracker,
		version:   version,
		startTime: time.Now(),
	}
}

// Routes builds the router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(recoverer)
	r.Use(middleware.Timeout(RequestTimeout))

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/analysis", s.handleAnalysis)
		r.Get("/neighbours", s.handleNeighbours)

		r.Get("/spins", s.handleListSpins)
		r.Post("/spins", s.handleRecordSpins)
		r.Delete("/spins/last", s.handleUndo)

		r.Get("/groups", s.handleListGroups)
		r.Post("/groups", s.handleAddGroup)
		r.Delete("/groups/{name}", s.handleDeleteGroup)

		r.Get("/dealers", s.handleListDealers)
		r.Get("/dealer", s.handleGetDealer)
		r.Put("/dealer", s.handleSetDealer)

		r.Get("/session", s.handleSession)
		r.Post("/session", s.handleStartSession)
	})

	return r
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("api server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("api server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("api server shutdown: %w", err)
	}
	slog.Info("api server stopped")
	return nil
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Warn("failed to encode response", "error", err)
	}
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		slog.Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}

func recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rvr := recover(); rvr != nil {
				if rvr == http.ErrAbortHandler {
					panic(rvr)
				}
				slog.Error("panic recovered",
					"panic", fmt.Sprint(rvr),
					"path", r.URL.Path,
					"request_id", middleware.GetReqID(r.Context()))
				writeError(w, r, http.StatusInternalServerError, ErrTypeInternal, "internal server error", nil)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
