// internal/httpserver/server.go
//
// HTTP server wiring for the Mastermind backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs, access log).
//   - Public endpoints: "/", "/health", "/alphabets".
//   - Game endpoints (optional auth): /game/new, /game/secret, /game/guess, /game/{id}.
//   - Daily Challenge endpoints (optional auth, DB only): mounted under /daily.
//   - Auth + stats endpoints (DB only): /auth/*, /stats/me.
//
// Notes:
//   - Sessions live in the injected store; every move on a session goes
//     through store.Update so concurrent requests on one game are serialized.
//   - With a nil *sql.DB the server still plays games; accounts and daily
//     challenge routes are simply not mounted.

package httpserver

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/mastermind/internal/game"
	"github.com/robalobadob/mastermind/internal/palette"
	"github.com/robalobadob/mastermind/internal/store"
)

const maxBodyBytes = 64 << 10

// Server bundles router, session store, palette and DB handle.
type Server struct {
	r       *chi.Mux
	store   store.Store
	db      *sql.DB
	palette *palette.Palette
	source  func() game.Source // random source for solver secrets
	now     func() time.Time
}

// Option customizes a Server.
type Option func(*Server)

// WithSource overrides the random source used for solver-mode secrets.
func WithSource(fn func() game.Source) Option {
	return func(s *Server) { s.source = fn }
}

// WithClock overrides time.Now (daily challenge dates).
func WithClock(fn func() time.Time) Option {
	return func(s *Server) { s.now = fn }
}

// New constructs a Server, installs middleware, and registers routes.
func New(st store.Store, db *sql.DB, pal *palette.Palette, opts ...Option) *Server {
	s := &Server{
		r:       chi.NewRouter(),
		store:   st,
		db:      db,
		palette: pal,
		source:  func() game.Source { return game.CryptoSource{} },
		now:     time.Now,
	}
	for _, o := range opts {
		o(s)
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(hlog.NewHandler(log.Logger))     // request-scoped logger
	s.r.Use(accessLog)                       // one line per request
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(chimw.RequestSize(maxBodyBytes)) // bound request bodies
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(corsFromEnv)                     // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"service":   "mastermind-go",
			"endpoints": []string{"/health", "/alphabets", "POST /game/new", "POST /game/secret", "POST /game/guess", "GET /game/{id}"},
		})
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "sessions": s.store.Len()})
	})
	s.r.Get("/alphabets", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, s.palette.Describe())
	})

	// Game endpoints — OPTIONAL AUTH (guests can play)
	s.r.Group(func(r chi.Router) {
		r.Use(s.withOptionalAuth())
		r.Post("/game/new", s.handleNewGame)
		r.Post("/game/secret", s.handleSetSecret)
		r.Post("/game/guess", s.handleGuess)
		r.Get("/game/{id}", s.handleGetGame)
		r.Delete("/game/{id}", s.handleDeleteGame)
	})

	if s.db != nil {
		// Daily Challenge — OPTIONAL AUTH (guests can play; result persisted on win)
		s.mountDaily(s.r.With(s.withOptionalAuth()))
		// Auth + stats
		s.mountAuthRoutes()
	}

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorRes{Error: "not_found", Detail: r.URL.Path})
	})

	return s
}

// Router exposes the internal router (used by main and tests).
func (s *Server) Router() chi.Router { return s.r }

// Start serves on addr until ctx is done, then drains in-flight requests.
func (s *Server) Start(ctx context.Context, addr string) error {
	hs := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- hs.ListenAndServe() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	log.Info().Msg("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := hs.Shutdown(sctx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// accessLog writes one structured line per request.
var accessLog = hlog.AccessHandler(func(r *http.Request, status, size int, d time.Duration) {
	hlog.FromRequest(r).Info().
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Str("reqId", chimw.GetReqID(r.Context())).
		Int("status", status).
		Int("size", size).
		Dur("duration", d).
		Msg("request")
})

// corsFromEnv enables credentialed CORS for a single origin.
// Uses CLIENT_ORIGIN env var; defaults to http://localhost:5173.
func corsFromEnv(next http.Handler) http.Handler {
	origin := getEnv("CLIENT_ORIGIN", "http://localhost:5173")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,DELETE,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ------------------------------- replies -----------------------------------

type errorRes struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("encode response")
	}
}

// writeError maps domain errors to HTTP statuses.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, game.ErrInvalidInput):
		writeJSON(w, http.StatusBadRequest, errorRes{Error: "invalid_input", Detail: err.Error()})
	case errors.Is(err, game.ErrInvalidState):
		writeJSON(w, http.StatusConflict, errorRes{Error: "invalid_state", Detail: err.Error()})
	case errors.Is(err, store.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorRes{Error: "not_found"})
	default:
		hlog.FromRequest(r).Error().Err(err).Msg("request failed")
		writeJSON(w, http.StatusInternalServerError, errorRes{Error: "internal"})
	}
}

func badJSON(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusBadRequest, errorRes{Error: "bad_json", Detail: err.Error()})
}

// ------------------------------- small util --------------------------------

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
