// Package api serves rounds over HTTP.
//
// Routes:
//
//	GET    /healthz
//	POST   /api/rounds
//	GET    /api/rounds?limit=N
//	GET    /api/rounds/{id}
//	GET    /api/rounds/{id}/lanes/{lane}
//	GET    /api/rounds/{id}/ladder.svg?lane=N
//	DELETE /api/rounds/{id}
//
// Errors are JSON objects {"error": message, "code": code}. INVALID_* codes
// map to 400, ROUND_NOT_FOUND to 404 and everything else to 500.
package api

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/ghostleg/pkg/buildinfo"
	"github.com/matzehuels/ghostleg/pkg/errors"
	"github.com/matzehuels/ghostleg/pkg/ladder"
	"github.com/matzehuels/ghostleg/pkg/observability"
	"github.com/matzehuels/ghostleg/pkg/render"
	"github.com/matzehuels/ghostleg/pkg/round"
	"github.com/matzehuels/ghostleg/pkg/store"
)

// shutdownTimeout bounds how long in-flight requests may take after the
// server is asked to stop.
const shutdownTimeout = 5 * time.Second

// Defaults fill the fields a create request leaves out.
type Defaults struct {
	Rows     int
	MaxRungs int
	MaxLanes int
}

// Server is the HTTP front end of a round store.
type Server struct {
	store    store.Store
	defaults Defaults
	started  time.Time
	router   chi.Router
}

// New returns a Server backed by s.
func New(s store.Store, defaults Defaults) *Server {
	srv := &Server{store: s, defaults: defaults, started: time.Now()}
	srv.router = srv.routes()
	return srv
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(observe)

	r.Get("/healthz", s.health)
	r.Route("/api/rounds", func(r chi.Router) {
		r.Post("/", s.createRound)
		r.Get("/", s.listRounds)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.getRound)
			r.Delete("/", s.deleteRound)
			r.Get("/lanes/{lane}", s.getLane)
			r.Get("/ladder.svg", s.getSVG)
		})
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	hs := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(_ net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() { errCh <- hs.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		if err := hs.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// observe reports every request to the HTTP hooks, keyed by route pattern.
func observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		path := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			path = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		observability.HTTP().OnRequest(r.Context(), r.Method, path, status, time.Since(start))
	})
}

// =============================================================================
// Handlers
// =============================================================================

type healthResponse struct {
	Status  string         `json:"status"`
	Uptime  string         `json:"uptime"`
	Version buildinfo.Info `json:"version"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:  "ok",
		Uptime:  time.Since(s.started).Round(time.Second).String(),
		Version: buildinfo.Get(),
	})
}

// createRequest is the body of POST /api/rounds. Zero fields take the
// server defaults.
type createRequest struct {
	Names    []string `json:"names"`
	Results  []string `json:"results"`
	Rows     int      `json:"rows"`
	MaxRungs int      `json:"max_rungs"`
	Seed     uint64   `json:"seed"`
}

func (s *Server) createRound(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode request"))
		return
	}

	opts := round.Options{
		Names:    req.Names,
		Results:  req.Results,
		Rows:     s.defaults.Rows,
		MaxRungs: s.defaults.MaxRungs,
		MaxLanes: s.defaults.MaxLanes,
		Seed:     req.Seed,
	}
	if req.Rows != 0 {
		opts.Rows = req.Rows
	}
	if req.MaxRungs != 0 {
		opts.MaxRungs = req.MaxRungs
	}

	rd, err := round.New(r.Context(), opts)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := s.store.Put(r.Context(), rd); err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Location", "/api/rounds/"+rd.ID)
	writeJSON(w, http.StatusCreated, rd)
}

type listResponse struct {
	Rounds []store.Summary `json:"rounds"`
}

func (s *Server) listRounds(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, errors.New(errors.ErrCodeInvalidInput, "invalid limit %q", v))
			return
		}
		limit = n
	}

	rounds, err := s.store.List(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	if rounds == nil {
		rounds = []store.Summary{}
	}
	writeJSON(w, http.StatusOK, listResponse{Rounds: rounds})
}

func (s *Server) getRound(w http.ResponseWriter, r *http.Request) {
	rd, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rd)
}

type laneResponse struct {
	round.Outcome
	Path ladder.Path `json:"path"`
}

func (s *Server) getLane(w http.ResponseWriter, r *http.Request) {
	lane, err := strconv.Atoi(chi.URLParam(r, "lane"))
	if err != nil {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "invalid lane %q", chi.URLParam(r, "lane")))
		return
	}
	rd, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	o, err := rd.Outcome(lane)
	if err != nil {
		writeError(w, err)
		return
	}
	observability.Round().OnTrace(r.Context(), rd.ID, lane, o.Final)

	path, _ := rd.Path(lane)
	writeJSON(w, http.StatusOK, laneResponse{Outcome: o, Path: path})
}

func (s *Server) getSVG(w http.ResponseWriter, r *http.Request) {
	lane := render.NoLane
	if v := r.URL.Query().Get("lane"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, errors.New(errors.ErrCodeInvalidInput, "invalid lane %q", v))
			return
		}
		lane = n
	}

	rd, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	if lane != render.NoLane && (lane < 0 || lane >= rd.Lanes()) {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "lane %d out of range [0, %d)", lane, rd.Lanes()))
		return
	}

	svg, err := render.RenderSVG(r.Context(), render.ToDOT(rd, render.DOTOptions{Lane: lane}))
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	_, _ = w.Write(svg)
}

func (s *Server) deleteRound(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// Responses
// =============================================================================

type errorResponse struct {
	Error string      `json:"error"`
	Code  errors.Code `json:"code,omitempty"`
}

// statusOf maps an error code to an HTTP status.
func statusOf(err error) int {
	switch {
	case errors.IsInvalid(err):
		return http.StatusBadRequest
	case errors.Is(err, errors.ErrCodeRoundNotFound):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusOf(err), errorResponse{
		Error: errors.UserMessage(err),
		Code:  errors.GetCode(err),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
