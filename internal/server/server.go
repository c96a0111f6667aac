// Package server exposes the layout pipeline and the column store over
// HTTP.
//
// Routes:
//
//	GET    /healthz                 build info
//	GET    /chrono                  reference table, or ?min=&max= overlap query
//	GET    /rocks                   rock types by category
//	POST   /layout                  layout model for a posted column
//	POST   /render                  rendered artifact for a posted column
//	GET    /columns                 stored column summaries
//	POST   /columns                 store a column under a new id
//	GET    /columns/{id}            stored column document
//	PUT    /columns/{id}            replace a stored column
//	DELETE /columns/{id}            delete a stored column
//	GET    /columns/{id}/layout     layout model of a stored column
//	GET    /columns/{id}/svg        SVG of a stored column
//
// Layout options for the GET routes come from the query string (mode,
// height, gaps, levels, env, from, to, title).
package server

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/vijaymanbajracharya/stratcol/pkg/observability"
	"github.com/vijaymanbajracharya/stratcol/pkg/pipeline"
	"github.com/vijaymanbajracharya/stratcol/pkg/store"
)

// Server serves the API. Create it with New.
type Server struct {
	runner   *pipeline.Runner
	store    store.Store
	logger   *log.Logger
	defaults pipeline.Options
	maxBody  int64
	router   chi.Router
}

// Option configures a Server.
type Option func(*Server)

// WithDefaults sets the options used when a request leaves a value unset.
func WithDefaults(o pipeline.Options) Option { return func(s *Server) { s.defaults = o } }

// WithMaxBodyBytes limits request bodies (default 4 MiB).
func WithMaxBodyBytes(n int64) Option { return func(s *Server) { s.maxBody = n } }

// New builds the router. runner and st are required.
func New(runner *pipeline.Runner, st store.Store, logger *log.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		runner:  runner,
		store:   st,
		logger:  logger,
		maxBody: 4 << 20,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.router = s.routes()
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/healthz", s.handleHealth)
	r.Get("/chrono", s.handleChrono)
	r.Get("/rocks", s.handleRocks)
	r.Post("/layout", s.handleLayout)
	r.Post("/render", s.handleRender)

	r.Route("/columns", func(r chi.Router) {
		r.Get("/", s.handleListColumns)
		r.Post("/", s.handleCreateColumn)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetColumn)
			r.Put("/", s.handlePutColumn)
			r.Delete("/", s.handleDeleteColumn)
			r.Get("/layout", s.handleColumnLayout)
			r.Get("/svg", s.handleColumnSVG)
		})
	})
	return r
}

// observe reports each request to the HTTP hooks under its route pattern,
// which chi only knows once routing has run.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		hooks := observability.HTTP()
		hooks.OnRequest(r.Context(), r.Method, route)
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		hooks.OnResponse(r.Context(), r.Method, route, status, time.Since(start))
	})
}

// Timeouts configures ListenAndServe.
type Timeouts struct {
	Read     time.Duration
	Write    time.Duration
	Shutdown time.Duration
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string, t Timeouts) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  t.Read,
		WriteTimeout: t.Write,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdown := t.Shutdown
	if shutdown <= 0 {
		shutdown = 10 * time.Second
	}
	sctx, cancel := context.WithTimeout(context.Background(), shutdown)
	defer cancel()
	s.logger.Info("shutting down")
	return srv.Shutdown(sctx)
}
