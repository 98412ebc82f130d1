// Package server exposes composition generation and the image gallery over
// HTTP.
//
// Routes:
//
//	GET  /healthz
//	GET  /version
//	GET  /api/v1/templates
//	GET  /api/v1/compositions.{png|svg|json}?template=&seed=&width=&height=&scale=
//	GET  /api/v1/gallery?limit=
//	POST /api/v1/gallery?template=&seed=&width=&height=&scale=
//	GET  /api/v1/gallery/{id}
//	GET  /api/v1/gallery/{id}.png
//
// Errors are JSON objects {"code", "message"}.
package server

import (
	"context"
	stderrors "errors"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/kozu/pkg/buildinfo"
	"github.com/matzehuels/kozu/pkg/gallery"
	"github.com/matzehuels/kozu/pkg/pipeline"
)

// Response headers describing a generated composition.
const (
	HeaderTemplate = "X-Kozu-Template"
	HeaderSeed     = "X-Kozu-Seed"
	HeaderCache    = "X-Kozu-Cache"
)

const shutdownTimeout = 10 * time.Second

// Config holds listener settings.
type Config struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Server serves the kozu HTTP API.
type Server struct {
	runner *pipeline.Runner
	store  gallery.Store
	logger *log.Logger
	router chi.Router
}

// New creates a server backed by runner and store. A nil store uses an
// in-memory gallery.
func New(runner *pipeline.Runner, store gallery.Store, logger *log.Logger) *Server {
	if store == nil {
		store = gallery.NewMemoryStore()
	}
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{runner: runner, store: store, logger: logger}
	s.router = s.routes()
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(instrument)
	r.Use(middleware.SetHeader("Server", buildinfo.UserAgent()))

	r.Get("/healthz", s.handleHealth)
	r.Get("/version", s.handleVersion)
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/templates", s.handleTemplates)
		r.Get("/compositions.{format}", s.handleComposition)
		r.Route("/gallery", func(r chi.Router) {
			r.Get("/", s.handleGalleryList)
			r.Post("/", s.handleGalleryCreate)
			r.Get("/{ref}", s.handleGalleryGet)
		})
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, notFoundError(r.URL.Path))
	})
	return r
}

// Run listens on cfg.Addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context, cfg Config) error {
	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		BaseContext:  func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// Close releases the gallery store.
func (s *Server) Close() error {
	return s.store.Close()
}
