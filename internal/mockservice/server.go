// Package mockservice is an in-memory stand-in for the remote download
// service. It implements every endpoint the client consumes, in either
// response mode, and stores fake artifacts under a directory.
package mockservice

import (
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/elsanchez/bakraload/internal/domain"
)

// Config configures a Service.
type Config struct {
	Mode domain.ResponseMode
	// Dir holds the artifact store. Created if missing.
	Dir string
	// FailMarker makes any URL containing it fail with a logical error.
	FailMarker string
	Logger     *slog.Logger
}

// Service is the fake download service.
type Service struct {
	mode       domain.ResponseMode
	dir        string
	failMarker string
	logger     *slog.Logger

	mu    sync.Mutex
	calls map[string]int
}

// New creates the service and its artifact directory.
func New(cfg Config) (*Service, error) {
	if cfg.Mode == "" {
		cfg.Mode = domain.ModeJSON
	}
	if cfg.FailMarker == "" {
		cfg.FailMarker = "fail"
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if err := os.MkdirAll(cfg.Dir, 0755); err != nil {
		return nil, err
	}

	return &Service{
		mode:       cfg.Mode,
		dir:        cfg.Dir,
		failMarker: cfg.FailMarker,
		logger:     cfg.Logger,
		calls:      make(map[string]int),
	}, nil
}

// Handler returns the router with every endpoint mounted.
func (s *Service) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)
	r.Use(s.countCalls)

	r.Post("/download", s.handleDownload)
	r.Post("/bulk-download", s.handleBulkDownload)
	r.Get("/downloads", s.handleList)
	r.Get("/download-file/{name}", s.handleFile)
	r.Get("/download-folder/{name}", s.handleFolder)
	r.Post("/clear-downloads", s.handleClear)
	r.Get("/supported-platforms", s.handlePlatforms)

	return r
}

// Calls returns how many requests hit "METHOD /path-pattern".
func (s *Service) Calls(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[key]
}

// TotalCalls returns the number of requests served.
func (s *Service) TotalCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0
	for _, n := range s.calls {
		total += n
	}
	return total
}

func (s *Service) countCalls(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r)

		pattern := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			pattern = rctx.RoutePattern()
		}

		s.mu.Lock()
		s.calls[r.Method+" "+pattern]++
		s.mu.Unlock()
	})
}

func (s *Service) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		s.logger.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"size", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", r.Header.Get("X-Request-ID"),
		)
	})
}
