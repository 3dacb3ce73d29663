// Package server exposes the operational HTTP API of the aggregator: status and AI health,
// on-demand ingestion and source administration.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"

	"github.com/marlendd/News-Aggregator/pkg/domain"
	"github.com/marlendd/News-Aggregator/pkg/repository"
	"github.com/marlendd/News-Aggregator/pkg/scheduler"
)

//go:generate moq -out mocks/config.go -pkg mocks -skip-ensure -fmt goimports . ConfigProvider
//go:generate moq -out mocks/store.go -pkg mocks -skip-ensure -fmt goimports . Store
//go:generate moq -out mocks/ingester.go -pkg mocks -skip-ensure -fmt goimports . Ingester
//go:generate moq -out mocks/health.go -pkg mocks -skip-ensure -fmt goimports . HealthManager
//go:generate moq -out mocks/ai.go -pkg mocks -skip-ensure -fmt goimports . AIStatus

// Server represents HTTP server instance
type Server struct {
	config   ConfigProvider
	store    Store
	ingester Ingester
	health   HealthManager
	ai       AIStatus
	version  string
	debug    bool

	lock       sync.Mutex
	httpServer *http.Server
	router     *routegroup.Bundle
	baseCtx    context.Context // parent of background ingestion runs
	bg         sync.WaitGroup
}

// Store provides read access to sources and articles
type Store interface {
	GetSource(ctx context.Context, id int64) (*domain.Source, error)
	ListSources(ctx context.Context, filter repository.SourceFilter) ([]domain.Source, error)
	ListArticles(ctx context.Context, filter repository.ArticleFilter) ([]domain.Article, error)
	CountByStatus(ctx context.Context) (map[domain.ArticleStatus]int, error)
}

// Ingester runs ingestion on demand and reports scheduler activity
type Ingester interface {
	IngestOne(ctx context.Context, id int64) (domain.RunStats, error)
	IngestAll(ctx context.Context) ([]domain.RunStats, error)
	Status() scheduler.Status
}

// HealthManager changes source health state on admin requests
type HealthManager interface {
	Reset(ctx context.Context, id int64) (*domain.Source, error)
	Toggle(ctx context.Context, id int64) (*domain.Source, error)
	Threshold() int
}

// AIStatus reports configuration and reachability of the AI endpoint
type AIStatus interface {
	IsConfigured() bool
	IsAvailable(ctx context.Context) bool
	AvailableModels(ctx context.Context) []string
}

// ConfigProvider provides server configuration
type ConfigProvider interface {
	GetServerConfig() (listen string, timeout time.Duration)
}

// Params holds server dependencies
type Params struct {
	Config   ConfigProvider
	Store    Store
	Ingester Ingester
	Health   HealthManager
	AI       AIStatus
	Version  string
	Debug    bool
}

// New initializes a new server instance
func New(p Params) *Server {
	s := &Server{
		config:   p.Config,
		store:    p.Store,
		ingester: p.Ingester,
		health:   p.Health,
		ai:       p.AI,
		version:  p.Version,
		debug:    p.Debug,
		router:   routegroup.New(http.NewServeMux()),
		baseCtx:  context.Background(),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Run starts the HTTP server and handles graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	listen, timeout := s.config.GetServerConfig()
	log.Printf("[INFO] starting server on %s", listen)

	s.lock.Lock()
	s.baseCtx = ctx
	s.httpServer = &http.Server{
		Addr:              listen,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       timeout,
		WriteTimeout:      timeout,
	}
	s.lock.Unlock()

	go func() {
		<-ctx.Done()
		log.Printf("[INFO] shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("[WARN] server shutdown error: %v", err)
		}
	}()

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}

	s.bg.Wait()
	return nil
}

// ServeHTTP makes the server usable as a handler, mostly for tests
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// setupMiddleware configures standard middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(rest.AppInfo("news-aggregator", "marlendd", s.version))
	s.router.Use(rest.Ping)

	if s.debug {
		s.router.Use(logger.New(logger.Log(lgr.Default()), logger.Prefix("[DEBUG]")).Handler)
	}

	s.router.Use(rest.Recoverer(lgr.Default()))
	s.router.Use(rest.Throttle(100))
	s.router.Use(rest.SizeLimit(64 * 1024))
}

// setupRoutes configures application routes
func (s *Server) setupRoutes() {
	s.router.Mount("/api/v1").Route(func(r *routegroup.Bundle) {
		r.HandleFunc("GET /status", s.statusHandler)
		r.HandleFunc("GET /ai/status", s.aiStatusHandler)

		r.HandleFunc("POST /ingest", s.ingestAllHandler)
		r.HandleFunc("GET /sources", s.listSourcesHandler)
		r.HandleFunc("POST /sources/{id}/ingest", s.ingestSourceHandler)
		r.HandleFunc("POST /sources/{id}/reset", s.resetSourceHandler)
		r.HandleFunc("POST /sources/{id}/toggle", s.toggleSourceHandler)

		r.HandleFunc("GET /articles", s.listArticlesHandler)
	})
}

// RenderJSON sends JSON response
func RenderJSON(w http.ResponseWriter, _ *http.Request, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("[ERROR] can't encode response to JSON: %v", err)
		}
	}
}

// RenderError sends error response as JSON
func RenderError(w http.ResponseWriter, r *http.Request, err error, code int) {
	errMsg := "unknown error"
	if err != nil {
		errMsg = err.Error()
	}
	RenderJSON(w, r, code, rest.JSON{"error": errMsg})
}
