// Package server provides the HTTP server for the pantry API
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/despensa/v1/internal/infrastructure/config"
	"github.com/despensa/v1/internal/infrastructure/http/handlers"
	"github.com/despensa/v1/internal/infrastructure/http/middleware"
	"github.com/despensa/v1/internal/infrastructure/monitoring"
	"github.com/despensa/v1/internal/ports/inbound"
	"github.com/despensa/v1/pkg/healthcheck"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Server represents the HTTP server
type Server struct {
	config        *config.Config
	logger        *zap.Logger
	router        *chi.Mux
	server        *http.Server
	pantryService inbound.PantryService
	metrics       *monitoring.MetricsCollector
	health        *healthcheck.HealthCheck
}

// NewServer creates a new HTTP server instance
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	pantryService inbound.PantryService,
	metrics *monitoring.MetricsCollector,
	health *healthcheck.HealthCheck,
) *Server {
	s := &Server{
		config:        cfg,
		logger:        logger,
		pantryService: pantryService,
		metrics:       metrics,
		health:        health,
	}

	s.router = s.setupRouter()

	s.server = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           s.router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1 MB
	}

	return s
}

// setupRouter configures the HTTP router with middleware and routes
func (s *Server) setupRouter() *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(s.logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Security())
	r.Use(middleware.CORS())
	r.Use(chimiddleware.Timeout(30 * time.Second))
	r.Use(chimiddleware.Compress(5))

	r.Get("/health", s.health.Handler())
	r.Handle("/metrics", promhttp.Handler())

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		s.setupAPIRoutes(r)
	})

	return r
}

// setupAPIRoutes configures REST API routes
func (s *Server) setupAPIRoutes(r chi.Router) {
	h := handlers.NewPantryAPIHandlers(s.pantryService, s.metrics, s.logger)

	r.Route("/pantry", func(r chi.Router) {
		r.Get("/", h.ListStock)
		r.Post("/items", h.AddItem)
		r.Delete("/items/{id}", h.RemoveItem)
		r.Post("/reconcile", h.Reconcile)
		r.Post("/consume", h.Consume)
	})

	r.Route("/planner", func(r chi.Router) {
		r.Post("/shopping-needs", h.ShoppingNeeds)
	})
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info("Starting HTTP server",
		zap.String("address", s.server.Addr),
		zap.String("environment", s.config.App.Environment),
	)

	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}
