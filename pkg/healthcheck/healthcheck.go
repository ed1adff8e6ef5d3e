// Package healthcheck provides health and readiness check functionality
// Following the Health Check API pattern for cloud-native applications
package healthcheck

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Status represents the health status
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusUnhealthy Status = "unhealthy"
	StatusDegraded  Status = "degraded"
)

// Check represents a single health check result
type Check struct {
	Name        string        `json:"name"`
	Status      Status        `json:"status"`
	Message     string        `json:"message,omitempty"`
	LastChecked time.Time     `json:"last_checked"`
	Duration    time.Duration `json:"duration_ms"`
}

// Response represents the health check response
type Response struct {
	Status        Status        `json:"status"`
	Service       string        `json:"service"`
	Version       string        `json:"version"`
	Timestamp     time.Time     `json:"timestamp"`
	Checks        []Check       `json:"checks"`
	TotalDuration time.Duration `json:"total_duration_ms"`
}

// Checker defines the interface for health checks
type Checker interface {
	Check(ctx context.Context) Check
}

// HealthCheck manages health checks
type HealthCheck struct {
	service  string
	version  string
	logger   *zap.Logger
	mu       sync.RWMutex
	names    []string
	checkers map[string]Checker
	cache    *Response
	cacheTTL time.Duration
}

// New creates a new health check instance
func New(service, version string, logger *zap.Logger) *HealthCheck {
	return &HealthCheck{
		service:  service,
		version:  version,
		logger:   logger,
		checkers: make(map[string]Checker),
		cacheTTL: 5 * time.Second,
	}
}

// Register registers a health checker
func (h *HealthCheck) Register(name string, checker Checker) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.checkers[name]; !ok {
		h.names = append(h.names, name)
	}
	h.checkers[name] = checker
}

// Handler returns the HTTP handler for health checks
func (h *HealthCheck) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response := h.Check(r.Context())

		statusCode := http.StatusOK
		if response.Status == StatusUnhealthy {
			statusCode = http.StatusServiceUnavailable
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(statusCode)
		if err := json.NewEncoder(w).Encode(response); err != nil {
			h.logger.Error("Failed to encode health response", zap.Error(err))
		}
	}
}

// Check performs all registered checks, with a short-lived cache so
// aggressive orchestrator probing does not hammer dependencies.
func (h *HealthCheck) Check(ctx context.Context) Response {
	h.mu.RLock()
	if h.cache != nil && time.Since(h.cache.Timestamp) < h.cacheTTL {
		cached := *h.cache
		h.mu.RUnlock()
		return cached
	}
	h.mu.RUnlock()

	start := time.Now()
	response := Response{
		Status:    StatusHealthy,
		Service:   h.service,
		Version:   h.version,
		Timestamp: start,
		Checks:    []Check{},
	}

	h.mu.RLock()
	names := append([]string(nil), h.names...)
	checkers := make(map[string]Checker, len(h.checkers))
	for name, checker := range h.checkers {
		checkers[name] = checker
	}
	h.mu.RUnlock()

	for _, name := range names {
		check := checkers[name].Check(ctx)
		check.Name = name
		response.Checks = append(response.Checks, check)

		switch check.Status {
		case StatusUnhealthy:
			response.Status = StatusUnhealthy
		case StatusDegraded:
			if response.Status == StatusHealthy {
				response.Status = StatusDegraded
			}
		}
	}

	response.TotalDuration = time.Since(start)

	if response.Status != StatusHealthy {
		h.logger.Warn("Health check not healthy",
			zap.String("status", string(response.Status)),
			zap.Int("checks", len(response.Checks)),
		)
	}

	h.mu.Lock()
	h.cache = &response
	h.mu.Unlock()

	return response
}

// CheckerFunc adapts a function to the Checker interface
type CheckerFunc func(ctx context.Context) Check

// Check implements Checker
func (f CheckerFunc) Check(ctx context.Context) Check {
	return f(ctx)
}

// DatabaseChecker checks PostgreSQL connectivity
type DatabaseChecker struct {
	pool    *pgxpool.Pool
	timeout time.Duration
}

// NewDatabaseChecker creates a database health checker
func NewDatabaseChecker(pool *pgxpool.Pool) *DatabaseChecker {
	return &DatabaseChecker{pool: pool, timeout: 2 * time.Second}
}

// Check pings the database
func (d *DatabaseChecker) Check(ctx context.Context) Check {
	start := time.Now()
	check := Check{
		Status:      StatusHealthy,
		LastChecked: start,
	}

	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	if err := d.pool.Ping(ctx); err != nil {
		check.Status = StatusUnhealthy
		check.Message = err.Error()
	}

	check.Duration = time.Since(start) / time.Millisecond
	return check
}
