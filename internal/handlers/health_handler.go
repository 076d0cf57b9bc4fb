package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"finance-tracker/internal/errors"
	"finance-tracker/internal/kvstore"

	"github.com/labstack/echo/v4"
)

const healthCheckTimeout = 2 * time.Second

// HealthCheckHandler handles the health check endpoint
type HealthCheckHandler struct {
	storage kvstore.HealthChecker
	backend string
}

// NewHealthCheckHandler creates a new health check handler for the given storage backend
func NewHealthCheckHandler(storage kvstore.HealthChecker, backend string) *HealthCheckHandler {
	return &HealthCheckHandler{storage: storage, backend: backend}
}

// HealthCheck reports whether the storage backend is reachable
func (h *HealthCheckHandler) HealthCheck(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), healthCheckTimeout)
	defer cancel()

	if err := h.storage.Ping(ctx); err != nil {
		slog.Warn("health check failed", "backend", h.backend, "error", err)
		traceID := getTraceIDFromContext(c)
		errorResponse := errors.NewErrorResponse(
			errors.SystemServiceUnavailable,
			traceID,
			errors.WithDetails("Storage backend unreachable"),
		)
		return c.JSON(http.StatusServiceUnavailable, errorResponse)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"storage": h.backend,
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

// Helper to get trace ID from context
func getTraceIDFromContext(c echo.Context) string {
	traceID := c.Response().Header().Get("X-Trace-ID")
	if traceID == "" {
		if tid, ok := c.Get(TraceIDContextKey).(string); ok {
			traceID = tid
		}
	}
	if traceID == "" {
		traceID = "unknown"
	}
	return traceID
}
