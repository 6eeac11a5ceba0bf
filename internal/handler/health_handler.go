package handler

import (
	"context"
	"net/http"
	"time"

	"travely-api/internal/container"
)

// HealthHandler handles health check requests
type HealthHandler struct {
	container *container.Container
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(c *container.Container) *HealthHandler {
	return &HealthHandler{container: c}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Service   string            `json:"service"`
	Checks    map[string]string `json:"checks"`
}

// Check handles GET /health
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	log := h.container.Logger

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	checks := map[string]string{"mongo": "ok", "redis": "ok"}
	status := http.StatusOK

	if err := h.container.MongoClient.Ping(ctx, nil); err != nil {
		log.WithError(err).Error("Mongo health check failed")
		checks["mongo"] = "unavailable"
		status = http.StatusServiceUnavailable
	}
	if err := h.container.RedisClient.Health(ctx); err != nil {
		log.WithError(err).Error("Redis health check failed")
		checks["redis"] = "unavailable"
		status = http.StatusServiceUnavailable
	}

	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Service:   "travely-api",
		Checks:    checks,
	}
	if status != http.StatusOK {
		response.Status = "degraded"
	}

	respondJSON(w, status, response, log)
}
