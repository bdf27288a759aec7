package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/jwright-games/worldweaver/internal/storage"
)

type HealthResponse struct {
	Status     string                 `json:"status"`
	Timestamp  time.Time              `json:"timestamp"`
	Service    string                 `json:"service"`
	Components map[string]interface{} `json:"components"`
}

type HealthHandler struct {
	storage storage.Storage
	logger  *slog.Logger
}

func NewHealthHandler(storage storage.Storage, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		storage: storage,
		logger:  logger,
	}
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodGet {
		writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	resp := HealthResponse{
		Status:     "ok",
		Timestamp:  time.Now().UTC(),
		Service:    "worldweaver",
		Components: make(map[string]interface{}),
	}

	status := http.StatusOK
	if err := h.storage.Ping(ctx); err != nil {
		h.logger.Error("Storage health check failed", "error", err)
		resp.Status = "degraded"
		resp.Components["storage"] = map[string]string{"status": "down", "error": err.Error()}
		status = http.StatusServiceUnavailable
	} else {
		resp.Components["storage"] = map[string]string{"status": "ok"}
	}

	writeJSON(w, h.logger, status, resp)
}
