package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/jwright-games/worldweaver/internal/storage"
	"github.com/jwright-games/worldweaver/pkg/llm"
	"github.com/jwright-games/worldweaver/pkg/locale"
	"github.com/jwright-games/worldweaver/pkg/world"
)

// CreateWorldRequest carries the seed for world generation. Name is the
// persistence key; generating under an existing name overwrites it.
type CreateWorldRequest struct {
	Name string      `json:"name"`
	Idea string      `json:"idea"`
	Lang locale.Lang `json:"lang,omitempty"`
}

type WorldListResponse struct {
	Worlds []string `json:"worlds"`
}

type WorldHandler struct {
	storage storage.Storage
	gen     llm.Generator
	logger  *slog.Logger
}

func NewWorldHandler(storage storage.Storage, gen llm.Generator, logger *slog.Logger) *WorldHandler {
	return &WorldHandler{
		storage: storage,
		gen:     gen,
		logger:  logger,
	}
}

// ServeHTTP handles world CRUD.
// Routes:
// POST /v1/worlds          - Generate and store a new world
// GET /v1/worlds           - List stored world names
// GET /v1/worlds/{name}    - Read a world
// DELETE /v1/worlds/{name} - Delete a world and its session
func (h *WorldHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	name := strings.Trim(strings.TrimPrefix(r.URL.Path, "/v1/worlds"), "/")

	switch r.Method {
	case http.MethodPost:
		if name != "" {
			writeError(w, h.logger, http.StatusBadRequest, "POST does not take a world name in the path")
			return
		}
		h.handleCreate(w, r)

	case http.MethodGet:
		if name == "" {
			h.handleList(w, r)
			return
		}
		h.handleRead(w, r, name)

	case http.MethodDelete:
		if name == "" {
			writeError(w, h.logger, http.StatusBadRequest, "World name is required for DELETE requests")
			return
		}
		h.handleDelete(w, r, name)

	default:
		writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func (h *WorldHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateWorldRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" {
		writeError(w, h.logger, http.StatusBadRequest, "World name is required")
		return
	}
	if req.Idea == "" {
		writeError(w, h.logger, http.StatusBadRequest, "World idea is required")
		return
	}

	wld, err := world.Generate(r.Context(), h.gen, req.Idea, req.Name, req.Lang)
	if err != nil {
		h.logger.Error("World generation failed", "world", req.Name, "error", err)
		writeError(w, h.logger, http.StatusBadGateway, "World generation failed")
		return
	}

	if err := h.storage.SaveWorld(r.Context(), wld); err != nil {
		h.logger.Error("Failed to save world", "world", req.Name, "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to save world")
		return
	}

	h.logger.Info("World created", "world", wld.Name, "lang", wld.Lang)
	writeJSON(w, h.logger, http.StatusCreated, wld)
}

func (h *WorldHandler) handleList(w http.ResponseWriter, r *http.Request) {
	names, err := h.storage.ListWorlds(r.Context())
	if err != nil {
		h.logger.Error("Failed to list worlds", "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to list worlds")
		return
	}
	writeJSON(w, h.logger, http.StatusOK, WorldListResponse{Worlds: names})
}

func (h *WorldHandler) handleRead(w http.ResponseWriter, r *http.Request, name string) {
	wld, err := h.storage.LoadWorld(r.Context(), name)
	if err != nil {
		h.logger.Error("Failed to load world", "world", name, "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to load world")
		return
	}
	if wld == nil {
		writeError(w, h.logger, http.StatusNotFound, "World not found")
		return
	}
	writeJSON(w, h.logger, http.StatusOK, wld)
}

func (h *WorldHandler) handleDelete(w http.ResponseWriter, r *http.Request, name string) {
	if err := h.storage.DeleteWorld(r.Context(), name); err != nil {
		h.logger.Error("Failed to delete world", "world", name, "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to delete world")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
