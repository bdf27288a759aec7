package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/jwright-games/worldweaver/internal/storage"
	"github.com/jwright-games/worldweaver/pkg/adventure"
	"github.com/jwright-games/worldweaver/pkg/world"
)

type TurnRequest struct {
	Input string `json:"input"`
}

type TurnResponse struct {
	Session *adventure.Session `json:"session"`
	Event   *adventure.Event   `json:"event,omitempty"`
}

type AdventureHandler struct {
	storage   storage.Storage
	orch      *adventure.Orchestrator
	storyMode world.ProgressMode
	logger    *slog.Logger
}

func NewAdventureHandler(storage storage.Storage, orch *adventure.Orchestrator, storyMode world.ProgressMode, logger *slog.Logger) *AdventureHandler {
	return &AdventureHandler{
		storage:   storage,
		orch:      orch,
		storyMode: storyMode,
		logger:    logger,
	}
}

// ServeHTTP handles adventure play.
// Routes:
// POST /v1/adventure/{name}/start - Begin the adventure for a world
// POST /v1/adventure/{name}/turn  - Play one round
// GET /v1/adventure/{name}        - Read the current session
// DELETE /v1/adventure/{name}     - Discard the session
func (h *AdventureHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	path := strings.Trim(strings.TrimPrefix(r.URL.Path, "/v1/adventure"), "/")
	parts := strings.SplitN(path, "/", 2)
	name := parts[0]
	verb := ""
	if len(parts) == 2 {
		verb = parts[1]
	}

	if name == "" {
		writeError(w, h.logger, http.StatusBadRequest, "World name is required")
		return
	}

	switch {
	case r.Method == http.MethodPost && verb == "start":
		h.handleStart(w, r, name)
	case r.Method == http.MethodPost && verb == "turn":
		h.handleTurn(w, r, name)
	case r.Method == http.MethodGet && verb == "":
		h.handleRead(w, r, name)
	case r.Method == http.MethodDelete && verb == "":
		h.handleDelete(w, r, name)
	default:
		writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func (h *AdventureHandler) handleStart(w http.ResponseWriter, r *http.Request, name string) {
	existing, err := h.storage.LoadSession(r.Context(), name)
	if err != nil {
		h.logger.Error("Failed to load session", "world", name, "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to load session")
		return
	}
	if existing != nil && existing.Status() != adventure.StatusNotStarted {
		writeError(w, h.logger, http.StatusConflict, "Adventure has already started")
		return
	}

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

	// Progress mode is fixed at session creation and never changes
	// mid-adventure.
	if h.storyMode == world.ModeNodes {
		wld.UseNodeGraph()
	}

	sess := adventure.NewSession(wld)
	if err := h.orch.Start(r.Context(), sess); err != nil {
		h.logger.Error("Failed to start adventure", "world", name, "error", err)
		writeError(w, h.logger, http.StatusBadGateway, "Failed to start adventure")
		return
	}

	if err := h.saveAll(r, sess); err != nil {
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to save session")
		return
	}

	h.logger.Info("Adventure started", "world", name, "mode", wld.Adventure.Mode)
	writeJSON(w, h.logger, http.StatusCreated, TurnResponse{Session: sess})
}

func (h *AdventureHandler) handleTurn(w http.ResponseWriter, r *http.Request, name string) {
	var req TurnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Input) == "" {
		writeError(w, h.logger, http.StatusBadRequest, "Player input is required")
		return
	}

	sess, err := h.storage.LoadSession(r.Context(), name)
	if err != nil {
		h.logger.Error("Failed to load session", "world", name, "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to load session")
		return
	}
	if sess == nil {
		writeError(w, h.logger, http.StatusNotFound, "Adventure not found")
		return
	}

	event, err := h.orch.NextRound(r.Context(), sess, req.Input)
	if err != nil {
		switch {
		case errors.Is(err, adventure.ErrInvalidChoice):
			writeError(w, h.logger, http.StatusUnprocessableEntity, "Input does not match any branch option")
		case errors.Is(err, adventure.ErrFinished):
			writeError(w, h.logger, http.StatusConflict, "Adventure is finished")
		case errors.Is(err, adventure.ErrNotStarted):
			writeError(w, h.logger, http.StatusConflict, "Adventure has not started")
		default:
			h.logger.Error("Turn failed", "world", name, "error", err)
			writeError(w, h.logger, http.StatusBadGateway, "Turn failed")
		}
		return
	}

	if err := h.saveAll(r, sess); err != nil {
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to save session")
		return
	}

	writeJSON(w, h.logger, http.StatusOK, TurnResponse{Session: sess, Event: event})
}

func (h *AdventureHandler) handleRead(w http.ResponseWriter, r *http.Request, name string) {
	sess, err := h.storage.LoadSession(r.Context(), name)
	if err != nil {
		h.logger.Error("Failed to load session", "world", name, "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to load session")
		return
	}
	if sess == nil {
		writeError(w, h.logger, http.StatusNotFound, "Adventure not found")
		return
	}
	writeJSON(w, h.logger, http.StatusOK, sess)
}

func (h *AdventureHandler) handleDelete(w http.ResponseWriter, r *http.Request, name string) {
	if err := h.storage.DeleteSession(r.Context(), name); err != nil {
		h.logger.Error("Failed to delete session", "world", name, "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to delete session")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// saveAll persists both the session and its embedded world so a fresh
// LoadWorld sees disclosure and relationship changes.
func (h *AdventureHandler) saveAll(r *http.Request, sess *adventure.Session) error {
	if err := h.storage.SaveWorld(r.Context(), sess.World); err != nil {
		h.logger.Error("Failed to save world", "world", sess.World.Name, "error", err)
		return err
	}
	if err := h.storage.SaveSession(r.Context(), sess); err != nil {
		h.logger.Error("Failed to save session", "world", sess.World.Name, "error", err)
		return err
	}
	return nil
}
