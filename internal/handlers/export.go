package handlers

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/jwright-games/worldweaver/internal/storage"
	"github.com/jwright-games/worldweaver/pkg/adventure"
	"github.com/jwright-games/worldweaver/pkg/export"
	"github.com/jwright-games/worldweaver/pkg/llm"
)

type SummaryResponse struct {
	World   string `json:"world"`
	Summary string `json:"summary"`
}

type ExportHandler struct {
	storage storage.Storage
	gen     llm.Generator
	logger  *slog.Logger
}

func NewExportHandler(storage storage.Storage, gen llm.Generator, logger *slog.Logger) *ExportHandler {
	return &ExportHandler{
		storage: storage,
		gen:     gen,
		logger:  logger,
	}
}

// ServeHTTP handles adventure exports.
// Routes:
// GET /v1/export/{name}/summary - Chronicle the adventure as prose
// GET /v1/export/{name}/pdf     - Download the adventure artbook
func (h *ExportHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Content-Type", "application/json")
		writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	path := strings.Trim(strings.TrimPrefix(r.URL.Path, "/v1/export"), "/")
	parts := strings.SplitN(path, "/", 2)
	if len(parts) != 2 || parts[0] == "" {
		w.Header().Set("Content-Type", "application/json")
		writeError(w, h.logger, http.StatusBadRequest, "World name and export format are required")
		return
	}
	name, format := parts[0], parts[1]

	sess, err := h.storage.LoadSession(r.Context(), name)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		h.logger.Error("Failed to load session", "world", name, "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to load session")
		return
	}
	if sess == nil {
		w.Header().Set("Content-Type", "application/json")
		writeError(w, h.logger, http.StatusNotFound, "Adventure not found")
		return
	}

	switch format {
	case "summary":
		h.handleSummary(w, r, sess)
	case "pdf":
		h.handlePDF(w, sess)
	default:
		w.Header().Set("Content-Type", "application/json")
		writeError(w, h.logger, http.StatusNotFound, "Unknown export format")
	}
}

func (h *ExportHandler) handleSummary(w http.ResponseWriter, r *http.Request, sess *adventure.Session) {
	w.Header().Set("Content-Type", "application/json")

	summary, err := export.Summarize(r.Context(), h.gen, sess)
	if err != nil {
		h.logger.Error("Failed to summarize adventure", "world", sess.World.Name, "error", err)
		writeError(w, h.logger, http.StatusBadGateway, "Failed to summarize adventure")
		return
	}

	writeJSON(w, h.logger, http.StatusOK, SummaryResponse{
		World:   sess.World.Name,
		Summary: summary,
	})
}

func (h *ExportHandler) handlePDF(w http.ResponseWriter, sess *adventure.Session) {
	var buf bytes.Buffer
	if err := export.PDF(&buf, sess); err != nil {
		w.Header().Set("Content-Type", "application/json")
		h.logger.Error("Failed to render pdf", "world", sess.World.Name, "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to render pdf")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", sess.World.Name+".pdf"))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", buf.Len()))
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Error("Failed to write pdf response", "world", sess.World.Name, "error", err)
	}
}
