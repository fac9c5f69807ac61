package leads

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/wolfman30/leadgen-site/pkg/logging"
)

const (
	defaultListLimit = 50
	maxListLimit     = 100
)

// SessionEraser removes data a wizard session left outside the lead
// repository. captured holds the session's leads as they were before erasure.
type SessionEraser interface {
	EraseSession(ctx context.Context, sessionID string, captured []*Lead) error
}

// EraseFunc adapts a plain function to SessionEraser.
type EraseFunc func(ctx context.Context, sessionID string, captured []*Lead) error

// EraseSession calls f.
func (f EraseFunc) EraseSession(ctx context.Context, sessionID string, captured []*Lead) error {
	return f(ctx, sessionID, captured)
}

// Handler handles admin HTTP requests for captured leads
type Handler struct {
	repo    Repository
	erasers []SessionEraser
	logger  *logging.Logger
}

// NewHandler creates a new leads handler. Erasers run before the session's
// rows are deleted, so a failed erasure can be retried.
func NewHandler(repo Repository, logger *logging.Logger, erasers ...SessionEraser) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		repo:    repo,
		erasers: erasers,
		logger:  logger,
	}
}

// Routes mounts the admin lead endpoints.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ListLeads)
	r.Get("/{leadID}", h.GetLead)
	r.Delete("/sessions/{sessionID}", h.DeleteSessionLeads)
	return r
}

// ListLeadsResponse is the response for listing leads
type ListLeadsResponse struct {
	Leads  []*Lead `json:"leads"`
	Count  int     `json:"count"`
	Offset int     `json:"offset"`
	Limit  int     `json:"limit"`
}

// ListLeads handles GET /admin/leads requests
func (h *Handler) ListLeads(w http.ResponseWriter, r *http.Request) {
	filter := ListLeadsFilter{
		Limit:  defaultListLimit,
		Offset: 0,
		Tier:   r.URL.Query().Get("tier"),
	}

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit > 0 && limit <= maxListLimit {
			filter.Limit = limit
		}
	}

	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		if offset, err := strconv.Atoi(offsetStr); err == nil && offset >= 0 {
			filter.Offset = offset
		}
	}

	leads, err := h.repo.List(r.Context(), filter)
	if err != nil {
		h.logger.Error("failed to list leads", "error", err)
		http.Error(w, "failed to list leads", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, ListLeadsResponse{
		Leads:  leads,
		Count:  len(leads),
		Offset: filter.Offset,
		Limit:  filter.Limit,
	})
}

// GetLead handles GET /admin/leads/{leadID} requests
func (h *Handler) GetLead(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "leadID")
	lead, err := h.repo.GetByID(r.Context(), id)
	if errors.Is(err, ErrLeadNotFound) {
		http.Error(w, "lead not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.logger.Error("failed to get lead", "error", err, "lead_id", id)
		http.Error(w, "failed to get lead", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, lead)
}

// DeleteSessionLeads handles DELETE /admin/leads/sessions/{sessionID} erasure requests
func (h *Handler) DeleteSessionLeads(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID := chi.URLParam(r, "sessionID")

	if len(h.erasers) > 0 {
		captured, err := h.repo.List(ctx, ListLeadsFilter{SessionID: sessionID})
		if err != nil {
			h.logger.Error("failed to load session leads", "error", err, "session_id", sessionID)
			http.Error(w, "failed to delete leads", http.StatusInternalServerError)
			return
		}
		for _, eraser := range h.erasers {
			if err := eraser.EraseSession(ctx, sessionID, captured); err != nil {
				h.logger.Error("failed to erase session data", "error", err, "session_id", sessionID)
				http.Error(w, "failed to erase session data", http.StatusInternalServerError)
				return
			}
		}
	}

	deleted, err := h.repo.DeleteBySession(ctx, sessionID)
	if err != nil {
		h.logger.Error("failed to delete leads", "error", err, "session_id", sessionID)
		http.Error(w, "failed to delete leads", http.StatusInternalServerError)
		return
	}
	h.logger.Info("leads erased", "session_id", sessionID, "deleted", deleted)
	writeJSON(w, http.StatusOK, map[string]any{"session_id": sessionID, "deleted": deleted})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
