package wizard

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/wolfman30/leadgen-site/pkg/logging"
)

// Handler exposes the wizard over HTTP.
type Handler struct {
	service *Service
	logger  *logging.Logger
	now     func() time.Time
}

// NewHandler creates a wizard handler.
func NewHandler(service *Service, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		service: service,
		logger:  logger,
		now:     time.Now,
	}
}

// Routes mounts the wizard endpoints.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/tiers", h.ListTiers)
	r.Get("/calendar", h.Calendar)
	r.Post("/sessions", h.StartSession)
	r.Route("/sessions/{sessionID}", func(r chi.Router) {
		r.Get("/", h.GetSession)
		r.Post("/steps/{step}", h.SubmitStep)
		r.Post("/tier", h.SelectTier)
		r.Post("/tier/change", h.ChangeTier)
		r.Post("/slot", h.SelectSlot)
		r.Get("/confirmation", h.GetConfirmation)
	})
	return r
}

// StartSession handles POST /wizard/sessions
func (h *Handler) StartSession(w http.ResponseWriter, r *http.Request) {
	state, err := h.service.Start(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, state)
}

// GetSession handles GET /wizard/sessions/{sessionID}
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	state, err := h.service.Get(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// SubmitStep handles POST /wizard/sessions/{sessionID}/steps/{step}
func (h *Handler) SubmitStep(w http.ResponseWriter, r *http.Request) {
	step, err := ParseStep(chi.URLParam(r, "step"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	answers, err := decodeAnswers(r)
	if err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	state, err := h.service.Submit(r.Context(), chi.URLParam(r, "sessionID"), step, answers)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

type selectTierRequest struct {
	Tier string `json:"tier"`
}

// SelectTier handles POST /wizard/sessions/{sessionID}/tier
func (h *Handler) SelectTier(w http.ResponseWriter, r *http.Request) {
	var req selectTierRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	state, err := h.service.SelectTier(r.Context(), chi.URLParam(r, "sessionID"), req.Tier)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// ChangeTier handles POST /wizard/sessions/{sessionID}/tier/change
func (h *Handler) ChangeTier(w http.ResponseWriter, r *http.Request) {
	state, err := h.service.ChangeTier(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// GetConfirmation handles GET /wizard/sessions/{sessionID}/confirmation
func (h *Handler) GetConfirmation(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Confirmation(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// ListTiers handles GET /wizard/tiers
func (h *Handler) ListTiers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"tiers": Tiers()})
}

// Calendar handles GET /wizard/calendar?month=YYYY-MM
func (h *Handler) Calendar(w http.ResponseWriter, r *http.Request) {
	month := h.now()
	if raw := r.URL.Query().Get("month"); raw != "" {
		parsed, err := time.Parse("2006-01", raw)
		if err != nil {
			http.Error(w, "month must be YYYY-MM", http.StatusBadRequest)
			return
		}
		month = parsed
	}
	writeJSON(w, http.StatusOK, MonthGrid(month))
}

type slotRequest struct {
	Date string `json:"date"`
	Slot string `json:"slot"`
}

// SelectSlot handles POST /wizard/sessions/{sessionID}/slot. The selection is
// echoed back and never stored.
func (h *Handler) SelectSlot(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if _, err := h.service.Get(r.Context(), sessionID); err != nil {
		h.writeError(w, err)
		return
	}
	var req slotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	selection, err := SelectSlot(req.Date, req.Slot)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, selection)
}

// decodeAnswers accepts either a JSON object of strings or an HTML form post.
func decodeAnswers(r *http.Request) (Answers, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
		if err := r.ParseForm(); err != nil {
			return nil, err
		}
		answers := Answers{}
		for k, v := range r.PostForm {
			if len(v) > 0 {
				answers[k] = v[0]
			}
		}
		return answers, nil
	}
	var body struct {
		Answers Answers `json:"answers"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return nil, err
	}
	if body.Answers == nil {
		body.Answers = Answers{}
	}
	return body.Answers, nil
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("wizard request failed", "error", err)
		http.Error(w, "internal error", status)
		return
	}
	http.Error(w, err.Error(), status)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUnknownStep),
		errors.Is(err, ErrUnknownTier),
		errors.Is(err, ErrMissingField),
		errors.Is(err, ErrUnknownSlot):
		return http.StatusBadRequest
	case errors.Is(err, ErrStepMismatch),
		errors.Is(err, ErrTierLocked),
		errors.Is(err, ErrWizardComplete),
		errors.Is(err, ErrNotConfirmed):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
