package calculator

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/wolfman30/leadgen-site/internal/observability/metrics"
	"github.com/wolfman30/leadgen-site/pkg/logging"
)

// Handler serves the calculator over HTTP.
type Handler struct {
	metrics *metrics.SiteMetrics
	logger  *logging.Logger
}

// NewHandler creates a calculator handler.
func NewHandler(m *metrics.SiteMetrics, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{metrics: m, logger: logger}
}

// Get handles GET /calculator?visitors=&deal_value=&conversion_rate=&improved_rate=
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	in := DefaultInputs()
	q := r.URL.Query()
	params := []struct {
		name string
		dst  *float64
	}{
		{"visitors", &in.Visitors},
		{"deal_value", &in.DealValue},
		{"conversion_rate", &in.ConversionRate},
		{"improved_rate", &in.ImprovedRate},
	}
	for _, p := range params {
		raw := q.Get(p.name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			http.Error(w, p.name+" must be a number", http.StatusBadRequest)
			return
		}
		if !isFinite(v) {
			http.Error(w, p.name+" must be a finite number", http.StatusBadRequest)
			return
		}
		*p.dst = v
	}
	h.respond(w, in)
}

type computeRequest struct {
	Visitors       *float64 `json:"visitors"`
	DealValue      *float64 `json:"deal_value"`
	ConversionRate *float64 `json:"conversion_rate"`
	ImprovedRate   *float64 `json:"improved_rate"`
}

// Post handles POST /calculator. Omitted fields keep their defaults.
func (h *Handler) Post(w http.ResponseWriter, r *http.Request) {
	var req computeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Debug("failed to decode calculator request", "error", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	in := DefaultInputs()
	if req.Visitors != nil {
		in.Visitors = *req.Visitors
	}
	if req.DealValue != nil {
		in.DealValue = *req.DealValue
	}
	if req.ConversionRate != nil {
		in.ConversionRate = *req.ConversionRate
	}
	if req.ImprovedRate != nil {
		in.ImprovedRate = *req.ImprovedRate
	}
	if !in.Finite() {
		http.Error(w, "inputs must be finite numbers", http.StatusBadRequest)
		return
	}
	h.respond(w, in)
}

func (h *Handler) respond(w http.ResponseWriter, in Inputs) {
	result := Compute(in)
	if !result.Finite() {
		h.logger.Debug("calculator result out of range", "inputs", in)
		http.Error(w, "inputs produce a result out of range", http.StatusBadRequest)
		return
	}
	body, err := json.Marshal(result)
	if err != nil {
		h.logger.Error("failed to encode calculator result", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	h.metrics.ObserveCalculation()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(append(body, '\n')); err != nil {
		h.logger.Debug("failed to write calculator response", "error", err)
	}
}
