package faq

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	httpmiddleware "github.com/wolfman30/leadgen-site/internal/http/middleware"
	"github.com/wolfman30/leadgen-site/internal/observability/metrics"
	"github.com/wolfman30/leadgen-site/pkg/logging"
)

const greeting = "Hi! I can answer common questions about our lead generation service. What would you like to know?"

// Handler serves the FAQ responder over HTTP and a websocket chat.
type Handler struct {
	responder *Responder
	metrics   *metrics.SiteMetrics
	logger    *logging.Logger
	upgrader  websocket.Upgrader
}

// NewHandler creates an FAQ handler. allowedOrigins limits websocket upgrades;
// empty allows any origin.
func NewHandler(responder *Responder, m *metrics.SiteMetrics, allowedOrigins []string, logger *logging.Logger) *Handler {
	if responder == nil {
		responder = NewResponder(nil)
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		responder: responder,
		metrics:   m,
		logger:    logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     httpmiddleware.NewOriginPolicy(allowedOrigins).CheckOrigin,
		},
	}
}

// Routes mounts the FAQ endpoints.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Post("/ask", h.Ask)
	r.Get("/chat", h.Chat)
	r.Get("/{id}", h.Get)
	return r
}

// List handles GET /faq
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"records": h.responder.Records()})
}

// Get handles GET /faq/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	rec, err := h.responder.Answer(chi.URLParam(r, "id"))
	if errors.Is(err, ErrRecordNotFound) {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

type askRequest struct {
	Query string `json:"query"`
}

// Ask handles POST /faq/ask. Unmatched queries still return 200 with the fallback.
func (h *Handler) Ask(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	resp := h.responder.Ask(req.Query)
	h.metrics.ObserveFAQ("http", resp.Matched)
	writeJSON(w, http.StatusOK, resp)
}

// ChatInbound is what the chat widget sends.
type ChatInbound struct {
	Type string `json:"type"` // "ask", "choose", "ping"
	Text string `json:"text,omitempty"`
	ID   string `json:"id,omitempty"`
}

// ChatOutbound is what the chat widget receives.
type ChatOutbound struct {
	Type     string   `json:"type"` // "greeting", "choices", "fallback", "answer", "pong", "error"
	Text     string   `json:"text,omitempty"`
	ID       string   `json:"id,omitempty"`
	Question string   `json:"question,omitempty"`
	Choices  []Choice `json:"choices,omitempty"`
}

// Chat handles GET /faq/chat, replaying the ask/choose exchange over a websocket.
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Debug("faq chat: upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	h.logger.Info("faq chat: connection opened", "remote_ip", r.RemoteAddr)
	if err := conn.WriteJSON(ChatOutbound{Type: "greeting", Text: greeting}); err != nil {
		return
	}

	for {
		var msg ChatInbound
		if err := conn.ReadJSON(&msg); err != nil {
			h.logger.Debug("faq chat: connection closed", "error", err)
			return
		}
		if err := conn.WriteJSON(h.reply(msg)); err != nil {
			h.logger.Debug("faq chat: write failed", "error", err)
			return
		}
	}
}

func (h *Handler) reply(msg ChatInbound) ChatOutbound {
	switch msg.Type {
	case "ping":
		return ChatOutbound{Type: "pong"}
	case "ask":
		resp := h.responder.Ask(msg.Text)
		h.metrics.ObserveFAQ("chat", resp.Matched)
		if !resp.Matched {
			return ChatOutbound{Type: "fallback", Text: resp.Fallback}
		}
		return ChatOutbound{Type: "choices", Choices: resp.Choices}
	case "choose":
		rec, err := h.responder.Answer(msg.ID)
		if err != nil {
			return ChatOutbound{Type: "fallback", Text: FallbackMessage}
		}
		return ChatOutbound{Type: "answer", ID: rec.ID, Question: rec.Question, Text: rec.Answer}
	default:
		return ChatOutbound{Type: "error", Text: "unsupported message type"}
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
