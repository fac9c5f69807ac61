package faq

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/wolfman30/leadgen-site/internal/observability/metrics"
	"github.com/wolfman30/leadgen-site/pkg/logging"
)

func newTestHandler(origins ...string) *Handler {
	return NewHandler(NewResponder(nil), metrics.NewSiteMetrics(prometheus.NewRegistry()), origins, logging.Discard())
}

func TestAskHTTP(t *testing.T) {
	srv := newTestHandler().Routes()

	body, _ := json.Marshal(askRequest{Query: "Do you handle GDPR?"})
	req := httptest.NewRequest(http.MethodPost, "/ask", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.True(t, resp.Matched)
	assert.Contains(t, choiceIDs(resp), "gdpr")
}

func TestAskHTTPFallbackIsNotAnError(t *testing.T) {
	srv := newTestHandler().Routes()
	req := httptest.NewRequest(http.MethodPost, "/ask", strings.NewReader(`{"query":"qwertyuiop"}`))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.False(t, resp.Matched)
	assert.Equal(t, FallbackMessage, resp.Fallback)
}

func TestAskHTTPInvalidJSON(t *testing.T) {
	srv := newTestHandler().Routes()
	req := httptest.NewRequest(http.MethodPost, "/ask", strings.NewReader("{"))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListAndGet(t *testing.T) {
	srv := newTestHandler().Routes()

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":"gdpr"`)
	assert.NotContains(t, rec.Body.String(), "keywords")

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/pricing", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var got Record
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, "pricing", got.ID)

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestChatWebsocket(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	srv := httptest.NewServer(newTestHandler().Routes())
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/chat"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	var out ChatOutbound
	require.NoError(t, conn.ReadJSON(&out))
	assert.Equal(t, "greeting", out.Type)

	exchanges := []struct {
		in   ChatInbound
		want string
	}{
		{ChatInbound{Type: "ping"}, "pong"},
		{ChatInbound{Type: "ask", Text: "GDPR?"}, "choices"},
		{ChatInbound{Type: "ask", Text: "zzzz"}, "fallback"},
		{ChatInbound{Type: "choose", ID: "gdpr"}, "answer"},
		{ChatInbound{Type: "choose", ID: "unknown"}, "fallback"},
		{ChatInbound{Type: "shout"}, "error"},
	}
	for _, ex := range exchanges {
		require.NoError(t, conn.WriteJSON(ex.in))
		out = ChatOutbound{}
		require.NoError(t, conn.ReadJSON(&out))
		assert.Equal(t, ex.want, out.Type, "reply to %+v", ex.in)
		if out.Type == "answer" {
			assert.Contains(t, out.Question, "GDPR")
			assert.NotEmpty(t, out.Text)
		}
	}
}

func TestChatRejectsUnknownOrigin(t *testing.T) {
	srv := httptest.NewServer(newTestHandler("https://site.example").Routes())
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/chat"
	header := http.Header{}
	header.Set("Origin", "https://evil.example")
	_, resp, err := websocket.DefaultDialer.Dial(wsURL, header)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	header.Set("Origin", "https://site.example")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, header)
	require.NoError(t, err)
	conn.Close()
}
