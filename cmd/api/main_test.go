package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appconfig "github.com/wolfman30/leadgen-site/internal/config"
	httpmiddleware "github.com/wolfman30/leadgen-site/internal/http/middleware"
	"github.com/wolfman30/leadgen-site/pkg/logging"
)

func TestSetupMetricsExposesSiteCounters(t *testing.T) {
	handler, m := setupMetrics()
	require.NotNil(t, handler)
	require.NotNil(t, m)

	m.ObserveCalculation()

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "leadgen_calculator_computations_total 1")
	assert.Contains(t, rr.Body.String(), "go_goroutines")
}

func testConfig() *appconfig.Config {
	return &appconfig.Config{
		Port:             "0",
		LogLevel:         "error",
		WizardSessionTTL: 30 * time.Minute,
		EmailProvider:    "stub",
		SalesNotifyEmail: "sales@example.com",
		AWSRegion:        "us-east-1",
		RateLimitRPS:     100,
		RateLimitBurst:   100,
	}
}

func TestBuildAppInMemory(t *testing.T) {
	a, err := buildApp(context.Background(), testConfig(), logging.Discard())
	require.NoError(t, err)
	defer a.Close()

	srv := httptest.NewServer(a.handler)
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/wizard/sessions", "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/ready")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestBuildAppWithRedisSessions(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := testConfig()
	cfg.RedisAddr = mr.Addr()

	a, err := buildApp(context.Background(), cfg, logging.Discard())
	require.NoError(t, err)
	defer a.Close()

	rr := httptest.NewRecorder()
	a.handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/wizard/sessions", strings.NewReader("")))
	require.Equal(t, http.StatusCreated, rr.Code)
	var state struct {
		SessionID string `json:"session_id"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&state))
	assert.True(t, mr.Exists("wizard_session:"+state.SessionID))

	rr = httptest.NewRecorder()
	a.handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"redis":"ok"`)
}

func TestBuildAppBadFAQScript(t *testing.T) {
	cfg := testConfig()
	cfg.FAQScriptPath = t.TempDir() + "/missing.yaml"

	_, err := buildApp(context.Background(), cfg, logging.Discard())
	assert.Error(t, err)
}

func TestBuildAppAdminEraseDropsRedisSession(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := testConfig()
	cfg.RedisAddr = mr.Addr()
	cfg.AdminJWTSecret = "erase-secret"

	a, err := buildApp(context.Background(), cfg, logging.Discard())
	require.NoError(t, err)
	defer a.Close()

	rr := httptest.NewRecorder()
	a.handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/wizard/sessions", strings.NewReader("")))
	require.Equal(t, http.StatusCreated, rr.Code)
	var state struct {
		SessionID string `json:"session_id"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&state))
	require.True(t, mr.Exists("wizard_session:"+state.SessionID))

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, httpmiddleware.AdminClaims{
		Scope: httpmiddleware.AdminScope,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	}).SignedString([]byte(cfg.AdminJWTSecret))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodDelete, "/admin/leads/sessions/"+state.SessionID, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr = httptest.NewRecorder()
	a.handler.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	assert.False(t, mr.Exists("wizard_session:"+state.SessionID))
}
