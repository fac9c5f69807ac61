package leads

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wolfman30/leadgen-site/pkg/logging"
)

func seededHandler(t *testing.T) (*Handler, *InMemoryRepository) {
	t.Helper()
	repo := NewInMemoryRepository()
	for _, tc := range []struct{ session, tier string }{
		{"s1", "Starter"}, {"s2", "Growth"}, {"s3", "Growth"},
	} {
		_, err := repo.Create(context.Background(), validRequest(tc.session, tc.tier))
		require.NoError(t, err)
	}
	return NewHandler(repo, logging.Discard()), repo
}

func TestListLeads(t *testing.T) {
	handler, _ := seededHandler(t)
	srv := httptest.NewServer(handler.Routes())
	defer srv.Close()

	tests := []struct {
		name      string
		query     string
		wantCount int
		wantLimit int
	}{
		{"defaults", "", 3, defaultListLimit},
		{"tier filter", "?tier=growth", 2, defaultListLimit},
		{"limit", "?limit=1", 1, 1},
		{"limit over max ignored", "?limit=1000", 3, defaultListLimit},
		{"bad offset ignored", "?offset=-4", 3, defaultListLimit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Get(srv.URL + "/" + tt.query)
			require.NoError(t, err)
			defer resp.Body.Close()
			require.Equal(t, http.StatusOK, resp.StatusCode)

			var body ListLeadsResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tt.wantCount, body.Count)
			assert.Len(t, body.Leads, tt.wantCount)
			assert.Equal(t, tt.wantLimit, body.Limit)
		})
	}
}

func TestGetLead(t *testing.T) {
	handler, repo := seededHandler(t)
	all, err := repo.List(context.Background(), ListLeadsFilter{Limit: 1})
	require.NoError(t, err)

	router := handler.Routes()

	req := httptest.NewRequest(http.MethodGet, "/"+all[0].ID, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	var lead Lead
	require.NoError(t, json.NewDecoder(w.Body).Decode(&lead))
	assert.Equal(t, all[0].ID, lead.ID)

	req = httptest.NewRequest(http.MethodGet, "/nope", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteSessionLeads(t *testing.T) {
	handler, repo := seededHandler(t)

	req := httptest.NewRequest(http.MethodDelete, "/sessions/s2", nil)
	w := httptest.NewRecorder()
	handler.Routes().ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		SessionID string `json:"session_id"`
		Deleted   int64  `json:"deleted"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, "s2", body.SessionID)
	assert.EqualValues(t, 1, body.Deleted)

	left, err := repo.List(context.Background(), ListLeadsFilter{})
	require.NoError(t, err)
	assert.Len(t, left, 2)
}

func TestDeleteSessionLeadsRunsErasers(t *testing.T) {
	repo := NewInMemoryRepository()
	_, err := repo.Create(context.Background(), validRequest("s1", "Growth"))
	require.NoError(t, err)
	_, err = repo.Create(context.Background(), validRequest("s2", "Starter"))
	require.NoError(t, err)

	var (
		gotSession string
		gotLeads   []*Lead
	)
	eraser := EraseFunc(func(_ context.Context, sessionID string, captured []*Lead) error {
		gotSession = sessionID
		gotLeads = captured
		return nil
	})
	handler := NewHandler(repo, logging.Discard(), eraser)

	req := httptest.NewRequest(http.MethodDelete, "/sessions/s1", nil)
	w := httptest.NewRecorder()
	handler.Routes().ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, "s1", gotSession)
	require.Len(t, gotLeads, 1)
	assert.Equal(t, "s1", gotLeads[0].SessionID)

	left, err := repo.List(context.Background(), ListLeadsFilter{})
	require.NoError(t, err)
	require.Len(t, left, 1)
	assert.Equal(t, "s2", left[0].SessionID)
}

func TestDeleteSessionLeadsKeepsRowsWhenEraserFails(t *testing.T) {
	repo := NewInMemoryRepository()
	_, err := repo.Create(context.Background(), validRequest("s1", "Growth"))
	require.NoError(t, err)

	failing := EraseFunc(func(context.Context, string, []*Lead) error {
		return errors.New("s3 unavailable")
	})
	handler := NewHandler(repo, logging.Discard(), failing)

	req := httptest.NewRequest(http.MethodDelete, "/sessions/s1", nil)
	w := httptest.NewRecorder()
	handler.Routes().ServeHTTP(w, req)
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	left, err := repo.List(context.Background(), ListLeadsFilter{SessionID: "s1"})
	require.NoError(t, err)
	assert.Len(t, left, 1, "rows stay so the erasure can be retried")
}
