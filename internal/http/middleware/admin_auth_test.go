package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func serveAdmin(t *testing.T, secret, header string) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/admin/leads", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	called := false
	AdminJWT(secret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		claims, ok := AdminClaimsFromContext(r.Context())
		if !ok {
			t.Fatalf("expected admin claims in context")
		}
		if claims.Subject != "ops@example.com" {
			t.Fatalf("unexpected subject %q", claims.Subject)
		}
		w.WriteHeader(http.StatusOK)
	})).ServeHTTP(rec, req)
	return rec, called
}

func TestAdminJWT(t *testing.T) {
	valid := signedAdminToken(t, "secret", AdminScope, time.Now().Add(5*time.Minute))

	tests := []struct {
		name       string
		secret     string
		header     string
		wantStatus int
	}{
		{"auth disabled", "", "Bearer " + valid, http.StatusUnauthorized},
		{"missing header", "secret", "", http.StatusUnauthorized},
		{"not bearer", "secret", "Basic abc", http.StatusUnauthorized},
		{"wrong secret", "secret", "Bearer " + signedAdminToken(t, "wrong", AdminScope, time.Now().Add(time.Minute)), http.StatusUnauthorized},
		{"expired", "secret", "Bearer " + signedAdminToken(t, "secret", AdminScope, time.Now().Add(-time.Minute)), http.StatusUnauthorized},
		{"no expiry", "secret", "Bearer " + signedAdminToken(t, "secret", AdminScope, time.Time{}), http.StatusUnauthorized},
		{"missing scope", "secret", "Bearer " + signedAdminToken(t, "secret", "profile", time.Now().Add(time.Minute)), http.StatusForbidden},
		{"valid", "secret", "Bearer " + valid, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, called := serveAdmin(t, tt.secret, tt.header)
			if rec.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}
			if called != (tt.wantStatus == http.StatusOK) {
				t.Fatalf("handler called = %v", called)
			}
		})
	}
}

func TestAdminJWTRejectsUnsignedToken(t *testing.T) {
	claims := AdminClaims{
		Scope: AdminScope,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "ops@example.com",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	rec, called := serveAdmin(t, "secret", "Bearer "+token)
	if called || rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for alg=none, got %d", rec.Code)
	}
}

func TestAdminClaimsHasScope(t *testing.T) {
	c := AdminClaims{Scope: "profile leads:admin"}
	if !c.HasScope(AdminScope) {
		t.Fatalf("expected scope to be found")
	}
	if c.HasScope("leads") {
		t.Fatalf("partial scope must not match")
	}
}

func signedAdminToken(t *testing.T, secret, scope string, expires time.Time) string {
	t.Helper()
	claims := AdminClaims{
		Scope:            scope,
		RegisteredClaims: jwt.RegisteredClaims{Subject: "ops@example.com"},
	}
	if !expires.IsZero() {
		claims.ExpiresAt = jwt.NewNumericDate(expires)
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}
