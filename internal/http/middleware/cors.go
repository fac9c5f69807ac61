package middleware

import (
	"net/http"
	"strings"
)

const (
	corsAllowHeaders  = "Authorization, Content-Type, X-Request-Id"
	corsAllowMethods  = "GET, POST, DELETE, OPTIONS"
	corsExposeHeaders = "X-Request-Id, Retry-After"
)

// OriginPolicy decides which browser origins may call the site API.
// Entries are exact origins ("https://www.pipelinepartners.example"), "*",
// or a subdomain wildcard ("https://*.pipelinepartners.example") that covers
// preview deploys of the marketing pages but not the apex itself.
type OriginPolicy struct {
	any       bool
	exact     map[string]struct{}
	wildcards []originWildcard
}

type originWildcard struct {
	scheme string
	suffix string // ".pipelinepartners.example"
}

// NewOriginPolicy parses an allowlist. Blank entries are ignored.
func NewOriginPolicy(origins []string) *OriginPolicy {
	p := &OriginPolicy{exact: map[string]struct{}{}}
	for _, raw := range origins {
		origin := normalizeOrigin(raw)
		switch {
		case origin == "":
		case origin == "*":
			p.any = true
		case strings.Contains(origin, "://*."):
			scheme, host, _ := strings.Cut(origin, "://")
			p.wildcards = append(p.wildcards, originWildcard{scheme: scheme, suffix: strings.TrimPrefix(host, "*")})
		default:
			p.exact[origin] = struct{}{}
		}
	}
	return p
}

// Empty reports whether the policy lists no origins at all.
func (p *OriginPolicy) Empty() bool {
	return !p.any && len(p.exact) == 0 && len(p.wildcards) == 0
}

// Allows reports whether a browser Origin header value is on the list.
func (p *OriginPolicy) Allows(origin string) bool {
	origin = normalizeOrigin(origin)
	if origin == "" {
		return false
	}
	if p.any {
		return true
	}
	if _, ok := p.exact[origin]; ok {
		return true
	}
	scheme, host, ok := strings.Cut(origin, "://")
	if !ok || strings.Contains(host, "/") {
		return false
	}
	for _, w := range p.wildcards {
		if scheme == w.scheme && len(host) > len(w.suffix) && strings.HasSuffix(host, w.suffix) {
			return true
		}
	}
	return false
}

// CheckOrigin is a websocket upgrader check. Requests without an Origin
// header come from non-browser clients and pass, as does everything when the
// policy is empty.
func (p *OriginPolicy) CheckOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || p.Empty() {
		return true
	}
	return p.Allows(origin)
}

func normalizeOrigin(origin string) string {
	return strings.ToLower(strings.TrimSuffix(strings.TrimSpace(origin), "/"))
}

// CORS lets the marketing pages call the API from their own origin. Preflights
// from origins off the list are refused with 403 instead of reaching the router.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	policy := NewOriginPolicy(allowedOrigins)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := strings.TrimSpace(r.Header.Get("Origin"))
			allowed := origin != "" && policy.Allows(origin)
			if allowed {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Add("Vary", "Origin")
				w.Header().Set("Access-Control-Allow-Headers", corsAllowHeaders)
				w.Header().Set("Access-Control-Allow-Methods", corsAllowMethods)
				w.Header().Set("Access-Control-Expose-Headers", corsExposeHeaders)
				w.Header().Set("Access-Control-Max-Age", "600")
			}

			if r.Method == http.MethodOptions && origin != "" && r.Header.Get("Access-Control-Request-Method") != "" {
				if !allowed {
					http.Error(w, "origin not allowed", http.StatusForbidden)
					return
				}
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
