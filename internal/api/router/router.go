package router

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/wolfman30/leadgen-site/internal/calculator"
	"github.com/wolfman30/leadgen-site/internal/faq"
	httpmiddleware "github.com/wolfman30/leadgen-site/internal/http/middleware"
	"github.com/wolfman30/leadgen-site/internal/leads"
	"github.com/wolfman30/leadgen-site/internal/wizard"
	"github.com/wolfman30/leadgen-site/pkg/logging"
)

const readinessTimeout = 2 * time.Second

// Checker reports whether a backing dependency is reachable.
type Checker func(ctx context.Context) error

// Config holds router configuration
type Config struct {
	Logger             *logging.Logger
	WizardHandler      *wizard.Handler
	CalculatorHandler  *calculator.Handler
	FAQHandler         *faq.Handler
	LeadsHandler       *leads.Handler
	MetricsHandler     http.Handler
	AdminAuthSecret    string
	CORSAllowedOrigins []string
	RateLimiter        *httpmiddleware.RateLimiter

	// Readiness checks keyed by dependency name (redis, postgres).
	ReadinessChecks map[string]Checker
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	// Probes and scraping stay outside the rate limit.
	r.Group(func(public chi.Router) {
		public.Get("/health", healthCheck)
		public.Get("/ready", readinessCheck(cfg.ReadinessChecks))
		if cfg.MetricsHandler != nil {
			public.Handle("/metrics", cfg.MetricsHandler)
		}
	})

	// Endpoints the site's pages call.
	r.Group(func(site chi.Router) {
		if cfg.RateLimiter != nil {
			site.Use(cfg.RateLimiter.Middleware)
		}
		if cfg.WizardHandler != nil {
			site.Mount("/wizard", cfg.WizardHandler.Routes())
		}
		if cfg.CalculatorHandler != nil {
			site.Route("/calculator", func(calc chi.Router) {
				calc.Use(middleware.Compress(5))
				calc.Get("/", cfg.CalculatorHandler.Get)
				calc.Post("/", cfg.CalculatorHandler.Post)
			})
		}
		if cfg.FAQHandler != nil {
			site.Mount("/faq", cfg.FAQHandler.Routes())
		}
	})

	if cfg.LeadsHandler != nil {
		r.Route("/admin", func(admin chi.Router) {
			admin.Use(httpmiddleware.AdminJWT(cfg.AdminAuthSecret))
			admin.Mount("/leads", cfg.LeadsHandler.Routes())
		})
	}

	return r
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func readinessCheck(checks map[string]Checker) http.HandlerFunc {
	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Strings(names)

	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		status := http.StatusOK
		result := map[string]string{}
		for _, name := range names {
			if err := checks[name](ctx); err != nil {
				status = http.StatusServiceUnavailable
				result[name] = err.Error()
				continue
			}
			result[name] = "ok"
		}
		overall := "ok"
		if status != http.StatusOK {
			overall = "degraded"
		}
		writeJSON(w, status, map[string]any{"status": overall, "checks": result})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
