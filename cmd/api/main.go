package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/wolfman30/leadgen-site/cmd/mainconfig"
	"github.com/wolfman30/leadgen-site/internal/api/router"
	"github.com/wolfman30/leadgen-site/internal/app/bootstrap"
	"github.com/wolfman30/leadgen-site/internal/calculator"
	appconfig "github.com/wolfman30/leadgen-site/internal/config"
	"github.com/wolfman30/leadgen-site/internal/faq"
	httpmiddleware "github.com/wolfman30/leadgen-site/internal/http/middleware"
	"github.com/wolfman30/leadgen-site/internal/leads"
	"github.com/wolfman30/leadgen-site/internal/notify"
	"github.com/wolfman30/leadgen-site/internal/observability/metrics"
	"github.com/wolfman30/leadgen-site/internal/wizard"
	"github.com/wolfman30/leadgen-site/pkg/logging"
)

func main() {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg := appconfig.Load()
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting leadgen-site API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	ctx := context.Background()
	app, err := buildApp(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize", "error", err)
		os.Exit(1)
	}
	defer app.Close()

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      app.handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
	fmt.Println("Server exited gracefully")
}

// app is the wired HTTP surface plus whatever must be released on exit.
type app struct {
	handler http.Handler
	closers []func()
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

func buildApp(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) (*app, error) {
	a := &app{}
	metricsHandler, siteMetrics := setupMetrics()
	checks := map[string]router.Checker{}

	redisClient := bootstrap.BuildRedisClient(ctx, cfg, logger, true)
	if cfg.UsesRedis() && redisClient == nil {
		logger.Warn("falling back to in-memory wizard sessions")
	}
	if redisClient != nil {
		a.closers = append(a.closers, func() { _ = redisClient.Close() })
		checks["redis"] = redisCheck(redisClient)
	}
	sessions := bootstrap.BuildSessionStore(redisClient, cfg.WizardSessionTTL, logger)

	pool, err := bootstrap.ConnectPostgresPool(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		a.Close()
		return nil, err
	}
	if pool != nil {
		a.closers = append(a.closers, pool.Close)
		checks["postgres"] = pool.Ping
	}
	leadRepo := bootstrap.BuildLeadRepository(pool)

	awsCfg := aws.Config{Region: cfg.AWSRegion}
	if bootstrap.NeedsAWS(cfg) {
		awsCfg, err = mainconfig.LoadAWSConfig(ctx, cfg)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("load aws config: %w", err)
		}
	}
	sender := bootstrap.BuildEmailSender(cfg, awsCfg, logger)
	archiveStore := bootstrap.BuildArchiveStore(cfg, awsCfg, logger)

	var notifier leads.Notifier
	if n := notify.NewLeadNotifier(sender, cfg.SalesNotifyEmail, logger); n != nil {
		notifier = n
	} else {
		logger.Warn("SALES_NOTIFY_EMAIL not set; lead emails disabled")
	}
	var archiver leads.Archiver
	if archiveStore.Enabled() {
		archiver = archiveStore
	}
	recorder := leads.NewRecorder(leadRepo, archiver, notifier, siteMetrics, logger)

	responder, err := bootstrap.BuildFAQResponder(cfg.FAQScriptPath)
	if err != nil {
		a.Close()
		return nil, err
	}

	limiter := httpmiddleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	a.closers = append(a.closers, limiter.Close)

	if cfg.AdminJWTSecret == "" {
		logger.Warn("ADMIN_JWT_SECRET not set; admin endpoints will reject every request")
	}

	service := wizard.NewService(sessions, recorder, siteMetrics, logger)
	erasers := []leads.SessionEraser{
		leads.EraseFunc(func(ctx context.Context, sessionID string, _ []*leads.Lead) error {
			return service.DeleteSession(ctx, sessionID)
		}),
	}
	if archiveStore.Enabled() {
		erasers = append(erasers, archiveStore)
	}

	a.handler = router.New(&router.Config{
		Logger:             logger,
		WizardHandler:      wizard.NewHandler(service, logger),
		CalculatorHandler:  calculator.NewHandler(siteMetrics, logger),
		FAQHandler:         faq.NewHandler(responder, siteMetrics, cfg.CORSAllowedOrigins, logger),
		LeadsHandler:       leads.NewHandler(leadRepo, logger, erasers...),
		MetricsHandler:     metricsHandler,
		AdminAuthSecret:    cfg.AdminJWTSecret,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		RateLimiter:        limiter,
		ReadinessChecks:    checks,
	})
	return a, nil
}

// setupMetrics registers site counters plus the Go and process collectors on
// a dedicated registry.
func setupMetrics() (http.Handler, *metrics.SiteMetrics) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{}), metrics.NewSiteMetrics(reg)
}

func redisCheck(client *redis.Client) router.Checker {
	return func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	}
}
