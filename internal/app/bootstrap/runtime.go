package bootstrap

import (
	"context"
	"crypto/tls"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	appconfig "github.com/wolfman30/leadgen-site/internal/config"
	"github.com/wolfman30/leadgen-site/internal/faq"
	"github.com/wolfman30/leadgen-site/internal/leads"
	"github.com/wolfman30/leadgen-site/internal/wizard"
	"github.com/wolfman30/leadgen-site/pkg/logging"
)

const postgresConnectTimeout = 10 * time.Second

// BuildRedisClient returns a configured Redis client or nil when disabled.
// When verify is true, a ping is issued and failures return nil.
func BuildRedisClient(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger, verify bool) *redis.Client {
	if cfg == nil || !cfg.UsesRedis() {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	if ctx == nil {
		ctx = context.Background()
	}

	redisOptions := &redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	}
	if cfg.RedisTLS {
		redisOptions.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	client := redis.NewClient(redisOptions)
	if !verify {
		return client
	}
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis not available", "error", err)
		_ = client.Close()
		return nil
	}
	return client
}

// BuildSessionStore keeps wizard sessions in Redis when a client is given,
// otherwise in process memory.
func BuildSessionStore(client *redis.Client, ttl time.Duration, logger *logging.Logger) wizard.Store {
	if logger == nil {
		logger = logging.Default()
	}
	if client != nil {
		logger.Info("wizard sessions stored in redis", "ttl", ttl.String())
		return wizard.NewRedisStore(client, ttl)
	}
	logger.Info("wizard sessions stored in memory", "ttl", ttl.String())
	return wizard.NewMemoryStore(ttl)
}

// ConnectPostgresPool opens and pings a pgx pool. An empty URL returns nil.
func ConnectPostgresPool(ctx context.Context, databaseURL string, logger *logging.Logger) (*pgxpool.Pool, error) {
	if strings.TrimSpace(databaseURL) == "" {
		return nil, nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	ctx, cancel := context.WithTimeout(ctx, postgresConnectTimeout)
	defer cancel()

	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: open postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("bootstrap: ping postgres: %w", err)
	}
	logger.Info("connected to postgres")
	return pool, nil
}

// BuildLeadRepository stores leads in Postgres when a pool is available.
func BuildLeadRepository(pool *pgxpool.Pool) leads.Repository {
	if pool == nil {
		return leads.NewInMemoryRepository()
	}
	return leads.NewPostgresRepository(pool)
}

// BuildFAQResponder loads the FAQ script from path, or uses the built-in table.
func BuildFAQResponder(path string) (*faq.Responder, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return faq.NewResponder(nil), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: open faq script: %w", err)
	}
	defer f.Close()

	script, err := faq.LoadScript(f)
	if err != nil {
		return nil, err
	}
	return faq.NewResponder(script), nil
}
