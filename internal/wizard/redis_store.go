package wizard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const sessionKeyPrefix = "wizard_session:"

// maxUpdateAttempts bounds optimistic retries when two requests race on one session.
const maxUpdateAttempts = 3

// RedisStore keeps sessions as JSON blobs with a sliding TTL.
type RedisStore struct {
	redis  *redis.Client
	ttl    time.Duration
	tracer trace.Tracer
}

// NewRedisStore returns nil when no client is configured.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if client == nil {
		return nil
	}
	return &RedisStore{
		redis:  client,
		ttl:    ttl,
		tracer: otel.Tracer("leadgen.internal.wizard.redis_store"),
	}
}

func sessionKey(sessionID string) string {
	return sessionKeyPrefix + sessionID
}

// Create stores a new session.
func (s *RedisStore) Create(ctx context.Context, state *State) error {
	ctx, span := s.tracer.Start(ctx, "wizard.session.create")
	defer span.End()

	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("wizard: marshal session: %w", err)
	}
	if err := s.redis.Set(ctx, sessionKey(state.SessionID), data, s.ttl).Err(); err != nil {
		span.RecordError(err)
		return fmt.Errorf("wizard: save session: %w", err)
	}
	return nil
}

// Get loads a session.
func (s *RedisStore) Get(ctx context.Context, sessionID string) (*State, error) {
	ctx, span := s.tracer.Start(ctx, "wizard.session.get")
	defer span.End()

	state, err := s.load(ctx, s.redis, sessionID)
	if err != nil && !errors.Is(err, ErrSessionNotFound) {
		span.RecordError(err)
	}
	return state, err
}

// Update applies fn inside a WATCH transaction, retrying on conflicting writes.
func (s *RedisStore) Update(ctx context.Context, sessionID string, fn func(*State) error) (*State, error) {
	ctx, span := s.tracer.Start(ctx, "wizard.session.update")
	defer span.End()

	key := sessionKey(sessionID)
	var updated *State
	txf := func(tx *redis.Tx) error {
		state, err := s.load(ctx, tx, sessionID)
		if err != nil {
			return err
		}
		if err := fn(state); err != nil {
			return err
		}
		data, err := json.Marshal(state)
		if err != nil {
			return fmt.Errorf("wizard: marshal session: %w", err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, s.ttl)
			return nil
		})
		if err == nil {
			updated = state
		}
		return err
	}

	for attempt := 0; attempt < maxUpdateAttempts; attempt++ {
		err := s.redis.Watch(ctx, txf, key)
		if err == nil {
			return updated, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return nil, err
	}
	err := fmt.Errorf("wizard: session %s updated concurrently", sessionID)
	span.RecordError(err)
	return nil, err
}

// Delete removes the session key.
func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	ctx, span := s.tracer.Start(ctx, "wizard.session.delete")
	defer span.End()

	if err := s.redis.Del(ctx, sessionKey(sessionID)).Err(); err != nil {
		span.RecordError(err)
		return fmt.Errorf("wizard: delete session: %w", err)
	}
	return nil
}

// stringGetter is satisfied by both *redis.Client and *redis.Tx.
type stringGetter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func (s *RedisStore) load(ctx context.Context, c stringGetter, sessionID string) (*State, error) {
	data, err := c.Get(ctx, sessionKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("wizard: load session: %w", err)
	}
	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("wizard: decode session: %w", err)
	}
	if state.Answers == nil {
		state.Answers = Answers{}
	}
	return &state, nil
}
