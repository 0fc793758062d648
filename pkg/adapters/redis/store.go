package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/aretw0/vista/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// DefaultTTL bounds how long an abandoned viewer session survives.
// Sessions are not meant to outlive the viewing they belong to.
const DefaultTTL = 30 * time.Minute

// farFuture is the index score of sessions stored without expiration.
const farFuture = 4102444800 // 2100-01-01

// Store implements ports.StateStore using Redis, for hosts that serve
// one viewer session from several replicas.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*Store)

// WithTTL sets the expiration for sessions. Zero disables expiration.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key namespace, "vista:" by default.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a new Redis store with options.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis store from an existing client.
// Keys share the locker namespace: "<prefix>state:<id>" holds a session and
// "<prefix>sessions" indexes live sessions by expiry.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: "vista:",
		ttl:    DefaultTTL,
	}

	for _, opt := range opts {
		opt(store)
	}

	return store
}

func (s *Store) stateKey(sessionID string) string {
	return s.prefix + "state:" + sessionID
}

func (s *Store) sessionsKey() string {
	return s.prefix + "sessions"
}

// expiry is the index score of a session touched now.
func (s *Store) expiry() float64 {
	if s.ttl == 0 {
		return farFuture
	}
	return float64(time.Now().Add(s.ttl).Unix())
}

// Save writes the state and refreshes the session expiry.
func (s *Store) Save(ctx context.Context, sessionID string, state *domain.State) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.stateKey(sessionID), data, s.ttl)
	pipe.ZAdd(ctx, s.sessionsKey(), backend.Z{Score: s.expiry(), Member: sessionID})
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save session %q: %w", sessionID, err)
	}
	return nil
}

// Load reads the state. A visitor who is still looking around keeps the
// session alive, so reading slides the expiry forward like a write does.
func (s *Store) Load(ctx context.Context, sessionID string) (*domain.State, error) {
	var data []byte
	var err error
	if s.ttl > 0 {
		data, err = s.client.GetEx(ctx, s.stateKey(sessionID), s.ttl).Bytes()
	} else {
		data, err = s.client.Get(ctx, s.stateKey(sessionID)).Bytes()
	}
	if errors.Is(err, backend.Nil) {
		return nil, fmt.Errorf("%w: %s", domain.ErrSessionNotFound, sessionID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session %q: %w", sessionID, err)
	}

	if s.ttl > 0 {
		if err := s.client.ZAddXX(ctx, s.sessionsKey(), backend.Z{Score: s.expiry(), Member: sessionID}).Err(); err != nil {
			return nil, fmt.Errorf("failed to refresh session %q: %w", sessionID, err)
		}
	}

	var state domain.State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("session %q is corrupt: %w", sessionID, err)
	}
	return state.Snapshot(), nil
}

// Delete ends the session. Deleting an unknown session is not an error.
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, s.stateKey(sessionID))
	pipe.ZRem(ctx, s.sessionsKey(), sessionID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete session %q: %w", sessionID, err)
	}
	return nil
}

// List returns the live sessions, soonest to expire first.
// Members whose expiry has passed are dropped from the index on the way.
func (s *Store) List(ctx context.Context) ([]string, error) {
	now := strconv.FormatInt(time.Now().Unix(), 10)
	if err := s.client.ZRemRangeByScore(ctx, s.sessionsKey(), "-inf", now).Err(); err != nil {
		return nil, fmt.Errorf("failed to expire sessions: %w", err)
	}

	ids, err := s.client.ZRange(ctx, s.sessionsKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	return ids, nil
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
