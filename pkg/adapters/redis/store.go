package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aretw0/previewkit/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// Store implements ports.PreviewStore using Redis.
// Several IDE windows can share one registry this way.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*Store)

// WithTTL sets the expiration for stored requests.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix.
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
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: "previewkit:preview:",
		ttl:    0, // No expiration by default
	}

	for _, opt := range opts {
		opt(store)
	}

	return store
}

// Targets come from the build, so request keys live under their own
// namespace and can never collide with the index.
func (s *Store) key(target string) string {
	return s.prefix + "req:" + target
}

func (s *Store) indexKey() string {
	return s.prefix + "index"
}

// Save persists the request as JSON and indexes its target.
func (s *Store) Save(ctx context.Context, req *domain.PreviewRequest) error {
	data, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to marshal preview request: %w", err)
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, s.key(req.PreviewFqName), data, s.ttl)

	// Score = expiry, so List can prune the index lazily.
	score := float64(time.Now().Add(s.ttl).Unix())
	if s.ttl == 0 {
		score = 4102444800 // 2100-01-01
	}
	pipe.ZAdd(ctx, s.indexKey(), backend.Z{
		Score:  score,
		Member: req.PreviewFqName,
	})

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// Load retrieves the request from Redis.
func (s *Store) Load(ctx context.Context, target string) (*domain.PreviewRequest, error) {
	val, err := s.client.Get(ctx, s.key(target)).Result()
	if err != nil {
		if err == backend.Nil {
			return nil, domain.ErrPreviewNotFound
		}
		return nil, fmt.Errorf("failed to get from redis: %w", err)
	}

	var req domain.PreviewRequest
	if err := json.Unmarshal([]byte(val), &req); err != nil {
		return nil, fmt.Errorf("failed to unmarshal preview request: %w", err)
	}
	return &req, nil
}

// Delete removes the request and its index entry.
func (s *Store) Delete(ctx context.Context, target string) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, s.key(target))
	pipe.ZRem(ctx, s.indexKey(), target)

	_, err := pipe.Exec(ctx)
	return err
}

// List returns indexed targets after pruning expired entries.
func (s *Store) List(ctx context.Context) ([]string, error) {
	now := float64(time.Now().Unix())
	err := s.client.ZRemRangeByScore(ctx, s.indexKey(), "-inf", fmt.Sprintf("%f", now)).Err()
	if err != nil {
		return nil, fmt.Errorf("failed to prune expired previews: %w", err)
	}

	targets, err := s.client.ZRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list previews: %w", err)
	}
	return targets, nil
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
