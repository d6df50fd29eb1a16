package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/prince-yadav810/taponce-api/internal/config"
	"github.com/prince-yadav810/taponce-api/internal/kanban"
)

const (
	boardKeyPrefix = "board:snapshot:"
	boardTTL       = 30 * time.Minute
)

// NewClient creates a Redis client from config and verifies connectivity.
func NewClient(cfg *config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return client, nil
}

// BoardStore caches per-session board snapshots so a reload within the TTL
// resumes the operator's working copy instead of refetching the pipeline.
type BoardStore struct {
	client *redis.Client
}

// NewBoardStore creates a board snapshot store
func NewBoardStore(client *redis.Client) *BoardStore {
	return &BoardStore{client: client}
}

// Save stores a snapshot under the session key with a sliding TTL.
func (s *BoardStore) Save(ctx context.Context, sessionID string, snapshot *kanban.Snapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal board snapshot: %w", err)
	}
	return s.client.Set(ctx, boardKeyPrefix+sessionID, data, boardTTL).Err()
}

// Load returns the cached snapshot for the session, or nil when absent.
func (s *BoardStore) Load(ctx context.Context, sessionID string) (*kanban.Snapshot, error) {
	data, err := s.client.Get(ctx, boardKeyPrefix+sessionID).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var snapshot kanban.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to unmarshal board snapshot: %w", err)
	}
	return &snapshot, nil
}

// Invalidate drops the cached snapshot for the session.
func (s *BoardStore) Invalidate(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, boardKeyPrefix+sessionID).Err()
}
