package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/qrally/qrally/internal/model"
	"github.com/qrally/qrally/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// User operations

func (s *Storage) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	data, err := s.client.Get(ctx, userKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}

	var user model.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Storage) GetUserByCredentials(ctx context.Context, id model.UserID, pass string) (*model.User, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.Pass != pass {
		return nil, model.ErrUserNotFound
	}
	return user, nil
}

func (s *Storage) UpdateUserScore(ctx context.Context, id model.UserID, score int) error {
	// Plain read-modify-write; concurrent writers are last-writer-wins
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return err
	}

	user.Score = score
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}

	return s.client.Set(ctx, userKey(id), data, 0).Err()
}

func (s *Storage) SaveUser(ctx context.Context, user *model.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}

	return s.client.Set(ctx, userKey(user.ID), data, 0).Err()
}

// Checkpoint operations

func (s *Storage) GetCheckpoint(ctx context.Context, cpID model.CheckpointID) (*model.Checkpoint, error) {
	data, err := s.client.Get(ctx, checkpointKey(cpID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrCheckpointNotFound
		}
		return nil, err
	}

	var cp model.Checkpoint
	if err := json.Unmarshal(data, &cp); err != nil {
		return nil, err
	}
	return &cp, nil
}

func (s *Storage) SaveCheckpoint(ctx context.Context, cp *model.Checkpoint) error {
	data, err := json.Marshal(cp)
	if err != nil {
		return err
	}

	return s.client.Set(ctx, checkpointKey(cp.CPID), data, 0).Err()
}
