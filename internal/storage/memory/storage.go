package memory

import (
	"context"
	"sync"

	"github.com/qrally/qrally/internal/model"
	"github.com/qrally/qrally/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	users       map[model.UserID]*model.User
	checkpoints map[model.CheckpointID]*model.Checkpoint
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		users:       make(map[model.UserID]*model.User),
		checkpoints: make(map[model.CheckpointID]*model.Checkpoint),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// User operations

func (s *Storage) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (s *Storage) GetUserByCredentials(ctx context.Context, id model.UserID, pass string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok || user.Pass != pass {
		return nil, model.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (s *Storage) UpdateUserScore(ctx context.Context, id model.UserID, score int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return model.ErrUserNotFound
	}
	user.Score = score
	return nil
}

func (s *Storage) SaveUser(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *user
	s.users[user.ID] = &copied
	return nil
}

// Checkpoint operations

func (s *Storage) GetCheckpoint(ctx context.Context, cpID model.CheckpointID) (*model.Checkpoint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cp, ok := s.checkpoints[cpID]
	if !ok {
		return nil, model.ErrCheckpointNotFound
	}
	copied := *cp
	return &copied, nil
}

func (s *Storage) SaveCheckpoint(ctx context.Context, cp *model.Checkpoint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *cp
	s.checkpoints[cp.CPID] = &copied
	return nil
}
