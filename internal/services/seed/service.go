package seed

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"

	"github.com/qrally/qrally/internal/model"
	"github.com/qrally/qrally/internal/storage"
)

// Data is the on-disk seed format: the users and checkpoints an event
// operator provisions before a rally starts.
type Data struct {
	Users       []model.User       `json:"users"`
	Checkpoints []model.Checkpoint `json:"checkpoints"`
}

// Service loads seed data into storage
type Service struct {
	storage storage.Storage
	logger  *slog.Logger
}

// New creates a new seed Service
func New(storage storage.Storage, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		logger:  logger,
	}
}

// LoadFromFile reads a JSON seed file and saves its rows
func (s *Service) LoadFromFile(ctx context.Context, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var data Data
	if err := json.Unmarshal(raw, &data); err != nil {
		return err
	}

	return s.Load(ctx, data)
}

// Load saves the given rows into storage, overwriting existing ones
func (s *Service) Load(ctx context.Context, data Data) error {
	for i := range data.Users {
		if err := s.storage.SaveUser(ctx, &data.Users[i]); err != nil {
			return err
		}
	}
	for i := range data.Checkpoints {
		if err := s.storage.SaveCheckpoint(ctx, &data.Checkpoints[i]); err != nil {
			return err
		}
	}

	s.logger.Info("seed data loaded",
		slog.Int("users", len(data.Users)),
		slog.Int("checkpoints", len(data.Checkpoints)))
	return nil
}
