package storage

import (
	"context"

	"github.com/qrally/qrally/internal/model"
)

// Storage defines the row-oriented query interface backing the application.
//
// The request paths only ever read users/checkpoints and update a user's
// score; the save operations exist for seeding and tests. No implementation
// creates collections or schemas.
type Storage interface {
	// User operations
	GetUser(ctx context.Context, id model.UserID) (*model.User, error)
	GetUserByCredentials(ctx context.Context, id model.UserID, pass string) (*model.User, error)
	UpdateUserScore(ctx context.Context, id model.UserID, score int) error
	SaveUser(ctx context.Context, user *model.User) error

	// Checkpoint operations
	GetCheckpoint(ctx context.Context, cpID model.CheckpointID) (*model.Checkpoint, error)
	SaveCheckpoint(ctx context.Context, cp *model.Checkpoint) error
}
