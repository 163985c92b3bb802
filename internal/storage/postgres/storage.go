package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/qrally/qrally/internal/model"
	"github.com/qrally/qrally/internal/storage"
)

// Storage is a PostgreSQL-backed implementation of the storage interface.
//
// The users and checkpoints tables are provisioned externally; this
// application runs no migrations and creates no tables.
type Storage struct {
	db *sql.DB
}

// New opens a connection pool for the given DSN and verifies connectivity
func New(cfg Config) (*Storage, error) {
	db, err := sql.Open("pgx", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Storage{db: db}, nil
}

// NewWithDB creates a Storage with an existing handle (for testing)
func NewWithDB(db *sql.DB) *Storage {
	return &Storage{db: db}
}

// Close closes the connection pool
func (s *Storage) Close() error {
	return s.db.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// User operations

func (s *Storage) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	query := `SELECT id, pass, score FROM users WHERE id = $1`

	user := &model.User{}
	err := s.db.QueryRowContext(ctx, query, string(id)).Scan(&user.ID, &user.Pass, &user.Score)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (s *Storage) GetUserByCredentials(ctx context.Context, id model.UserID, pass string) (*model.User, error) {
	query := `SELECT id, pass, score FROM users WHERE id = $1 AND pass = $2`

	user := &model.User{}
	err := s.db.QueryRowContext(ctx, query, string(id), pass).Scan(&user.ID, &user.Pass, &user.Score)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (s *Storage) UpdateUserScore(ctx context.Context, id model.UserID, score int) error {
	query := `UPDATE users SET score = $1 WHERE id = $2`

	res, err := s.db.ExecContext(ctx, query, score, string(id))
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return model.ErrUserNotFound
	}

	return nil
}

func (s *Storage) SaveUser(ctx context.Context, user *model.User) error {
	query := `
		INSERT INTO users (id, pass, score) VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET pass = EXCLUDED.pass, score = EXCLUDED.score`

	if _, err := s.db.ExecContext(ctx, query, string(user.ID), user.Pass, user.Score); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// Checkpoint operations

func (s *Storage) GetCheckpoint(ctx context.Context, cpID model.CheckpointID) (*model.Checkpoint, error) {
	query := `SELECT cp_id, point FROM checkpoints WHERE cp_id = $1`

	cp := &model.Checkpoint{}
	err := s.db.QueryRowContext(ctx, query, string(cpID)).Scan(&cp.CPID, &cp.Point)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrCheckpointNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return cp, nil
}

func (s *Storage) SaveCheckpoint(ctx context.Context, cp *model.Checkpoint) error {
	query := `
		INSERT INTO checkpoints (cp_id, point) VALUES ($1, $2)
		ON CONFLICT (cp_id) DO UPDATE SET point = EXCLUDED.point`

	if _, err := s.db.ExecContext(ctx, query, string(cp.CPID), cp.Point); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
