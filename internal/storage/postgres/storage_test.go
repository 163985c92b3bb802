package postgres

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/qrally/qrally/internal/model"
)

// Integration tests require a running PostgreSQL with the users and
// checkpoints tables already created. Set QRALLY_TEST_DATABASE_DSN to run.
type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	dsn := os.Getenv("QRALLY_TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("QRALLY_TEST_DATABASE_DSN not set")
	}

	cfg := DefaultConfig()
	cfg.DSN = dsn

	s, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	suite.Run(t, &StorageSuite{storage: s, ctx: context.Background()})
}

func (s *StorageSuite) TestUserRoundTrip() {
	user := &model.User{ID: "pgtest-u1", Pass: "secret", Score: 10}
	s.Require().NoError(s.storage.SaveUser(s.ctx, user))

	retrieved, err := s.storage.GetUser(s.ctx, "pgtest-u1")
	s.Require().NoError(err)
	s.Equal(user, retrieved)

	byCreds, err := s.storage.GetUserByCredentials(s.ctx, "pgtest-u1", "secret")
	s.Require().NoError(err)
	s.Equal(user, byCreds)

	_, err = s.storage.GetUserByCredentials(s.ctx, "pgtest-u1", "wrong")
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *StorageSuite) TestUpdateUserScore() {
	user := &model.User{ID: "pgtest-u2", Pass: "secret", Score: 0}
	s.Require().NoError(s.storage.SaveUser(s.ctx, user))

	s.Require().NoError(s.storage.UpdateUserScore(s.ctx, "pgtest-u2", 42))

	retrieved, err := s.storage.GetUser(s.ctx, "pgtest-u2")
	s.Require().NoError(err)
	s.Equal(42, retrieved.Score)

	s.ErrorIs(s.storage.UpdateUserScore(s.ctx, "pgtest-missing", 1), model.ErrUserNotFound)
}

func (s *StorageSuite) TestCheckpointRoundTrip() {
	cp := &model.Checkpoint{CPID: "pgtest-cp1", Point: 5}
	s.Require().NoError(s.storage.SaveCheckpoint(s.ctx, cp))

	retrieved, err := s.storage.GetCheckpoint(s.ctx, "pgtest-cp1")
	s.Require().NoError(err)
	s.Equal(cp, retrieved)

	_, err = s.storage.GetCheckpoint(s.ctx, "pgtest-missing")
	s.ErrorIs(err, model.ErrCheckpointNotFound)
}
