package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/qrally/qrally/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	s.storage = NewWithClient(client, DefaultConfig())
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

// User tests

func (s *StorageSuite) TestSaveAndGetUser() {
	user := &model.User{ID: "u1", Pass: "secret", Score: 10}

	err := s.storage.SaveUser(s.ctx, user)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetUser(s.ctx, "u1")
	s.Require().NoError(err)
	s.Equal(user, retrieved)
}

func (s *StorageSuite) TestGetUserNotFound() {
	_, err := s.storage.GetUser(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *StorageSuite) TestGetUserByCredentials() {
	user := &model.User{ID: "u1", Pass: "secret", Score: 10}
	s.Require().NoError(s.storage.SaveUser(s.ctx, user))

	retrieved, err := s.storage.GetUserByCredentials(s.ctx, "u1", "secret")
	s.Require().NoError(err)
	s.Equal(10, retrieved.Score)
}

func (s *StorageSuite) TestGetUserByCredentialsWrongPassword() {
	user := &model.User{ID: "u1", Pass: "secret", Score: 10}
	s.Require().NoError(s.storage.SaveUser(s.ctx, user))

	_, err := s.storage.GetUserByCredentials(s.ctx, "u1", "wrong")
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *StorageSuite) TestUpdateUserScore() {
	user := &model.User{ID: "u1", Pass: "secret", Score: 10}
	s.Require().NoError(s.storage.SaveUser(s.ctx, user))

	err := s.storage.UpdateUserScore(s.ctx, "u1", 15)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetUser(s.ctx, "u1")
	s.Require().NoError(err)
	s.Equal(15, retrieved.Score)
	s.Equal("secret", retrieved.Pass, "score update must not clobber other fields")
}

func (s *StorageSuite) TestUpdateUserScoreMissingUser() {
	err := s.storage.UpdateUserScore(s.ctx, "nonexistent", 15)
	s.ErrorIs(err, model.ErrUserNotFound)
}

// Checkpoint tests

func (s *StorageSuite) TestSaveAndGetCheckpoint() {
	cp := &model.Checkpoint{CPID: "CP01", Point: 5}

	err := s.storage.SaveCheckpoint(s.ctx, cp)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetCheckpoint(s.ctx, "CP01")
	s.Require().NoError(err)
	s.Equal(cp, retrieved)
}

func (s *StorageSuite) TestGetCheckpointNotFound() {
	_, err := s.storage.GetCheckpoint(s.ctx, "UNKNOWN")
	s.ErrorIs(err, model.ErrCheckpointNotFound)
}

func (s *StorageSuite) TestNegativePointCheckpoint() {
	cp := &model.Checkpoint{CPID: "PENALTY", Point: -3}
	s.Require().NoError(s.storage.SaveCheckpoint(s.ctx, cp))

	retrieved, err := s.storage.GetCheckpoint(s.ctx, "PENALTY")
	s.Require().NoError(err)
	s.Equal(-3, retrieved.Point)
}

func (s *StorageSuite) TestServerError() {
	s.mini.Close()

	_, err := s.storage.GetUser(s.ctx, "u1")
	s.Error(err)
	s.NotErrorIs(err, model.ErrUserNotFound)
}
