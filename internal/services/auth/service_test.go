package auth

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qrally/qrally/internal/dependencies/mocks"
	"github.com/qrally/qrally/internal/model"
	"github.com/qrally/qrally/internal/storage"
	"github.com/qrally/qrally/internal/storage/memory"
)

func newTestService(t *testing.T) (*Service, *memory.Storage, *mocks.MockClock) {
	t.Helper()

	store := memory.New()
	clk := mocks.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	svc := New(store, clk, DefaultConfig())

	require.NoError(t, store.SaveUser(context.Background(), &model.User{
		ID:    "u1",
		Pass:  "secret",
		Score: 10,
	}))

	return svc, store, clk
}

func TestLoginSuccess(t *testing.T) {
	svc, _, _ := newTestService(t)

	session, err := svc.Login(context.Background(), "u1", "secret")
	require.NoError(t, err)

	assert.Equal(t, model.UserID("u1"), session.UserID)
	assert.Equal(t, 10, session.User.Score)
	assert.NotEmpty(t, session.Token)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Login(context.Background(), "u1", "wrong")
	assert.ErrorIs(t, err, ErrLoginFailed)
}

func TestLoginUnknownUser(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Login(context.Background(), "nobody", "secret")
	assert.ErrorIs(t, err, ErrLoginFailed)
}

// failingStorage simulates a backend outage
type failingStorage struct {
	storage.Storage
}

func (f *failingStorage) GetUserByCredentials(ctx context.Context, id model.UserID, pass string) (*model.User, error) {
	return nil, errors.New("connection refused")
}

func TestLoginBackendErrorIsUniform(t *testing.T) {
	clk := mocks.NewMockClock(time.Now())
	svc := New(&failingStorage{Storage: memory.New()}, clk, DefaultConfig())

	// A transport error is indistinguishable from bad credentials
	_, err := svc.Login(context.Background(), "u1", "secret")
	assert.ErrorIs(t, err, ErrLoginFailed)
}

func TestValidateSession(t *testing.T) {
	svc, _, _ := newTestService(t)

	session, err := svc.Login(context.Background(), "u1", "secret")
	require.NoError(t, err)

	got, err := svc.ValidateSession(session.Token)
	require.NoError(t, err)
	assert.Equal(t, session.Token, got.Token)

	_, err = svc.ValidateSession("sess_bogus")
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestSessionExpiry(t *testing.T) {
	svc, _, clk := newTestService(t)

	session, err := svc.Login(context.Background(), "u1", "secret")
	require.NoError(t, err)

	clk.Advance(25 * time.Hour)

	_, err = svc.ValidateSession(session.Token)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestInvalidateSessionIdempotent(t *testing.T) {
	svc, _, _ := newTestService(t)

	session, err := svc.Login(context.Background(), "u1", "secret")
	require.NoError(t, err)

	svc.InvalidateSession(session.Token)
	svc.InvalidateSession(session.Token)

	_, err = svc.ValidateSession(session.Token)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestRefreshUser(t *testing.T) {
	svc, _, _ := newTestService(t)

	session, err := svc.Login(context.Background(), "u1", "secret")
	require.NoError(t, err)

	updated := session.User
	updated.Score = 15
	svc.RefreshUser(session.Token, updated)

	user, err := svc.GetUser(session.Token)
	require.NoError(t, err)
	assert.Equal(t, 15, user.Score)
}

func TestValidateSessionReturnsDetachedCopy(t *testing.T) {
	svc, _, _ := newTestService(t)

	session, err := svc.Login(context.Background(), "u1", "secret")
	require.NoError(t, err)

	held, err := svc.ValidateSession(session.Token)
	require.NoError(t, err)

	updated := held.User
	updated.Score = 99
	svc.RefreshUser(session.Token, updated)

	// The copy handed out before the refresh is untouched
	assert.Equal(t, 10, held.User.Score)

	fresh, err := svc.ValidateSession(session.Token)
	require.NoError(t, err)
	assert.Equal(t, 99, fresh.User.Score)
}

func TestRefreshUserConcurrentWithValidation(t *testing.T) {
	svc, _, _ := newTestService(t)

	session, err := svc.Login(context.Background(), "u1", "secret")
	require.NoError(t, err)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			updated := session.User
			updated.Score = i
			svc.RefreshUser(session.Token, updated)
		}
	}()

	// Readers must never observe a torn or racing write to the session's
	// user copy while a refresh is in flight
	for i := 0; i < 500; i++ {
		got, err := svc.ValidateSession(session.Token)
		require.NoError(t, err)
		assert.Equal(t, model.UserID("u1"), got.User.ID)
	}
	wg.Wait()
}

func TestCleanExpiredSessions(t *testing.T) {
	svc, _, clk := newTestService(t)

	session, err := svc.Login(context.Background(), "u1", "secret")
	require.NoError(t, err)

	clk.Advance(25 * time.Hour)
	svc.CleanExpiredSessions()

	_, err = svc.ValidateSession(session.Token)
	assert.ErrorIs(t, err, ErrInvalidSession)
}
