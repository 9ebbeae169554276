package auth

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yaicess/conference-registration/internal/lib/password"
	"github.com/yaicess/conference-registration/internal/models"
	"github.com/yaicess/conference-registration/internal/sessions"
	"github.com/yaicess/conference-registration/internal/storage/repository"
)

type MockAdminRepository struct {
	mock.Mock
}

func (m *MockAdminRepository) GetActiveAdminByUsername(ctx context.Context, username string) (*models.Admin, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Admin), args.Error(1)
}

func (m *MockAdminRepository) UpdateLastLogin(ctx context.Context, adminID int) error {
	args := m.Called(ctx, adminID)
	return args.Error(0)
}

type MockStore struct {
	mock.Mock
}

func (m *MockStore) Create(ctx context.Context, sess models.AdminSession) (string, error) {
	args := m.Called(ctx, sess)
	return args.String(0), args.Error(1)
}

func (m *MockStore) Get(ctx context.Context, token string) (*models.AdminSession, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AdminSession), args.Error(1)
}

func (m *MockStore) Destroy(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testAdmin(t *testing.T, pass string) *models.Admin {
	hash, err := password.GetHash(pass)
	require.NoError(t, err)
	return &models.Admin{
		ID:           1,
		Username:     "admin",
		PasswordHash: hash,
		FullName:     "System Administrator",
		Role:         "admin",
	}
}

func TestLogin_Success(t *testing.T) {
	repo := new(MockAdminRepository)
	store := new(MockStore)
	svc := New(repo, store, 120*time.Minute, discardLogger())

	repo.On("GetActiveAdminByUsername", mock.Anything, "admin").
		Return(testAdmin(t, "admin123"), nil)
	repo.On("UpdateLastLogin", mock.Anything, 1).Return(nil)
	store.On("Create", mock.Anything, mock.MatchedBy(func(sess models.AdminSession) bool {
		return sess.Username == "admin" && sess.AdminID == 1
	})).Return("token-123", nil)

	token, sess, err := svc.Login(context.Background(), "admin", "admin123")
	require.NoError(t, err)
	assert.Equal(t, "token-123", token)
	assert.Equal(t, "System Administrator", sess.FullName)
	assert.WithinDuration(t, time.Now(), sess.LoginTime, time.Minute)
	repo.AssertExpectations(t)
	store.AssertExpectations(t)
}

func TestLogin_UnknownUsername(t *testing.T) {
	repo := new(MockAdminRepository)
	store := new(MockStore)
	svc := New(repo, store, 120*time.Minute, discardLogger())

	repo.On("GetActiveAdminByUsername", mock.Anything, "ghost").
		Return(nil, repository.ErrAdminNotFound)

	_, _, err := svc.Login(context.Background(), "ghost", "whatever")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	store.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := new(MockAdminRepository)
	store := new(MockStore)
	svc := New(repo, store, 120*time.Minute, discardLogger())

	repo.On("GetActiveAdminByUsername", mock.Anything, "admin").
		Return(testAdmin(t, "admin123"), nil)

	_, _, err := svc.Login(context.Background(), "admin", "wrong-pass")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	store.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLogin_LastLoginFailureIsNotFatal(t *testing.T) {
	repo := new(MockAdminRepository)
	store := new(MockStore)
	svc := New(repo, store, 120*time.Minute, discardLogger())

	repo.On("GetActiveAdminByUsername", mock.Anything, "admin").
		Return(testAdmin(t, "admin123"), nil)
	repo.On("UpdateLastLogin", mock.Anything, 1).Return(errors.New("db is down"))
	store.On("Create", mock.Anything, mock.Anything).Return("token-123", nil)

	token, _, err := svc.Login(context.Background(), "admin", "admin123")
	require.NoError(t, err)
	assert.Equal(t, "token-123", token)
}

func TestLogout_Success(t *testing.T) {
	repo := new(MockAdminRepository)
	store := new(MockStore)
	svc := New(repo, store, 120*time.Minute, discardLogger())

	store.On("Get", mock.Anything, "token-123").
		Return(&models.AdminSession{Username: "admin"}, nil)
	store.On("Destroy", mock.Anything, "token-123").Return(nil)

	err := svc.Logout(context.Background(), "token-123")
	require.NoError(t, err)
	store.AssertExpectations(t)
}

func TestLogout_NoSession(t *testing.T) {
	repo := new(MockAdminRepository)
	store := new(MockStore)
	svc := New(repo, store, 120*time.Minute, discardLogger())

	t.Run("пустой токен", func(t *testing.T) {
		err := svc.Logout(context.Background(), "")
		require.ErrorIs(t, err, ErrNoActiveSession)
	})

	t.Run("unknown token", func(t *testing.T) {
		store.On("Get", mock.Anything, "stale-token").
			Return(nil, sessions.ErrSessionNotFound)

		err := svc.Logout(context.Background(), "stale-token")
		require.ErrorIs(t, err, ErrNoActiveSession)
	})
}

func TestCurrent(t *testing.T) {
	repo := new(MockAdminRepository)
	store := new(MockStore)
	svc := New(repo, store, 120*time.Minute, discardLogger())

	store.On("Get", mock.Anything, "token-123").
		Return(&models.AdminSession{Username: "admin"}, nil)
	store.On("Get", mock.Anything, "stale-token").
		Return(nil, sessions.ErrSessionNotFound)

	sess, err := svc.Current(context.Background(), "token-123")
	require.NoError(t, err)
	assert.Equal(t, "admin", sess.Username)

	_, err = svc.Current(context.Background(), "stale-token")
	require.ErrorIs(t, err, ErrNoActiveSession)

	_, err = svc.Current(context.Background(), "")
	require.ErrorIs(t, err, ErrNoActiveSession)
}

func TestCheckTimeout(t *testing.T) {
	repo := new(MockAdminRepository)
	store := new(MockStore)
	svc := New(repo, store, 120*time.Minute, discardLogger())

	t.Run("живая сессия", func(t *testing.T) {
		sess := &models.AdminSession{Username: "admin", LoginTime: time.Now().Add(-time.Hour)}
		assert.False(t, svc.CheckTimeout(context.Background(), "token-123", sess))
	})

	t.Run("expired session is destroyed", func(t *testing.T) {
		store.On("Destroy", mock.Anything, "token-123").Return(nil)

		sess := &models.AdminSession{Username: "admin", LoginTime: time.Now().Add(-121 * time.Minute)}
		assert.True(t, svc.CheckTimeout(context.Background(), "token-123", sess))
		store.AssertExpectations(t)
	})
}
