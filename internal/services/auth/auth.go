// Package auth реализует вход и выход администраторов и контроль таймаута сессии.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/yaicess/conference-registration/internal/lib/password"
	"github.com/yaicess/conference-registration/internal/lib/sl"
	"github.com/yaicess/conference-registration/internal/models"
	"github.com/yaicess/conference-registration/internal/sessions"
	"github.com/yaicess/conference-registration/internal/storage/repository"
)

var (
	// ErrInvalidCredentials возвращается и для неизвестного username, и для
	// неверного пароля, чтобы ответ не раскрывал, какая часть пары неверна.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrNoActiveSession — у клиента нет действующей админской сессии.
	ErrNoActiveSession = errors.New("no active session")
)

// AdminRepository определяет методы хранилища, нужные сервису аутентификации.
type AdminRepository interface {
	// GetActiveAdminByUsername возвращает действующего администратора по username.
	GetActiveAdminByUsername(ctx context.Context, username string) (*models.Admin, error)
	// UpdateLastLogin фиксирует время успешного входа.
	UpdateLastLogin(ctx context.Context, adminID int) error
}

// Service реализует аутентификацию администраторов поверх серверных сессий.
type Service struct {
	repo    AdminRepository
	store   sessions.Store
	timeout time.Duration
	log     *slog.Logger
}

// New создает новый Service. timeout — период простоя, после которого
// сессия считается истёкшей и уничтожается.
func New(repo AdminRepository, store sessions.Store, timeout time.Duration, log *slog.Logger) *Service {
	return &Service{
		repo:    repo,
		store:   store,
		timeout: timeout,
		log:     log,
	}
}

// Login сверяет пару username/password с хранилищем и создает сессию.
// Возвращает токен сессии и её содержимое.
func (s *Service) Login(ctx context.Context, username, pass string) (string, *models.AdminSession, error) {
	const op = "auth.Login"

	admin, err := s.repo.GetActiveAdminByUsername(ctx, username)
	if errors.Is(err, repository.ErrAdminNotFound) {
		return "", nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := password.CompareHash(admin.PasswordHash, pass); err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	if err := s.repo.UpdateLastLogin(ctx, admin.ID); err != nil {
		s.log.Warn("failed to update last login", sl.Err(err))
	}

	sess := models.AdminSession{
		AdminID:   admin.ID,
		Username:  admin.Username,
		FullName:  admin.FullName,
		Role:      admin.Role,
		LoginTime: time.Now(),
	}

	token, err := s.store.Create(ctx, sess)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("admin logged in", slog.String("username", admin.Username))
	return token, &sess, nil
}

// Logout уничтожает сессию по токену. Отсутствие сессии возвращается
// как ErrNoActiveSession.
func (s *Service) Logout(ctx context.Context, token string) error {
	const op = "auth.Logout"

	if token == "" {
		return fmt.Errorf("%s: %w", op, ErrNoActiveSession)
	}
	if _, err := s.store.Get(ctx, token); err != nil {
		if errors.Is(err, sessions.ErrSessionNotFound) {
			return fmt.Errorf("%s: %w", op, ErrNoActiveSession)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.store.Destroy(ctx, token); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Current возвращает сессию по токену или ErrNoActiveSession.
func (s *Service) Current(ctx context.Context, token string) (*models.AdminSession, error) {
	const op = "auth.Current"

	if token == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrNoActiveSession)
	}
	sess, err := s.store.Get(ctx, token)
	if errors.Is(err, sessions.ErrSessionNotFound) {
		return nil, fmt.Errorf("%s: %w", op, ErrNoActiveSession)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return sess, nil
}

// CheckTimeout сообщает, истекла ли сессия по простою, и уничтожает истёкшую.
// Отсчёт ведется от времени входа.
func (s *Service) CheckTimeout(ctx context.Context, token string, sess *models.AdminSession) bool {
	if time.Since(sess.LoginTime) <= s.timeout {
		return false
	}

	if err := s.store.Destroy(ctx, token); err != nil {
		s.log.Warn("failed to destroy expired session", sl.Err(err))
	}
	s.log.Info("admin session expired", slog.String("username", sess.Username))
	return true
}
