package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/yaicess/conference-registration/internal/models"
)

// GetActiveAdminByUsername возвращает активную учётную запись администратора
// по точному имени пользователя. Отключённые записи неотличимы от несуществующих:
// в обоих случаях возвращается ErrAdminNotFound.
func (s *Storage) GetActiveAdminByUsername(ctx context.Context, username string) (*models.Admin, error) {
	const op = "storage.GetActiveAdminByUsername"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, username, password, email, full_name, role, status, last_login
			  FROM admin_users
			  WHERE username = $1 AND status = 'active'`
	a := &models.Admin{}
	var lastLogin sql.NullTime
	err := s.DB.QueryRowContext(ctx, query, username).Scan(&a.ID, &a.Username,
		&a.PasswordHash, &a.Email, &a.FullName, &a.Role, &a.Status, &lastLogin)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, ErrAdminNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if lastLogin.Valid {
		a.LastLogin = &lastLogin.Time
	}
	return a, nil
}

// UpdateLastLogin фиксирует момент успешного входа администратора.
func (s *Storage) UpdateLastLogin(ctx context.Context, adminID int) error {
	const op = "storage.UpdateLastLogin"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE admin_users SET last_login = NOW() WHERE id = $1`
	if _, err := s.DB.ExecContext(ctx, query, adminID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// CreateAdmin сохраняет новую учётную запись администратора (шаг установки)
// и возвращает её ID. Пароль уже должен быть захэширован.
func (s *Storage) CreateAdmin(ctx context.Context, admin models.Admin) (int, error) {
	const op = "storage.CreateAdmin"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newID int
	query := `INSERT INTO admin_users (username, password, email, full_name, role)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id`
	if err := s.DB.QueryRowContext(ctx, query,
		admin.Username, admin.PasswordHash, admin.Email, admin.FullName, admin.Role).Scan(&newID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// AdminUsernameExists сообщает, занято ли имя пользователя администратора.
func (s *Storage) AdminUsernameExists(ctx context.Context, username string) (bool, error) {
	const op = "storage.AdminUsernameExists"
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM admin_users WHERE username = $1)`
	if err := s.DB.QueryRowContext(ctx, query, username).Scan(&exists); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return exists, nil
}
