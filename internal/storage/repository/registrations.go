package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/yaicess/conference-registration/internal/models"
)

// CreateRegistration вставляет новую регистрацию и возвращает её вместе с
// присвоенными хранилищем id, датой регистрации и статусом.
// Уникальность действующего email обеспечивает частичный уникальный индекс:
// нарушение транслируется в ErrEmailExists.
func (s *Storage) CreateRegistration(ctx context.Context, reg models.Registration) (*models.Registration, error) {
	const op = "storage.CreateRegistration"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO registrations (full_name, email, phone, organization, session_choice)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id, registration_date, status`
	err := s.DB.QueryRowContext(ctx, query,
		reg.FullName, reg.Email, reg.Phone, reg.Organization, reg.SessionChoice).
		Scan(&reg.ID, &reg.RegistrationDate, &reg.Status)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, fmt.Errorf("%s: %w", op, ErrEmailExists)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &reg, nil
}

// EmailExists сообщает, есть ли действующая регистрация с данным нормализованным email.
func (s *Storage) EmailExists(ctx context.Context, email string) (bool, error) {
	const op = "storage.EmailExists"
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT EXISTS (
				  SELECT 1 FROM registrations
				  WHERE lower(email) = $1 AND status = 'active'
			  )`
	var exists bool
	if err := s.DB.QueryRowContext(ctx, query, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return exists, nil
}

// ListActiveRegistrations возвращает все действующие регистрации,
// новые первыми.
func (s *Storage) ListActiveRegistrations(ctx context.Context) ([]*models.Registration, error) {
	const op = "storage.ListActiveRegistrations"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, full_name, email, phone, organization, session_choice,
				  registration_date, status
			  FROM registrations
			  WHERE status = 'active'
			  ORDER BY registration_date DESC, id DESC`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Registration
	for rows.Next() {
		var item models.Registration
		if err := rows.Scan(&item.ID, &item.FullName, &item.Email, &item.Phone,
			&item.Organization, &item.SessionChoice, &item.RegistrationDate, &item.Status); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// GetActiveRegistration возвращает действующую регистрацию по ID.
// Для отменённых и несуществующих записей возвращается ErrRegistrationNotFound.
func (s *Storage) GetActiveRegistration(ctx context.Context, id int) (*models.Registration, error) {
	const op = "storage.GetActiveRegistration"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, full_name, email, phone, organization, session_choice,
				  registration_date, status
			  FROM registrations
			  WHERE id = $1 AND status = 'active'`
	var item models.Registration
	err := s.DB.QueryRowContext(ctx, query, id).Scan(&item.ID, &item.FullName, &item.Email,
		&item.Phone, &item.Organization, &item.SessionChoice, &item.RegistrationDate, &item.Status)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, ErrRegistrationNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &item, nil
}

// CancelRegistration переводит действующую регистрацию в статус cancelled.
// Это единственный путь удаления: строка остаётся в таблице.
// Если действующей записи с таким ID нет, возвращается ErrRegistrationNotFound.
func (s *Storage) CancelRegistration(ctx context.Context, id int) error {
	const op = "storage.CancelRegistration"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE registrations
			  SET status = 'cancelled'
			  WHERE id = $1 AND status = 'active'`
	result, err := s.DB.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, ErrRegistrationNotFound)
	}
	return nil
}

// CountActiveRegistrations возвращает число действующих регистраций.
func (s *Storage) CountActiveRegistrations(ctx context.Context) (int, error) {
	const op = "storage.CountActiveRegistrations"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var total int
	query := `SELECT COUNT(*) FROM registrations WHERE status = 'active'`
	if err := s.DB.QueryRowContext(ctx, query).Scan(&total); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return total, nil
}

// CountRecentRegistrations возвращает число действующих регистраций
// за последние 24 часа от момента вызова.
func (s *Storage) CountRecentRegistrations(ctx context.Context) (int, error) {
	const op = "storage.CountRecentRegistrations"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var total int
	query := `SELECT COUNT(*) FROM registrations
			  WHERE status = 'active' AND registration_date >= $1`
	if err := s.DB.QueryRowContext(ctx, query, time.Now().Add(-24*time.Hour)).Scan(&total); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return total, nil
}

// CountBySession группирует действующие регистрации по выбранной секции.
func (s *Storage) CountBySession(ctx context.Context) (map[string]int, error) {
	const op = "storage.CountBySession"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT session_choice, COUNT(*)
			  FROM registrations
			  WHERE status = 'active'
			  GROUP BY session_choice`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make(map[string]int)
	for rows.Next() {
		var session string
		var count int
		if err := rows.Scan(&session, &count); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result[session] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
