package repository

import (
	"context"
	"fmt"

	"github.com/yaicess/conference-registration/internal/models"
)

// ListConferenceSessions возвращает справочник секций конференции.
// Таблица только читается ядром; наполняется на шаге установки.
func (s *Storage) ListConferenceSessions(ctx context.Context) ([]*models.ConferenceSession, error) {
	const op = "storage.ListConferenceSessions"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, speaker, session_time, session_date, description
			  FROM conference_sessions
			  ORDER BY session_date, session_time`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.ConferenceSession
	for rows.Next() {
		var item models.ConferenceSession
		if err := rows.Scan(&item.ID, &item.Name, &item.Speaker, &item.SessionTime,
			&item.SessionDate, &item.Description); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// SeedConferenceSession добавляет секцию в справочник, если её ещё нет.
func (s *Storage) SeedConferenceSession(ctx context.Context, session models.ConferenceSession) error {
	const op = "storage.SeedConferenceSession"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO conference_sessions (name, speaker, session_time, session_date, description)
			  VALUES ($1, $2, $3, $4, $5)
			  ON CONFLICT (name) DO NOTHING`
	if _, err := s.DB.ExecContext(ctx, query, session.Name, session.Speaker,
		session.SessionTime, session.SessionDate, session.Description); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
