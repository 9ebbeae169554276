// Package registration содержит бизнес-логику работы с регистрациями участников:
// создание с проверкой уникальности email, списки, отмена (soft delete),
// агрегированная статистика и экспорт в CSV.
package registration

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/yaicess/conference-registration/internal/lib/sanitize"
	"github.com/yaicess/conference-registration/internal/lib/sl"
	"github.com/yaicess/conference-registration/internal/models"
	"github.com/yaicess/conference-registration/internal/storage/repository"
	"github.com/yaicess/conference-registration/internal/validation"
)

var registrationsCreated = promauto.NewCounter(prometheus.CounterOpts{
	Name: "registrations_created_total",
	Help: "Total number of successfully created registrations.",
})

// ValidationError — невалидные поля заявки. Сообщения собраны по всем полям сразу.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Messages, ", ")
}

// Repository определяет методы хранилища, нужные сервису регистраций.
type Repository interface {
	// CreateRegistration вставляет регистрацию и возвращает её с присвоенным ID.
	CreateRegistration(ctx context.Context, reg models.Registration) (*models.Registration, error)
	// EmailExists сообщает о существовании действующей регистрации с данным email.
	EmailExists(ctx context.Context, email string) (bool, error)
	// ListActiveRegistrations возвращает действующие регистрации, новые первыми.
	ListActiveRegistrations(ctx context.Context) ([]*models.Registration, error)
	// GetActiveRegistration возвращает действующую регистрацию по ID.
	GetActiveRegistration(ctx context.Context, id int) (*models.Registration, error)
	// CancelRegistration переводит действующую регистрацию в cancelled.
	CancelRegistration(ctx context.Context, id int) error
	// CountActiveRegistrations возвращает общее число действующих регистраций.
	CountActiveRegistrations(ctx context.Context) (int, error)
	// CountRecentRegistrations возвращает число действующих регистраций за 24 часа.
	CountRecentRegistrations(ctx context.Context) (int, error)
	// CountBySession группирует действующие регистрации по секциям.
	CountBySession(ctx context.Context) (map[string]int, error)
	// ListConferenceSessions возвращает справочник секций.
	ListConferenceSessions(ctx context.Context) ([]*models.ConferenceSession, error)
}

// Notifier отправляет участнику подтверждение регистрации.
type Notifier interface {
	SendConfirmation(ctx context.Context, reg *models.Registration) error
}

// Service реализует бизнес-логику регистраций.
type Service struct {
	repo     Repository
	notifier Notifier
	validate *validation.Engine
	log      *slog.Logger
}

// New создает новый Service. notifier может быть nil, тогда подтверждения не отправляются.
func New(repo Repository, notifier Notifier, log *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		notifier: notifier,
		validate: validation.New(),
		log:      log,
	}
}

// Create санитизирует поля заявки, валидирует их, проверяет уникальность email
// среди действующих регистраций и сохраняет запись. Порядок существенный:
// ошибка валидации не доходит до хранилища, проверка дубликата выполняется
// только после успешной валидации. Конфликт email возвращается как
// repository.ErrEmailExists и отличим от ошибок валидации.
func (s *Service) Create(ctx context.Context, req models.DummyRegistration) (*models.Registration, error) {
	req.FullName = sanitize.Field(req.FullName)
	req.Email = sanitize.Email(req.Email)
	req.Phone = sanitize.Field(req.Phone)
	req.Organization = sanitize.Field(req.Organization)
	req.SessionChoice = sanitize.Field(req.SessionChoice)

	if msgs := s.validate.Registration(req); len(msgs) > 0 {
		return nil, &ValidationError{Messages: msgs}
	}

	// Предварительная проверка ради понятного ответа; гонку двух одновременных
	// create закрывает частичный уникальный индекс в хранилище.
	exists, err := s.repo.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("email %s: %w", req.Email, repository.ErrEmailExists)
	}

	reg, err := s.repo.CreateRegistration(ctx, models.Registration{
		FullName:      req.FullName,
		Email:         req.Email,
		Phone:         req.Phone,
		Organization:  req.Organization,
		SessionChoice: req.SessionChoice,
	})
	if err != nil {
		return nil, err
	}

	registrationsCreated.Inc()
	s.log.Info("new registration",
		slog.Int("id", reg.ID),
		slog.String("email", reg.Email),
		slog.String("session", reg.SessionChoice))

	if s.notifier != nil {
		if err := s.notifier.SendConfirmation(ctx, reg); err != nil {
			s.log.Warn("failed to send confirmation", sl.Err(err))
		}
	}

	return reg, nil
}

// List возвращает все действующие регистрации, новые первыми.
func (s *Service) List(ctx context.Context) ([]*models.Registration, error) {
	return s.repo.ListActiveRegistrations(ctx)
}

// Get возвращает действующую регистрацию по ID.
func (s *Service) Get(ctx context.Context, id int) (*models.Registration, error) {
	return s.repo.GetActiveRegistration(ctx, id)
}

// Cancel загружает действующую регистрацию, снимает снапшот её полей для ответа
// и переводит запись в cancelled. Единственный путь удаления; обратной операции
// в публичном API нет.
func (s *Service) Cancel(ctx context.Context, id int) (*models.Registration, error) {
	snapshot, err := s.repo.GetActiveRegistration(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.CancelRegistration(ctx, id); err != nil {
		return nil, err
	}

	snapshot.Status = models.StatusCancelled
	s.log.Info("registration cancelled",
		slog.Int("id", snapshot.ID),
		slog.String("email", snapshot.Email))
	return snapshot, nil
}

// Stats считает статистику тремя последовательными запросами без общего
// снапшота: при конкурентных записях значения могут мгновенно расходиться,
// что приемлемо для дашборда.
func (s *Service) Stats(ctx context.Context) (*models.Stats, error) {
	total, err := s.repo.CountActiveRegistrations(ctx)
	if err != nil {
		return nil, err
	}
	recent, err := s.repo.CountRecentRegistrations(ctx)
	if err != nil {
		return nil, err
	}
	bySession, err := s.repo.CountBySession(ctx)
	if err != nil {
		return nil, err
	}

	return &models.Stats{
		TotalRegistrations:  total,
		RecentRegistrations: recent,
		BySession:           bySession,
		LastUpdated:         time.Now(),
	}, nil
}

// Sessions возвращает справочник секций конференции.
func (s *Service) Sessions(ctx context.Context) ([]*models.ConferenceSession, error) {
	return s.repo.ListConferenceSessions(ctx)
}

// csvHeader — фиксированный заголовок экспорта; порядок колонок — часть контракта.
var csvHeader = []string{
	"ID", "Full Name", "Email", "Phone", "Organization",
	"Session Choice", "Registration Date", "Status",
}

// WriteCSV выгружает действующие регистрации в CSV. Экспорт повторяет List:
// отменённые записи не попадают в файл.
func (s *Service) WriteCSV(ctx context.Context, w io.Writer) error {
	items, err := s.repo.ListActiveRegistrations(ctx)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, item := range items {
		record := []string{
			strconv.Itoa(item.ID),
			item.FullName,
			item.Email,
			item.Phone,
			item.Organization,
			item.SessionChoice,
			item.RegistrationDate.Format("2006-01-02 15:04:05"),
			string(item.Status),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
