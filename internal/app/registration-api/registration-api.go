// Package registrationapi собирает и запускает HTTP-сервис регистрации на конференцию.
package registrationapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/yaicess/conference-registration/internal/config"
	"github.com/yaicess/conference-registration/internal/lib/rabbitmq"
	"github.com/yaicess/conference-registration/internal/lib/sl"
	"github.com/yaicess/conference-registration/internal/migrations"
	"github.com/yaicess/conference-registration/internal/services/auth"
	"github.com/yaicess/conference-registration/internal/services/notifier"
	"github.com/yaicess/conference-registration/internal/services/registration"
	"github.com/yaicess/conference-registration/internal/sessions"
	"github.com/yaicess/conference-registration/internal/storage/repository"
)

// App — собранный HTTP-сервис со всеми зависимостями.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	conn   *amqp.Connection
	ch     *amqp.Channel
}

// New подключает хранилище, Redis и RabbitMQ, прогоняет миграции
// и собирает маршруты. RabbitMQ необязателен: без него сервис работает,
// но подтверждения не отправляются.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	store, err := sessions.NewRedisStore(ctx, cfg.RedisConnection, cfg.SessionTimeout())
	if err != nil {
		return nil, err
	}

	var conn *amqp.Connection
	var ch *amqp.Channel
	var confirmations registration.Notifier
	if cfg.RabbitConnection.Address != "" {
		conn, err = rabbitmq.Connect(cfg.RabbitConnection.Address, cfg.RabbitConnection.Retries, cfg.RabbitConnection.RetryDelay)
		if err != nil {
			logger.Warn("rabbitmq unavailable, confirmations disabled", sl.Err(err))
		} else {
			ch, err = rabbitmq.SetupChannel(conn, rabbitmq.GetNotificationQueues())
			if err != nil {
				return nil, err
			}
			confirmations = notifier.NewPublisher(ch)
		}
	}

	registrationService := registration.New(db, confirmations, logger)
	authService := auth.New(db, store, cfg.SessionTimeout(), logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, cfg, registrationService, authService, db)

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		conn:   conn,
		ch:     ch,
	}, nil
}

// Run запускает HTTP-сервер и останавливает его по отмене контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if a.ch != nil {
			_ = a.ch.Close()
		}
		if a.conn != nil {
			_ = a.conn.Close()
		}
		_ = a.db.DB.Close()
		return err
	}
}
