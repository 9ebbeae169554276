// Package sender собирает и запускает сервис отправки писем с подтверждениями.
package sender

import (
	"context"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/yaicess/conference-registration/internal/config"
	"github.com/yaicess/conference-registration/internal/lib/rabbitmq"
	"github.com/yaicess/conference-registration/internal/lib/smtp"
	"github.com/yaicess/conference-registration/internal/services/notifier"
)

// App — собранный сервис отправки подтверждений.
type App struct {
	conn   *amqp.Connection
	ch     *amqp.Channel
	sender *notifier.EmailSender
	logger *slog.Logger
}

// New подключается к RabbitMQ и готовит SMTP-транспорт.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	conn, err := rabbitmq.Connect(cfg.RabbitConnection.Address, cfg.RabbitConnection.Retries, cfg.RabbitConnection.RetryDelay)
	if err != nil {
		return nil, err
	}

	queues := rabbitmq.GetNotificationQueues()
	ch, err := rabbitmq.SetupChannel(conn, queues)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	transport := smtp.NewTransport(cfg, logger)
	sender := notifier.NewEmailSender(transport, logger)

	return &App{
		conn:   conn,
		ch:     ch,
		sender: sender,
		logger: logger,
	}, nil
}

// Run запускает потребителя очереди подтверждений и блокируется
// до отмены контекста.
func (a *App) Run(ctx context.Context) error {
	err := rabbitmq.ConsumeMessages(ctx, a.ch, "registration.confirmation", a.sender.Handle)
	if err != nil {
		a.logger.Error("failed to start confirmation consumer", slog.Any("err", err))
		return err
	}

	<-ctx.Done()
	a.logger.Info("sender service shutting down gracefully")

	if err := a.ch.Close(); err != nil {
		a.logger.Error("failed to close channel", slog.Any("err", err))
	}
	if err := a.conn.Close(); err != nil {
		a.logger.Error("failed to close connection", slog.Any("err", err))
	}

	return nil
}
