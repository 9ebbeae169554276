// Package notifier отвечает за подтверждения регистрации: публикация события
// в очередь при создании регистрации и отправка письма на стороне потребителя.
package notifier

import (
	"context"
	"fmt"
	"time"

	"github.com/streadway/amqp"

	"github.com/yaicess/conference-registration/internal/lib/rabbitmq"
	"github.com/yaicess/conference-registration/internal/models"
)

// ConfirmationMessage — полезная нагрузка события "регистрация подтверждена".
// Содержит все поля, нужные для письма, чтобы потребителю не требовался
// доступ к базе данных.
type ConfirmationMessage struct {
	RegistrationID int       `json:"registration_id"`
	FullName       string    `json:"full_name"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	Organization   string    `json:"organization"`
	SessionChoice  string    `json:"session_choice"`
	RegisteredAt   time.Time `json:"registered_at"`
}

// Publisher публикует события подтверждения в RabbitMQ.
type Publisher struct {
	ch *amqp.Channel
}

// NewPublisher создает новый Publisher поверх открытого канала.
func NewPublisher(ch *amqp.Channel) *Publisher {
	return &Publisher{ch: ch}
}

// SendConfirmation публикует событие подтверждения регистрации.
func (p *Publisher) SendConfirmation(_ context.Context, reg *models.Registration) error {
	const op = "notifier.SendConfirmation"

	msg := ConfirmationMessage{
		RegistrationID: reg.ID,
		FullName:       reg.FullName,
		Email:          reg.Email,
		Phone:          reg.Phone,
		Organization:   reg.Organization,
		SessionChoice:  reg.SessionChoice,
		RegisteredAt:   reg.RegistrationDate,
	}

	if err := rabbitmq.PublishMessage(p.ch, rabbitmq.Exchange, "confirmation", msg); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
