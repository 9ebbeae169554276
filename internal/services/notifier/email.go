package notifier

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"log/slog"

	"github.com/yaicess/conference-registration/internal/lib/sl"
	"github.com/yaicess/conference-registration/internal/lib/smtp"
)

// confirmationTemplate — HTML-шаблон письма с подтверждением регистрации.
var confirmationTemplate = template.Must(template.New("confirmation").Parse(`<!DOCTYPE html>
<html>
<head>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); color: white; padding: 20px; text-align: center; }
        .content { padding: 20px; background: #f9f9f9; }
        .footer { text-align: center; padding: 20px; color: #666; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>YAICESS Solutions Tech Conference</h1>
            <p>Registration Confirmation</p>
        </div>
        <div class="content">
            <h2>Thank you for registering!</h2>
            <p>Dear {{.FullName}},</p>
            <p>Your registration for the YAICESS Solutions Tech Conference has been confirmed.</p>

            <h3>Registration Details:</h3>
            <ul>
                <li><strong>Name:</strong> {{.FullName}}</li>
                <li><strong>Email:</strong> {{.Email}}</li>
                <li><strong>Phone:</strong> {{.Phone}}</li>
                <li><strong>Organization:</strong> {{.Organization}}</li>
                <li><strong>Session:</strong> {{.SessionChoice}}</li>
                <li><strong>Registration ID:</strong> #{{.RegistrationID}}</li>
            </ul>

            <p>We look forward to seeing you at the conference!</p>
        </div>
        <div class="footer">
            <p>&copy; 2025 YAICESS Solutions. All rights reserved.</p>
        </div>
    </div>
</body>
</html>`))

// EmailSender отправляет письма с подтверждением через SMTP.
type EmailSender struct {
	transport smtp.TransportInterface
	log       *slog.Logger
}

// NewEmailSender создает новый EmailSender.
func NewEmailSender(transport smtp.TransportInterface, log *slog.Logger) *EmailSender {
	return &EmailSender{transport: transport, log: log}
}

// Handle разбирает событие подтверждения из очереди и отправляет письмо.
// Используется как обработчик потребителя RabbitMQ.
func (s *EmailSender) Handle(body []byte) error {
	const op = "notifier.Handle"

	var msg ConfirmationMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.Send(msg); err != nil {
		s.log.Error("failed to send confirmation email",
			slog.Int("registration_id", msg.RegistrationID), sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("confirmation email sent",
		slog.Int("registration_id", msg.RegistrationID),
		slog.String("email", msg.Email))
	return nil
}

// Send формирует письмо из шаблона и отправляет его через SMTP.
func (s *EmailSender) Send(msg ConfirmationMessage) error {
	const op = "notifier.Send"

	var bodyBuf bytes.Buffer
	if err := confirmationTemplate.Execute(&bodyBuf, msg); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	client, err := s.transport.Connect()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		if err := client.Quit(); err != nil {
			_ = client.Close()
		}
	}()

	from := s.transport.GetSMTPUser()
	if err := client.Mail(from); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := client.Rcpt(msg.Email); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	headers := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n",
		from, msg.Email, "Conference Registration Confirmation")
	if _, err := w.Write([]byte(headers)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if _, err := w.Write(bodyBuf.Bytes()); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
