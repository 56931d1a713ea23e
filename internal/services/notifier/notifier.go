// Package notifier отправляет владельцам продуктов письма о решениях модерации.
// Сообщения приходят из очереди уведомлений, письмо формируется и уходит
// через SMTP транспорт.
package notifier

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/magabrotheeeer/tech-elevate/internal/lib/sl"
	"github.com/magabrotheeeer/tech-elevate/internal/lib/smtp"
	"github.com/magabrotheeeer/tech-elevate/internal/models"
)

// Service обрабатывает события модерации и отправляет письма владельцам.
type Service struct {
	transport smtp.TransportInterface
	log       *slog.Logger
}

// New создает новый экземпляр Service.
func New(log *slog.Logger, transport smtp.TransportInterface) *Service {
	return &Service{
		transport: transport,
		log:       log,
	}
}

// SendModerationResult разбирает событие модерации из очереди
// и отправляет владельцу продукта письмо с результатом.
func (s *Service) SendModerationResult(body []byte) error {
	var event models.ModerationEvent
	if err := json.Unmarshal(body, &event); err != nil {
		s.log.Error("failed to unmarshal message body", sl.Err(err))
		return fmt.Errorf("error unmarshalling message: %w", err)
	}

	to := []string{event.OwnerEmail}
	var subject, bodyText string
	switch event.Status {
	case models.StatusAccepted:
		subject = "Ваш продукт одобрен"
		bodyText = fmt.Sprintf("Здравствуйте, %s!\n\nВаш продукт %q прошёл модерацию и опубликован на платформе.",
			event.OwnerName, event.ProductName)
	case models.StatusRejected:
		subject = "Ваш продукт отклонён"
		bodyText = fmt.Sprintf("Здравствуйте, %s!\n\nК сожалению, продукт %q не прошёл модерацию.\nВы можете исправить описание и отправить его повторно.",
			event.OwnerName, event.ProductName)
	default:
		s.log.Warn("moderation event with unknown status", slog.String("status", event.Status))
		return nil
	}

	return s.sendEmail(to, subject, bodyText)
}

func (s *Service) sendEmail(to []string, subject, bodyText string) error {
	msg := strings.Join([]string{
		"From: " + s.transport.GetSMTPUser(),
		"To: " + strings.Join(to, ";"),
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		bodyText,
	}, "\r\n")

	client, err := s.transport.Connect()
	if err != nil {
		s.log.Error("failed to connect to SMTP server", sl.Err(err))
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	if err := client.Mail(s.transport.GetSMTPUser()); err != nil {
		s.log.Error("failed to set MAIL FROM", sl.Err(err))
		return err
	}

	for _, addr := range to {
		if err := client.Rcpt(addr); err != nil {
			s.log.Error("failed to set RCPT TO", slog.String("recipient", addr), sl.Err(err))
			return err
		}
	}

	wc, err := client.Data()
	if err != nil {
		s.log.Error("failed to get data writer", sl.Err(err))
		return err
	}

	if _, err = wc.Write([]byte(msg)); err != nil {
		s.log.Error("failed to write email body", sl.Err(err))
		return err
	}

	if err = wc.Close(); err != nil {
		s.log.Error("failed to close data writer", sl.Err(err))
		return err
	}

	if err = client.Quit(); err != nil {
		s.log.Error("failed to quit SMTP client", sl.Err(err))
		return err
	}

	s.log.Info("email sent successfully", slog.Any("to", to))
	return nil
}
