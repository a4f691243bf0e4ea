package service

import (
	"context"
	"fmt"
	"log"

	"github.com/Keavors/MyFanBoard/internal/domain/entity"
)

// EmailSender sends transactional emails. Flows call it strictly after their
// database transaction committed; a send failure never unwinds state.
type EmailSender interface {
	SendOneTimeCode(ctx context.Context, toEmail, kind, code string) error
	SendResponseNotification(ctx context.Context, toEmail, postTitle, responseAuthor, responseContent, postURL string) error
	SendResponseAccepted(ctx context.Context, toEmail, postTitle, postURL string) error
	SendNewsletter(ctx context.Context, toEmail, subject, content string) error
}

// otpSubject возвращает тему письма для типа кода
func otpSubject(kind string) string {
	switch kind {
	case entity.CodeKindRegistration:
		return "Подтверждение регистрации на MyFanBoard"
	case entity.CodeKindLogin:
		return "Код для входа на MyFanBoard"
	case entity.CodeKindPasswordReset:
		return "Код для сброса доступа на MyFanBoard"
	default:
		return "Ваш код подтверждения MyFanBoard"
	}
}

// otpBody формирует текст письма с одноразовым кодом
func otpBody(code string) string {
	return fmt.Sprintf(
		"Здравствуйте!\n\n"+
			"Ваш код подтверждения: %s.\n\n"+
			"Код действителен в течение 10 минут. Не передавайте его никому.\n\n"+
			"Если вы не запрашивали этот код, просто проигнорируйте это письмо.\n\n"+
			"С уважением,\nКоманда MyFanBoard.",
		code,
	)
}

// NoopEmailService is used in development: emails are only logged.
type NoopEmailService struct{}

func (s *NoopEmailService) SendOneTimeCode(ctx context.Context, toEmail, kind, code string) error {
	log.Printf("[EmailService] noop send %s code to=%s", kind, toEmail)
	return nil
}

func (s *NoopEmailService) SendResponseNotification(ctx context.Context, toEmail, postTitle, responseAuthor, responseContent, postURL string) error {
	log.Printf("[EmailService] noop send response notification to=%s post=%q", toEmail, postTitle)
	return nil
}

func (s *NoopEmailService) SendResponseAccepted(ctx context.Context, toEmail, postTitle, postURL string) error {
	log.Printf("[EmailService] noop send response accepted to=%s post=%q", toEmail, postTitle)
	return nil
}

func (s *NoopEmailService) SendNewsletter(ctx context.Context, toEmail, subject, content string) error {
	log.Printf("[EmailService] noop send newsletter to=%s subject=%q", toEmail, subject)
	return nil
}
