package service

import (
	"context"
	"fmt"

	gomail "gopkg.in/gomail.v2"
)

// SMTPEmailService sends emails over plain SMTP via gomail. Used for
// self-hosted deployments where the Resend API is not an option.
type SMTPEmailService struct {
	from   string
	dialer *gomail.Dialer
}

func NewSMTPEmailService(host string, port int, username, password, from string) (*SMTPEmailService, error) {
	if host == "" || port == 0 {
		return nil, fmt.Errorf("smtp host and port are required")
	}
	if from == "" {
		return nil, fmt.Errorf("email from is required")
	}
	return &SMTPEmailService{
		from:   from,
		dialer: gomail.NewDialer(host, port, username, password),
	}, nil
}

func (s *SMTPEmailService) SendOneTimeCode(ctx context.Context, toEmail, kind, code string) error {
	if toEmail == "" || code == "" {
		return fmt.Errorf("toEmail and code are required")
	}
	return s.send(toEmail, otpSubject(kind), otpBody(code))
}

func (s *SMTPEmailService) SendResponseNotification(ctx context.Context, toEmail, postTitle, responseAuthor, responseContent, postURL string) error {
	subject := fmt.Sprintf("Новый отклик на ваш пост «%s»", truncateTitle(postTitle))
	body := fmt.Sprintf(
		"Здравствуйте!\n\n"+
			"На ваш пост «%s» был оставлен новый отклик.\n\n"+
			"Автор отклика: %s\n"+
			"Содержание отклика: %s\n\n"+
			"Перейти к посту: %s\n\n"+
			"С уважением,\nКоманда MyFanBoard.",
		postTitle, responseAuthor, responseContent, postURL,
	)
	return s.send(toEmail, subject, body)
}

func (s *SMTPEmailService) SendResponseAccepted(ctx context.Context, toEmail, postTitle, postURL string) error {
	subject := fmt.Sprintf("Ваш отклик на пост «%s» принят", truncateTitle(postTitle))
	body := fmt.Sprintf(
		"Здравствуйте!\n\n"+
			"Автор поста «%s» принял ваш отклик.\n\n"+
			"Перейти к посту: %s\n\n"+
			"С уважением,\nКоманда MyFanBoard.",
		postTitle, postURL,
	)
	return s.send(toEmail, subject, body)
}

func (s *SMTPEmailService) SendNewsletter(ctx context.Context, toEmail, subject, content string) error {
	return s.send(toEmail, subject, content)
}

func (s *SMTPEmailService) send(toEmail, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("smtp send failed: %w", err)
	}
	return nil
}
