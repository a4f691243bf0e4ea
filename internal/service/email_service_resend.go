package service

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/resend/resend-go/v2"
)

// ResendEmailService sends emails via the Resend REST API.
type ResendEmailService struct {
	from   string
	client *resend.Client
}

func NewResendEmailService(apiKey, from string) (*ResendEmailService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("resend api key is required")
	}
	if from == "" {
		return nil, fmt.Errorf("email from is required")
	}
	return &ResendEmailService{
		from:   from,
		client: resend.NewClient(apiKey),
	}, nil
}

func (s *ResendEmailService) SendOneTimeCode(ctx context.Context, toEmail, kind, code string) error {
	if toEmail == "" || code == "" {
		return fmt.Errorf("toEmail and code are required")
	}
	// Idempotency key pins retries of the same issuance to one delivery.
	idempotencyKey := fmt.Sprintf("otp:%s:%s:%s", kind, toEmail, code)
	return s.send(ctx, toEmail, otpSubject(kind), otpBody(code), idempotencyKey)
}

func (s *ResendEmailService) SendResponseNotification(ctx context.Context, toEmail, postTitle, responseAuthor, responseContent, postURL string) error {
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
	return s.send(ctx, toEmail, subject, body, "")
}

func (s *ResendEmailService) SendResponseAccepted(ctx context.Context, toEmail, postTitle, postURL string) error {
	subject := fmt.Sprintf("Ваш отклик на пост «%s» принят", truncateTitle(postTitle))
	body := fmt.Sprintf(
		"Здравствуйте!\n\n"+
			"Автор поста «%s» принял ваш отклик.\n\n"+
			"Перейти к посту: %s\n\n"+
			"С уважением,\nКоманда MyFanBoard.",
		postTitle, postURL,
	)
	return s.send(ctx, toEmail, subject, body, "")
}

func (s *ResendEmailService) SendNewsletter(ctx context.Context, toEmail, subject, content string) error {
	return s.send(ctx, toEmail, subject, content, "")
}

func (s *ResendEmailService) send(ctx context.Context, toEmail, subject, text, idempotencyKey string) error {
	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{toEmail},
		Subject: subject,
		Text:    text,
	}

	options := &resend.SendEmailOptions{}
	if strings.TrimSpace(idempotencyKey) != "" {
		options.IdempotencyKey = strings.TrimSpace(idempotencyKey)
	}

	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		_, err := s.client.Emails.SendWithOptions(ctx, params, options)
		if err == nil {
			return nil
		}
		lastErr = err

		if wait, ok := resendRetryDelay(err, attempt); ok {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
				continue
			}
		}

		return fmt.Errorf("resend send failed: %w", err)
	}

	return fmt.Errorf("resend send failed after retries: %w", lastErr)
}

func resendRetryDelay(err error, attempt int) (time.Duration, bool) {
	var rateLimitErr *resend.RateLimitError
	if errors.As(err, &rateLimitErr) {
		if seconds, convErr := strconv.Atoi(strings.TrimSpace(rateLimitErr.RetryAfter)); convErr == nil && seconds > 0 {
			if seconds > 30 {
				seconds = 30
			}
			return time.Duration(seconds) * time.Second, true
		}
		return time.Duration(attempt+1) * time.Second, true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return time.Duration(attempt+1) * 500 * time.Millisecond, true
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "timeout") || strings.Contains(msg, "temporar") {
		return time.Duration(attempt+1) * 500 * time.Millisecond, true
	}

	return 0, false
}

func truncateTitle(title string) string {
	runes := []rune(title)
	if len(runes) <= 50 {
		return title
	}
	return string(runes[:50]) + "..."
}
