package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/Keavors/MyFanBoard/internal/domain/entity"
	"github.com/Keavors/MyFanBoard/internal/domain/repository"
	apperrors "github.com/Keavors/MyFanBoard/internal/pkg/errors"
)

// NewsletterSendReport содержит итог отправки рассылки
type NewsletterSendReport struct {
	Recipients int `json:"recipients"`
	Sent       int `json:"sent"`
	Failed     int `json:"failed"`
}

// NewsletterService предоставляет методы для работы с рассылками.
// Получатели — активные пользователи с включенной подпиской в профиле.
type NewsletterService struct {
	newsletterRepo repository.NewsletterRepository
	userRepo       repository.UserRepository
	emailSender    EmailSender
}

// NewNewsletterService создает новый сервис рассылок
func NewNewsletterService(
	newsletterRepo repository.NewsletterRepository,
	userRepo repository.UserRepository,
	emailSender EmailSender,
) (*NewsletterService, error) {
	if newsletterRepo == nil {
		return nil, fmt.Errorf("NewsletterRepository is required for NewsletterService")
	}
	if userRepo == nil {
		return nil, fmt.Errorf("UserRepository is required for NewsletterService")
	}
	if emailSender == nil {
		return nil, fmt.Errorf("EmailSender is required for NewsletterService")
	}
	return &NewsletterService{
		newsletterRepo: newsletterRepo,
		userRepo:       userRepo,
		emailSender:    emailSender,
	}, nil
}

// Create создает новую рассылку (без отправки)
func (s *NewsletterService) Create(subject, content string) (*entity.Newsletter, error) {
	subject = strings.TrimSpace(subject)
	if subject == "" || strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: subject and content are required", apperrors.ErrValidation)
	}
	newsletter := &entity.Newsletter{Subject: subject, Content: content}
	if err := s.newsletterRepo.Create(newsletter); err != nil {
		return nil, fmt.Errorf("failed to create newsletter: %w", err)
	}
	return newsletter, nil
}

// List возвращает рассылки с пагинацией
func (s *NewsletterService) List(limit, offset int) ([]entity.Newsletter, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.newsletterRepo.List(limit, offset)
}

// Send отправляет рассылку всем подписанным активным пользователям.
// Ошибки доставки отдельным получателям логируются и считаются,
// но не прерывают отправку остальным.
func (s *NewsletterService) Send(ctx context.Context, newsletterID uint) (*NewsletterSendReport, error) {
	newsletter, err := s.newsletterRepo.GetByID(newsletterID)
	if err != nil {
		return nil, err
	}
	if newsletter.IsSent {
		return nil, fmt.Errorf("%w: newsletter already sent", apperrors.ErrConflict)
	}

	recipients, err := s.userRepo.ListNewsletterRecipients()
	if err != nil {
		return nil, fmt.Errorf("failed to list newsletter recipients: %w", err)
	}

	report := &NewsletterSendReport{Recipients: len(recipients)}
	for _, user := range recipients {
		if err := s.emailSender.SendNewsletter(ctx, user.Email, newsletter.Subject, newsletter.Content); err != nil {
			log.Printf("[NewsletterService] failed to send newsletter ID=%d to %s: %v", newsletterID, user.Email, err)
			report.Failed++
			continue
		}
		report.Sent++
	}

	if err := s.newsletterRepo.MarkSent(newsletterID); err != nil {
		return report, fmt.Errorf("failed to mark newsletter sent: %w", err)
	}

	log.Printf("[NewsletterService] newsletter ID=%d sent: %d ok, %d failed of %d recipients",
		newsletterID, report.Sent, report.Failed, report.Recipients)
	return report, nil
}
