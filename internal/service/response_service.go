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

// ResponseService предоставляет методы для работы с откликами.
// Email-уведомления отправляются после записи в БД и не влияют на результат
// операции: ошибка доставки логируется, состояние не откатывается.
type ResponseService struct {
	responseRepo repository.ResponseRepository
	postRepo     repository.PostRepository
	userRepo     repository.UserRepository
	emailSender  EmailSender
	siteURL      string
}

// NewResponseService создает новый сервис откликов
func NewResponseService(
	responseRepo repository.ResponseRepository,
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
	emailSender EmailSender,
	siteURL string,
) (*ResponseService, error) {
	if responseRepo == nil {
		return nil, fmt.Errorf("ResponseRepository is required for ResponseService")
	}
	if postRepo == nil {
		return nil, fmt.Errorf("PostRepository is required for ResponseService")
	}
	if userRepo == nil {
		return nil, fmt.Errorf("UserRepository is required for ResponseService")
	}
	if emailSender == nil {
		return nil, fmt.Errorf("EmailSender is required for ResponseService")
	}
	return &ResponseService{
		responseRepo: responseRepo,
		postRepo:     postRepo,
		userRepo:     userRepo,
		emailSender:  emailSender,
		siteURL:      strings.TrimRight(siteURL, "/"),
	}, nil
}

func (s *ResponseService) postURL(post *entity.Post) string {
	return fmt.Sprintf("%s/boards/%d/posts/%d", s.siteURL, post.BoardID, post.ID)
}

// AddResponse добавляет отклик к посту и уведомляет автора поста.
// Уведомление не отправляется, если автор отклика отвечает сам себе.
func (s *ResponseService) AddResponse(ctx context.Context, postID, authorID uint, content string) (*entity.Response, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: response content is required", apperrors.ErrValidation)
	}

	post, err := s.postRepo.GetByID(postID)
	if err != nil {
		return nil, err
	}

	response := &entity.Response{
		PostID:   postID,
		AuthorID: authorID,
		Content:  content,
	}
	if err := s.responseRepo.Create(response); err != nil {
		return nil, fmt.Errorf("failed to create response: %w", err)
	}

	if post.AuthorID != authorID {
		s.notifyPostAuthor(ctx, post, response)
	}

	return response, nil
}

func (s *ResponseService) notifyPostAuthor(ctx context.Context, post *entity.Post, response *entity.Response) {
	postAuthor, err := s.userRepo.GetByID(post.AuthorID)
	if err != nil {
		log.Printf("[ResponseService] failed to load post author for notification: %v", err)
		return
	}
	responseAuthor, err := s.userRepo.GetByID(response.AuthorID)
	if err != nil {
		log.Printf("[ResponseService] failed to load response author for notification: %v", err)
		return
	}

	err = s.emailSender.SendResponseNotification(
		ctx, postAuthor.Email, post.Title, responseAuthor.Username, response.Content, s.postURL(post),
	)
	if err != nil {
		log.Printf("[ResponseService] failed to send response notification to %s: %v", postAuthor.Email, err)
	}
}

// ListResponses возвращает отклики поста
func (s *ResponseService) ListResponses(postID uint) ([]entity.Response, error) {
	if _, err := s.postRepo.GetByID(postID); err != nil {
		return nil, err
	}
	return s.responseRepo.ListByPost(postID)
}

// AcceptResponse помечает отклик принятым. Разрешено только автору поста.
// Автор отклика получает уведомление.
func (s *ResponseService) AcceptResponse(ctx context.Context, responseID, userID uint) error {
	response, err := s.responseRepo.GetByID(responseID)
	if err != nil {
		return err
	}
	post, err := s.postRepo.GetByID(response.PostID)
	if err != nil {
		return err
	}
	if post.AuthorID != userID {
		return apperrors.ErrForbidden
	}
	if response.IsAccepted {
		return apperrors.ErrConflict
	}

	if err := s.responseRepo.MarkAccepted(responseID); err != nil {
		return fmt.Errorf("failed to accept response: %w", err)
	}

	responseAuthor, err := s.userRepo.GetByID(response.AuthorID)
	if err != nil {
		log.Printf("[ResponseService] failed to load response author for acceptance notification: %v", err)
		return nil
	}
	if err := s.emailSender.SendResponseAccepted(ctx, responseAuthor.Email, post.Title, s.postURL(post)); err != nil {
		log.Printf("[ResponseService] failed to send acceptance notification to %s: %v", responseAuthor.Email, err)
	}
	return nil
}

// DeleteResponse удаляет отклик. Разрешено автору отклика или администратору.
func (s *ResponseService) DeleteResponse(responseID, userID uint, isAdmin bool) error {
	response, err := s.responseRepo.GetByID(responseID)
	if err != nil {
		return err
	}
	if response.AuthorID != userID && !isAdmin {
		return apperrors.ErrForbidden
	}
	return s.responseRepo.Delete(responseID)
}
