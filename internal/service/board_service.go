package service

import (
	"fmt"
	"strings"

	"github.com/Keavors/MyFanBoard/internal/domain/entity"
	"github.com/Keavors/MyFanBoard/internal/domain/repository"
	apperrors "github.com/Keavors/MyFanBoard/internal/pkg/errors"
)

// BoardService предоставляет методы для работы с досками и постами
type BoardService struct {
	boardRepo repository.BoardRepository
	postRepo  repository.PostRepository
}

// NewBoardService создает новый сервис досок
func NewBoardService(boardRepo repository.BoardRepository, postRepo repository.PostRepository) (*BoardService, error) {
	if boardRepo == nil {
		return nil, fmt.Errorf("BoardRepository is required for BoardService")
	}
	if postRepo == nil {
		return nil, fmt.Errorf("PostRepository is required for BoardService")
	}
	return &BoardService{boardRepo: boardRepo, postRepo: postRepo}, nil
}

// ListBoards возвращает все доски
func (s *BoardService) ListBoards() ([]entity.Board, error) {
	return s.boardRepo.List()
}

// CreateBoard создает новую доску (только администратор, проверяется в handler)
func (s *BoardService) CreateBoard(name, description string) (*entity.Board, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: board name is required", apperrors.ErrValidation)
	}
	board := &entity.Board{Name: name, Description: strings.TrimSpace(description)}
	if err := s.boardRepo.Create(board); err != nil {
		return nil, fmt.Errorf("failed to create board: %w", err)
	}
	return board, nil
}

// ListPosts возвращает посты доски с пагинацией
func (s *BoardService) ListPosts(boardID uint, limit, offset int) ([]entity.Post, error) {
	if _, err := s.boardRepo.GetByID(boardID); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.postRepo.ListByBoard(boardID, limit, offset)
}

// CreatePost создает новый пост на доске
func (s *BoardService) CreatePost(boardID, authorID uint, title, content string) (*entity.Post, error) {
	title = strings.TrimSpace(title)
	if title == "" || strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: title and content are required", apperrors.ErrValidation)
	}
	if _, err := s.boardRepo.GetByID(boardID); err != nil {
		return nil, err
	}
	post := &entity.Post{
		Title:    title,
		Content:  content,
		AuthorID: authorID,
		BoardID:  boardID,
	}
	if err := s.postRepo.Create(post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	return post, nil
}

// GetPost возвращает пост и увеличивает счетчик просмотров
func (s *BoardService) GetPost(postID uint) (*entity.Post, error) {
	post, err := s.postRepo.GetByID(postID)
	if err != nil {
		return nil, err
	}
	// Счетчик инкрементируется атомарно в БД; значение в ответе
	// отражает текущий просмотр.
	if err := s.postRepo.IncrementViews(postID); err != nil {
		return nil, fmt.Errorf("failed to increment views: %w", err)
	}
	post.Views++
	return post, nil
}

// UpdatePost обновляет пост. Разрешено только автору.
func (s *BoardService) UpdatePost(postID, userID uint, title, content string) (*entity.Post, error) {
	post, err := s.postRepo.GetByID(postID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != userID {
		return nil, apperrors.ErrForbidden
	}
	title = strings.TrimSpace(title)
	if title == "" || strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: title and content are required", apperrors.ErrValidation)
	}
	post.Title = title
	post.Content = content
	if err := s.postRepo.Update(post); err != nil {
		return nil, fmt.Errorf("failed to update post: %w", err)
	}
	return post, nil
}

// DeletePost удаляет пост. Разрешено автору или администратору.
func (s *BoardService) DeletePost(postID, userID uint, isAdmin bool) error {
	post, err := s.postRepo.GetByID(postID)
	if err != nil {
		return err
	}
	if post.AuthorID != userID && !isAdmin {
		return apperrors.ErrForbidden
	}
	return s.postRepo.Delete(postID)
}
