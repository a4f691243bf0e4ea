package repository

import "github.com/Keavors/MyFanBoard/internal/domain/entity"

// BoardRepository определяет методы для работы с досками
type BoardRepository interface {
	Create(board *entity.Board) error
	GetByID(id uint) (*entity.Board, error)
	List() ([]entity.Board, error)
}

// PostRepository определяет методы для работы с постами
type PostRepository interface {
	Create(post *entity.Post) error
	GetByID(id uint) (*entity.Post, error)
	ListByBoard(boardID uint, limit, offset int) ([]entity.Post, error)
	Update(post *entity.Post) error
	Delete(id uint) error
	// IncrementViews атомарно увеличивает счетчик просмотров.
	IncrementViews(id uint) error
}

// ResponseRepository определяет методы для работы с откликами
type ResponseRepository interface {
	Create(response *entity.Response) error
	GetByID(id uint) (*entity.Response, error)
	ListByPost(postID uint) ([]entity.Response, error)
	MarkAccepted(id uint) error
	Delete(id uint) error
}

// NewsletterRepository определяет методы для работы с рассылками
type NewsletterRepository interface {
	Create(newsletter *entity.Newsletter) error
	GetByID(id uint) (*entity.Newsletter, error)
	List(limit, offset int) ([]entity.Newsletter, error)
	MarkSent(id uint) error
}
