package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/Keavors/MyFanBoard/internal/domain/entity"
	apperrors "github.com/Keavors/MyFanBoard/internal/pkg/errors"
)

// BoardRepo реализует repository.BoardRepository
type BoardRepo struct {
	db *gorm.DB
}

// NewBoardRepo создает новый репозиторий досок
func NewBoardRepo(db *gorm.DB) *BoardRepo {
	return &BoardRepo{db: db}
}

// Create создает новую доску
func (r *BoardRepo) Create(board *entity.Board) error {
	return r.db.Create(board).Error
}

// GetByID возвращает доску по ID
func (r *BoardRepo) GetByID(id uint) (*entity.Board, error) {
	var board entity.Board
	err := r.db.First(&board, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &board, nil
}

// List возвращает все доски, отсортированные по названию
func (r *BoardRepo) List() ([]entity.Board, error) {
	var boards []entity.Board
	err := r.db.Order("name").Find(&boards).Error
	return boards, err
}
