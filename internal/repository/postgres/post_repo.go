package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/Keavors/MyFanBoard/internal/domain/entity"
	apperrors "github.com/Keavors/MyFanBoard/internal/pkg/errors"
)

// PostRepo реализует repository.PostRepository
type PostRepo struct {
	db *gorm.DB
}

// NewPostRepo создает новый репозиторий постов
func NewPostRepo(db *gorm.DB) *PostRepo {
	return &PostRepo{db: db}
}

// Create создает новый пост
func (r *PostRepo) Create(post *entity.Post) error {
	return r.db.Create(post).Error
}

// GetByID возвращает пост по ID
func (r *PostRepo) GetByID(id uint) (*entity.Post, error) {
	var post entity.Post
	err := r.db.First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &post, nil
}

// ListByBoard возвращает посты доски с пагинацией (новые сверху)
func (r *PostRepo) ListByBoard(boardID uint, limit, offset int) ([]entity.Post, error) {
	var posts []entity.Post
	err := r.db.Where("board_id = ?", boardID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&posts).Error
	return posts, err
}

// Update обновляет пост
func (r *PostRepo) Update(post *entity.Post) error {
	return r.db.Save(post).Error
}

// Delete удаляет пост
func (r *PostRepo) Delete(id uint) error {
	return r.db.Delete(&entity.Post{}, id).Error
}

// IncrementViews атомарно увеличивает счетчик просмотров
func (r *PostRepo) IncrementViews(id uint) error {
	return r.db.Model(&entity.Post{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + ?", 1)).
		Error
}
