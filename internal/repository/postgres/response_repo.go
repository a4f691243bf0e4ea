package postgres

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Keavors/MyFanBoard/internal/domain/entity"
	apperrors "github.com/Keavors/MyFanBoard/internal/pkg/errors"
)

// ResponseRepo реализует repository.ResponseRepository
type ResponseRepo struct {
	db *gorm.DB
}

// NewResponseRepo создает новый репозиторий откликов
func NewResponseRepo(db *gorm.DB) *ResponseRepo {
	return &ResponseRepo{db: db}
}

// Create создает новый отклик
func (r *ResponseRepo) Create(response *entity.Response) error {
	return r.db.Create(response).Error
}

// GetByID возвращает отклик по ID
func (r *ResponseRepo) GetByID(id uint) (*entity.Response, error) {
	var response entity.Response
	err := r.db.First(&response, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &response, nil
}

// ListByPost возвращает отклики поста (старые сверху)
func (r *ResponseRepo) ListByPost(postID uint) ([]entity.Response, error) {
	var responses []entity.Response
	err := r.db.Where("post_id = ?", postID).
		Order("created_at ASC").
		Find(&responses).Error
	return responses, err
}

// MarkAccepted помечает отклик принятым
func (r *ResponseRepo) MarkAccepted(id uint) error {
	return r.db.Model(&entity.Response{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_accepted": true,
			"updated_at":  time.Now(),
		}).Error
}

// Delete удаляет отклик
func (r *ResponseRepo) Delete(id uint) error {
	return r.db.Delete(&entity.Response{}, id).Error
}
