package postgres

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Keavors/MyFanBoard/internal/domain/entity"
	apperrors "github.com/Keavors/MyFanBoard/internal/pkg/errors"
)

// NewsletterRepo реализует repository.NewsletterRepository
type NewsletterRepo struct {
	db *gorm.DB
}

// NewNewsletterRepo создает новый репозиторий рассылок
func NewNewsletterRepo(db *gorm.DB) *NewsletterRepo {
	return &NewsletterRepo{db: db}
}

// Create создает новую рассылку
func (r *NewsletterRepo) Create(newsletter *entity.Newsletter) error {
	return r.db.Create(newsletter).Error
}

// GetByID возвращает рассылку по ID
func (r *NewsletterRepo) GetByID(id uint) (*entity.Newsletter, error) {
	var newsletter entity.Newsletter
	err := r.db.First(&newsletter, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &newsletter, nil
}

// List возвращает рассылки с пагинацией (новые сверху)
func (r *NewsletterRepo) List(limit, offset int) ([]entity.Newsletter, error) {
	var newsletters []entity.Newsletter
	err := r.db.Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&newsletters).Error
	return newsletters, err
}

// MarkSent помечает рассылку отправленной
func (r *NewsletterRepo) MarkSent(id uint) error {
	now := time.Now()
	return r.db.Model(&entity.Newsletter{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_sent":    true,
			"sent_at":    &now,
			"updated_at": now,
		}).Error
}
