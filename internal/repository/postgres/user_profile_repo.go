package postgres

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Keavors/MyFanBoard/internal/domain/entity"
	apperrors "github.com/Keavors/MyFanBoard/internal/pkg/errors"
)

// UserProfileRepo реализует repository.UserProfileRepository
type UserProfileRepo struct {
	db *gorm.DB
}

// NewUserProfileRepo создает новый репозиторий профилей
func NewUserProfileRepo(db *gorm.DB) *UserProfileRepo {
	return &UserProfileRepo{db: db}
}

// Create создает профиль пользователя
func (r *UserProfileRepo) Create(profile *entity.UserProfile) error {
	return r.db.Create(profile).Error
}

// GetByUserID возвращает профиль по ID пользователя
func (r *UserProfileRepo) GetByUserID(userID uint) (*entity.UserProfile, error) {
	var profile entity.UserProfile
	err := r.db.Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// SetNewsletterSubscribed обновляет подписку на рассылку
func (r *UserProfileRepo) SetNewsletterSubscribed(userID uint, subscribed bool) error {
	return r.db.Model(&entity.UserProfile{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"newsletter_subscribed": subscribed,
			"updated_at":            time.Now(),
		}).Error
}
