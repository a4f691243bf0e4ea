package postgres

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Keavors/MyFanBoard/internal/domain/entity"
	apperrors "github.com/Keavors/MyFanBoard/internal/pkg/errors"
)

// UserRepo реализует repository.UserRepository
type UserRepo struct {
	db *gorm.DB
}

// NewUserRepo создает новый репозиторий пользователей
func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db: db}
}

// Create создает нового пользователя
func (r *UserRepo) Create(user *entity.User) error {
	return r.db.Create(user).Error
}

// GetByID возвращает пользователя по ID
func (r *UserRepo) GetByID(id uint) (*entity.User, error) {
	var user entity.User
	err := r.db.First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetByEmail возвращает пользователя по email
func (r *UserRepo) GetByEmail(email string) (*entity.User, error) {
	var user entity.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetByEmailForUpdate возвращает пользователя по email с блокировкой строки.
// Имеет смысл только внутри транзакции: блокировка удерживается до commit/rollback.
func (r *UserRepo) GetByEmailForUpdate(email string) (*entity.User, error) {
	var user entity.User
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("email = ?", email).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// Activate помечает пользователя активным
func (r *UserRepo) Activate(userID uint) error {
	return r.db.Model(&entity.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"is_active":  true,
			"updated_at": time.Now(),
		}).Error
}

// List возвращает список пользователей с пагинацией
func (r *UserRepo) List(limit, offset int) ([]entity.User, error) {
	var users []entity.User
	err := r.db.Limit(limit).Offset(offset).Order("id").Find(&users).Error
	return users, err
}

// ListNewsletterRecipients возвращает активных пользователей, подписанных на рассылку
func (r *UserRepo) ListNewsletterRecipients() ([]entity.User, error) {
	var users []entity.User
	err := r.db.
		Joins("JOIN user_profiles ON user_profiles.user_id = users.id").
		Where("users.is_active = ? AND user_profiles.newsletter_subscribed = ?", true, true).
		Order("users.id").
		Find(&users).Error
	return users, err
}
