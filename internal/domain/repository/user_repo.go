package repository

import (
	"github.com/Keavors/MyFanBoard/internal/domain/entity"
)

// UserRepository определяет методы для работы с пользователями
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id uint) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	// GetByEmailForUpdate блокирует строку пользователя (SELECT ... FOR UPDATE)
	// до конца текущей транзакции. Используется для сериализации выдачи кодов.
	GetByEmailForUpdate(email string) (*entity.User, error)
	// Activate помечает пользователя активным. Выполняется ровно один раз
	// при подтверждении регистрации.
	Activate(userID uint) error
	List(limit, offset int) ([]entity.User, error)
	// ListNewsletterRecipients возвращает активных пользователей,
	// подписанных на рассылку (join с user_profiles).
	ListNewsletterRecipients() ([]entity.User, error)
}
