package repository

import "github.com/Keavors/MyFanBoard/internal/domain/entity"

// UserProfileRepository определяет методы для работы с профилями пользователей
type UserProfileRepository interface {
	Create(profile *entity.UserProfile) error
	GetByUserID(userID uint) (*entity.UserProfile, error)
	SetNewsletterSubscribed(userID uint, subscribed bool) error
}
