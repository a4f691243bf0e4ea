package service

import (
	"fmt"

	"github.com/Keavors/MyFanBoard/internal/domain/entity"
	"github.com/Keavors/MyFanBoard/internal/domain/repository"
)

// UserService предоставляет методы для работы с пользователями и их профилями
type UserService struct {
	userRepo    repository.UserRepository
	profileRepo repository.UserProfileRepository
}

// NewUserService создает новый сервис пользователей
func NewUserService(userRepo repository.UserRepository, profileRepo repository.UserProfileRepository) (*UserService, error) {
	if userRepo == nil {
		return nil, fmt.Errorf("UserRepository is required for UserService")
	}
	if profileRepo == nil {
		return nil, fmt.Errorf("UserProfileRepository is required for UserService")
	}
	return &UserService{userRepo: userRepo, profileRepo: profileRepo}, nil
}

// GetUser возвращает пользователя по ID
func (s *UserService) GetUser(userID uint) (*entity.User, error) {
	return s.userRepo.GetByID(userID)
}

// GetProfile возвращает профиль пользователя
func (s *UserService) GetProfile(userID uint) (*entity.UserProfile, error) {
	return s.profileRepo.GetByUserID(userID)
}

// SetNewsletterSubscription включает или отключает подписку на рассылку
func (s *UserService) SetNewsletterSubscription(userID uint, subscribed bool) error {
	if _, err := s.profileRepo.GetByUserID(userID); err != nil {
		return err
	}
	return s.profileRepo.SetNewsletterSubscribed(userID, subscribed)
}
