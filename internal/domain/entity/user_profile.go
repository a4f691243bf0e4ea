package entity

import "time"

// UserProfile хранит дополнительные настройки пользователя.
// Создаётся в той же транзакции, что и сам пользователь, — ровно одна запись на аккаунт.
type UserProfile struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"not null;uniqueIndex" json:"user_id"`

	// NewsletterSubscribed определяет, получает ли пользователь новостные рассылки.
	NewsletterSubscribed bool `gorm:"not null;default:true" json:"newsletter_subscribed"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (UserProfile) TableName() string {
	return "user_profiles"
}
