package entity

import (
	"strings"
	"time"
)

// User представляет пользователя в системе.
// Пароля нет: вход выполняется только по одноразовому коду на email.
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Username string `gorm:"size:150;not null" json:"username"`
	Email    string `gorm:"size:254;not null;uniqueIndex" json:"email"`

	// IsActive устанавливается в true ровно один раз — после подтверждения email.
	IsActive bool   `gorm:"not null;default:false" json:"is_active"`
	Role     string `gorm:"size:20;not null;default:'user'" json:"-"` // "user" или "admin"

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (User) TableName() string {
	return "users"
}

// IsAdmin возвращает true, если пользователь имеет роль администратора
func (u *User) IsAdmin() bool {
	return u.Role == "admin"
}

// UsernameFromEmail выводит имя пользователя из локальной части email.
// Так же поступал исходный проект: username = email до символа '@'.
func UsernameFromEmail(email string) string {
	if i := strings.IndexByte(email, '@'); i > 0 {
		return email[:i]
	}
	return email
}
