package entity

import "time"

// Newsletter представляет новостную рассылку, которую администратор
// отправляет всем подписанным пользователям.
type Newsletter struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Subject string `gorm:"size:255;not null" json:"subject"`
	Content string `gorm:"type:text;not null" json:"content"`

	IsSent bool       `gorm:"not null;default:false" json:"is_sent"`
	SentAt *time.Time `json:"sent_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Newsletter) TableName() string {
	return "newsletters"
}
