package entity

import "time"

// Response представляет отклик на пост.
type Response struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	PostID   uint   `gorm:"not null;index" json:"post_id"`
	AuthorID uint   `gorm:"not null;index" json:"author_id"`
	Content  string `gorm:"type:text;not null" json:"content"`

	// IsAccepted выставляет автор поста; отправляет автору отклика уведомление.
	IsAccepted bool `gorm:"not null;default:false" json:"is_accepted"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Response) TableName() string {
	return "responses"
}
