package entity

import "time"

// Post представляет пост (тему) на доске.
type Post struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Title    string `gorm:"size:200;not null" json:"title"`
	Content  string `gorm:"type:text;not null" json:"content"`
	AuthorID uint   `gorm:"not null;index" json:"author_id"`
	BoardID  uint   `gorm:"not null;index" json:"board_id"`

	// Views — счетчик просмотров, увеличивается при каждом открытии поста.
	Views uint `gorm:"not null;default:0" json:"views"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Post) TableName() string {
	return "posts"
}
