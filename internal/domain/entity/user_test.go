package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUsernameFromEmail(t *testing.T) {
	assert.Equal(t, "ivan", UsernameFromEmail("ivan@example.com"))
	assert.Equal(t, "a.b+c", UsernameFromEmail("a.b+c@mail.ru"))
	// Некорректный email без '@' возвращается как есть
	assert.Equal(t, "noatsign", UsernameFromEmail("noatsign"))
}

func TestUser_IsAdmin(t *testing.T) {
	admin := &User{Role: "admin"}
	user := &User{Role: "user"}

	assert.True(t, admin.IsAdmin())
	assert.False(t, user.IsAdmin())
	assert.False(t, (&User{}).IsAdmin(), "Пустая роль не дает прав администратора")
}
