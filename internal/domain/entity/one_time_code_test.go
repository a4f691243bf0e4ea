package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOneTimeCode_IsValid_FreshCode(t *testing.T) {
	// Arrange
	now := time.Now()
	code, err := NewOneTimeCode(1, CodeKindRegistration, now)
	require.NoError(t, err)

	// Act & Assert
	assert.True(t, code.IsValid(now), "Свежий код должен быть действительным")
	assert.True(t, code.IsValid(now.Add(OneTimeCodeTTL-time.Second)),
		"Код должен быть действителен до истечения TTL")
}

func TestOneTimeCode_IsValid_Expired(t *testing.T) {
	// Arrange
	now := time.Now()
	code, err := NewOneTimeCode(1, CodeKindLogin, now)
	require.NoError(t, err)

	// Act & Assert: ровно на границе TTL код уже недействителен
	assert.False(t, code.IsValid(now.Add(OneTimeCodeTTL)),
		"Код не должен быть действителен в момент истечения TTL")
	assert.False(t, code.IsValid(now.Add(time.Hour)),
		"Просроченный код не должен быть действительным")
}

func TestOneTimeCode_IsValid_Used(t *testing.T) {
	// Arrange
	now := time.Now()
	code, err := NewOneTimeCode(1, CodeKindLogin, now)
	require.NoError(t, err)
	code.Used = true

	// Act & Assert
	assert.False(t, code.IsValid(now), "Использованный код не должен быть действительным")
}

func TestNewOneTimeCode_SetsTTL(t *testing.T) {
	// Arrange
	now := time.Now()

	// Act
	code, err := NewOneTimeCode(42, CodeKindRegistration, now)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, uint(42), code.UserID)
	assert.Equal(t, CodeKindRegistration, code.Kind)
	assert.False(t, code.Used)
	assert.Equal(t, now.Add(10*time.Minute), code.ExpiresAt, "TTL кода фиксирован — 10 минут")
}

func TestGenerateCode_Format(t *testing.T) {
	// Act & Assert: код всегда ровно 6 цифр, включая ведущие нули
	for i := 0; i < 100; i++ {
		code, err := GenerateCode()
		require.NoError(t, err)
		require.Len(t, code, 6, "Код должен состоять ровно из 6 символов")
		for _, r := range code {
			assert.True(t, r >= '0' && r <= '9', "Код должен содержать только цифры")
		}
	}
}
