package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/Keavors/MyFanBoard/internal/pkg/errors"
	"github.com/Keavors/MyFanBoard/internal/service"
)

// respondError преобразует ошибку сервиса в HTTP-ответ со стабильным error_type
func respondError(c *gin.Context, err error) {
	log.Printf("[Handler] %s %s: %v", c.Request.Method, c.FullPath(), err)

	switch {
	case errors.Is(err, service.ErrDuplicateEmail):
		c.JSON(http.StatusConflict, gin.H{"error": "Пользователь с таким Email уже зарегистрирован", "error_type": "duplicate_email"})
	case errors.Is(err, service.ErrAccountNotFoundOrInactive):
		c.JSON(http.StatusNotFound, gin.H{"error": "Пользователь с таким Email не найден или не активен", "error_type": "account_not_found_or_inactive"})
	case errors.Is(err, service.ErrMissingSession):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Отсутствует сессия верификации. Начните заново.", "error_type": "missing_session"})
	case errors.Is(err, service.ErrInvalidOrExpiredCode):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Неверный или просроченный код. Попробуйте снова или запросите новый.", "error_type": "invalid_or_expired_code"})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Ошибка валидации данных", "error_type": "validation_error", "details": err.Error()})
	case errors.Is(err, apperrors.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Требуется аутентификация", "error_type": "unauthorized"})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Доступ запрещен", "error_type": "forbidden"})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Запрашиваемый ресурс не найден", "error_type": "not_found"})
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "Конфликт данных", "error_type": "conflict"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Внутренняя ошибка сервера", "error_type": "internal_server_error"})
	}
}
