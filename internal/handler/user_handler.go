package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Keavors/MyFanBoard/internal/middleware"
	"github.com/Keavors/MyFanBoard/internal/service"
)

// UserHandler обрабатывает запросы текущего пользователя
type UserHandler struct {
	userService *service.UserService
}

// NewUserHandler создает новый обработчик пользователей
func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// NewsletterSubscriptionRequest представляет запрос на изменение подписки
type NewsletterSubscriptionRequest struct {
	Subscribed *bool `json:"subscribed" binding:"required"`
}

// Me возвращает текущего пользователя и его профиль
func (h *UserHandler) Me(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	user, err := h.userService.GetUser(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	profile, err := h.userService.GetProfile(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user, "profile": profile})
}

// SetNewsletterSubscription изменяет подписку на рассылку
func (h *UserHandler) SetNewsletterSubscription(c *gin.Context) {
	var req NewsletterSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "error_type": "invalid_request", "details": err.Error()})
		return
	}

	if err := h.userService.SetNewsletterSubscription(middleware.CurrentUserID(c), *req.Subscribed); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Настройки подписки обновлены"})
}
