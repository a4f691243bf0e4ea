package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Keavors/MyFanBoard/internal/service"
)

// Имена кук с ID pending-сессии. Две независимые куки: регистрация и вход
// могут идти параллельно, не мешая друг другу.
const (
	registrationSessionCookie = "registration_session"
	loginSessionCookie        = "login_session"
)

// AuthHandler обрабатывает запросы OTP-аутентификации
type AuthHandler struct {
	registrationService *service.RegistrationService
	loginService        *service.LoginService
	pendingTTLSeconds   int
	secureCookies       bool
}

// NewAuthHandler создает новый обработчик аутентификации
func NewAuthHandler(
	registrationService *service.RegistrationService,
	loginService *service.LoginService,
	pendingTTLSeconds int,
	secureCookies bool,
) *AuthHandler {
	return &AuthHandler{
		registrationService: registrationService,
		loginService:        loginService,
		pendingTTLSeconds:   pendingTTLSeconds,
		secureCookies:       secureCookies,
	}
}

// EmailRequest представляет запрос с одним полем email
type EmailRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// VerifyCodeRequest представляет запрос на проверку кода
type VerifyCodeRequest struct {
	Code string `json:"code" binding:"required,len=6,numeric"`
}

func (h *AuthHandler) setPendingCookie(c *gin.Context, name, sessionID string) {
	c.SetCookie(name, sessionID, h.pendingTTLSeconds, "/", "", h.secureCookies, true)
}

func (h *AuthHandler) clearPendingCookie(c *gin.Context, name string) {
	c.SetCookie(name, "", -1, "/", "", h.secureCookies, true)
}

// Register обрабатывает отправку email для регистрации
func (h *AuthHandler) Register(c *gin.Context) {
	var req EmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "error_type": "invalid_request", "details": err.Error()})
		return
	}

	sessionID, err := h.registrationService.SubmitEmail(c.Request.Context(), req.Email)

	// Ошибка доставки письма не отменяет созданный аккаунт и код:
	// сообщаем о ней отдельно, cookie все равно устанавливаем.
	var deliveryErr *service.DeliveryError
	if err != nil && !errors.As(err, &deliveryErr) {
		respondError(c, err)
		return
	}

	h.setPendingCookie(c, registrationSessionCookie, sessionID)

	resp := gin.H{"message": "Регистрация почти завершена! На ваш Email отправлен код подтверждения."}
	if deliveryErr != nil {
		resp["warning"] = "Не удалось отправить письмо с кодом. Попробуйте запросить код позже."
		resp["warning_type"] = "email_delivery_failed"
	}
	c.JSON(http.StatusCreated, resp)
}

// VerifyRegistration обрабатывает подтверждение регистрации кодом
func (h *AuthHandler) VerifyRegistration(c *gin.Context) {
	var req VerifyCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "error_type": "invalid_request", "details": err.Error()})
		return
	}

	sessionID, _ := c.Cookie(registrationSessionCookie)

	if err := h.registrationService.VerifyCode(c.Request.Context(), sessionID, req.Code); err != nil {
		respondError(c, err)
		return
	}

	h.clearPendingCookie(c, registrationSessionCookie)
	c.JSON(http.StatusOK, gin.H{"message": "Ваш аккаунт успешно подтвержден! Теперь вы можете войти."})
}

// RequestLoginCode обрабатывает запрос кода для входа
func (h *AuthHandler) RequestLoginCode(c *gin.Context) {
	var req EmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "error_type": "invalid_request", "details": err.Error()})
		return
	}

	sessionID, err := h.loginService.RequestCode(c.Request.Context(), req.Email)

	var deliveryErr *service.DeliveryError
	if err != nil && !errors.As(err, &deliveryErr) {
		respondError(c, err)
		return
	}

	h.setPendingCookie(c, loginSessionCookie, sessionID)

	resp := gin.H{"message": "Код для входа отправлен на ваш Email."}
	if deliveryErr != nil {
		resp["warning"] = "Не удалось отправить письмо с кодом. Попробуйте запросить код позже."
		resp["warning_type"] = "email_delivery_failed"
	}
	c.JSON(http.StatusOK, resp)
}

// VerifyLogin обрабатывает подтверждение входа кодом
func (h *AuthHandler) VerifyLogin(c *gin.Context) {
	var req VerifyCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "error_type": "invalid_request", "details": err.Error()})
		return
	}

	sessionID, _ := c.Cookie(loginSessionCookie)

	user, token, err := h.loginService.VerifyCode(c.Request.Context(), sessionID, req.Code)
	if err != nil {
		respondError(c, err)
		return
	}

	h.clearPendingCookie(c, loginSessionCookie)
	c.JSON(http.StatusOK, gin.H{
		"user":        user,
		"accessToken": token,
		"tokenType":   "Bearer",
	})
}
