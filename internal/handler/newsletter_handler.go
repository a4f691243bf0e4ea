package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Keavors/MyFanBoard/internal/service"
)

// NewsletterHandler обрабатывает административные запросы рассылок
type NewsletterHandler struct {
	newsletterService *service.NewsletterService
}

// NewNewsletterHandler создает новый обработчик рассылок
func NewNewsletterHandler(newsletterService *service.NewsletterService) *NewsletterHandler {
	return &NewsletterHandler{newsletterService: newsletterService}
}

// CreateNewsletterRequest представляет запрос на создание рассылки
type CreateNewsletterRequest struct {
	Subject string `json:"subject" binding:"required,max=255"`
	Content string `json:"content" binding:"required"`
}

// ListNewsletters возвращает рассылки с пагинацией
func (h *NewsletterHandler) ListNewsletters(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	newsletters, err := h.newsletterService.List(limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"newsletters": newsletters})
}

// CreateNewsletter создает новую рассылку
func (h *NewsletterHandler) CreateNewsletter(c *gin.Context) {
	var req CreateNewsletterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "error_type": "invalid_request", "details": err.Error()})
		return
	}

	newsletter, err := h.newsletterService.Create(req.Subject, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"newsletter": newsletter})
}

// SendNewsletter отправляет рассылку всем подписанным пользователям
func (h *NewsletterHandler) SendNewsletter(c *gin.Context) {
	newsletterID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	report, err := h.newsletterService.Send(c.Request.Context(), newsletterID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Рассылка отправлена", "report": report})
}
