package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Keavors/MyFanBoard/internal/middleware"
	"github.com/Keavors/MyFanBoard/internal/service"
)

// ResponseHandler обрабатывает запросы откликов
type ResponseHandler struct {
	responseService *service.ResponseService
}

// NewResponseHandler создает новый обработчик откликов
func NewResponseHandler(responseService *service.ResponseService) *ResponseHandler {
	return &ResponseHandler{responseService: responseService}
}

// AddResponseRequest представляет запрос на добавление отклика
type AddResponseRequest struct {
	Content string `json:"content" binding:"required"`
}

// ListResponses возвращает отклики поста
func (h *ResponseHandler) ListResponses(c *gin.Context) {
	postID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	responses, err := h.responseService.ListResponses(postID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"responses": responses})
}

// AddResponse добавляет отклик к посту
func (h *ResponseHandler) AddResponse(c *gin.Context) {
	postID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req AddResponseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "error_type": "invalid_request", "details": err.Error()})
		return
	}

	response, err := h.responseService.AddResponse(c.Request.Context(), postID, middleware.CurrentUserID(c), req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"response": response})
}

// AcceptResponse помечает отклик принятым
func (h *ResponseHandler) AcceptResponse(c *gin.Context) {
	responseID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.responseService.AcceptResponse(c.Request.Context(), responseID, middleware.CurrentUserID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Отклик принят"})
}

// DeleteResponse удаляет отклик
func (h *ResponseHandler) DeleteResponse(c *gin.Context) {
	responseID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.responseService.DeleteResponse(responseID, middleware.CurrentUserID(c), middleware.IsAdmin(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Отклик удален"})
}
