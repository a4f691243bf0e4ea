package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Keavors/MyFanBoard/internal/middleware"
	"github.com/Keavors/MyFanBoard/internal/service"
)

// BoardHandler обрабатывает запросы досок и постов
type BoardHandler struct {
	boardService *service.BoardService
}

// NewBoardHandler создает новый обработчик досок
func NewBoardHandler(boardService *service.BoardService) *BoardHandler {
	return &BoardHandler{boardService: boardService}
}

// CreateBoardRequest представляет запрос на создание доски
type CreateBoardRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description" binding:"omitempty"`
}

// PostRequest представляет запрос на создание или обновление поста
type PostRequest struct {
	Title   string `json:"title" binding:"required,max=200"`
	Content string `json:"content" binding:"required"`
}

// parseIDParam извлекает числовой параметр пути
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID parameter", "error_type": "invalid_request"})
		return 0, false
	}
	return uint(id), true
}

// ListBoards возвращает список всех досок
func (h *BoardHandler) ListBoards(c *gin.Context) {
	boards, err := h.boardService.ListBoards()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"boards": boards})
}

// CreateBoard создает новую доску (admin only)
func (h *BoardHandler) CreateBoard(c *gin.Context) {
	var req CreateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "error_type": "invalid_request", "details": err.Error()})
		return
	}

	board, err := h.boardService.CreateBoard(req.Name, req.Description)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"board": board})
}

// ListPosts возвращает посты доски
func (h *BoardHandler) ListPosts(c *gin.Context) {
	boardID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	posts, err := h.boardService.ListPosts(boardID, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": posts})
}

// CreatePost создает пост на доске
func (h *BoardHandler) CreatePost(c *gin.Context) {
	boardID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "error_type": "invalid_request", "details": err.Error()})
		return
	}

	post, err := h.boardService.CreatePost(boardID, middleware.CurrentUserID(c), req.Title, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"post": post})
}

// GetPost возвращает пост (с инкрементом просмотров)
func (h *BoardHandler) GetPost(c *gin.Context) {
	postID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	post, err := h.boardService.GetPost(postID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"post": post})
}

// UpdatePost обновляет пост
func (h *BoardHandler) UpdatePost(c *gin.Context) {
	postID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "error_type": "invalid_request", "details": err.Error()})
		return
	}

	post, err := h.boardService.UpdatePost(postID, middleware.CurrentUserID(c), req.Title, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"post": post})
}

// DeletePost удаляет пост
func (h *BoardHandler) DeletePost(c *gin.Context) {
	postID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.boardService.DeletePost(postID, middleware.CurrentUserID(c), middleware.IsAdmin(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Пост удален"})
}
