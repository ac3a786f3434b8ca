package inventory

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"assetdesk/internal/domain"
	"assetdesk/internal/pkg/imagekit"
	"assetdesk/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes wires routes available to any authenticated user.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/items", h.ListItems)
	rg.GET("/items/:id", h.GetItem)
}

// RegisterWriterRoutes wires the mutating routes; the caller guards the
// group with the writer-role middleware.
func (h *Handler) RegisterWriterRoutes(rg *gin.RouterGroup) {
	rg.POST("/items", h.CreateItem)
	rg.PUT("/items/:id", h.UpdateItem)
	rg.DELETE("/items/:id", h.DeleteItem)
	rg.POST("/items/:id/photo", h.UploadPhoto)
	rg.DELETE("/items/:id/photo", h.DeletePhoto)
}

func (h *Handler) CreateItem(c *gin.Context) {
	var req CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	it, err := h.service.Create(c.Request.Context(), actorFromContext(c), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"item": it})
}

func (h *Handler) ListItems(c *gin.Context) {
	items, err := h.service.List(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"items": items})
}

func (h *Handler) GetItem(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	it, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"item": it})
}

func (h *Handler) UpdateItem(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	it, err := h.service.Update(c.Request.Context(), actorFromContext(c), id, req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"item": it})
}

func (h *Handler) DeleteItem(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), actorFromContext(c), id); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

// UploadPhoto accepts a multipart form with a "photo" file field.
func (h *Handler) UploadPhoto(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	file, header, err := c.Request.FormFile("photo")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Missing photo file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, imagekit.MaxFileSize+1))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Unreadable photo file")
		return
	}

	it, err := h.service.AttachPhoto(c.Request.Context(), actorFromContext(c), id, data, header.Filename)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"item": it})
}

func (h *Handler) DeletePhoto(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	it, err := h.service.RemovePhoto(c.Request.Context(), actorFromContext(c), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"item": it})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Item not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Access denied")
	case errors.Is(err, ErrItemBorrowed):
		response.Error(c, http.StatusConflict, "STATE_ERROR", "Item has an active loan")
	case errors.Is(err, ErrNoPhoto):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Item has no photo")
	case errors.Is(err, imagekit.ErrFileTooLarge):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Photo exceeds the size limit")
	case errors.Is(err, imagekit.ErrNotConfigured):
		response.Error(c, http.StatusServiceUnavailable, "PHOTO_STORE_UNAVAILABLE", "Photo storage is not configured")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
	}
}

func actorFromContext(c *gin.Context) *domain.User {
	return &domain.User{
		ID:   c.GetInt64("user_id"),
		Role: domain.UserRole(c.GetString("role")),
	}
}

func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid id")
		return 0, false
	}
	return id, true
}
