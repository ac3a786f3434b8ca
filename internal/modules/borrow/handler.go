package borrow

import (
	"errors"
	"net/http"
	"strconv"

	"assetdesk/internal/domain"
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
	rg.GET("/requests", h.ListRequests)
	rg.GET("/requests/:id", h.GetRequest)
	rg.POST("/requests", h.SubmitRequest)
}

// RegisterAdminRoutes wires the lifecycle transitions; the caller guards the
// group with the admin middleware.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.POST("/requests/:id/approve", h.ApproveRequest)
	rg.POST("/requests/:id/reject", h.RejectRequest)
	rg.POST("/requests/:id/return", h.ReturnRequest)
}

func (h *Handler) SubmitRequest(c *gin.Context) {
	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	r, err := h.service.Submit(c.Request.Context(), actorFromContext(c), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"request": r})
}

func (h *Handler) ListRequests(c *gin.Context) {
	views, err := h.service.List(c.Request.Context(), actorFromContext(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"requests": views})
}

func (h *Handler) GetRequest(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	view, err := h.service.Get(c.Request.Context(), actorFromContext(c), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"request": view})
}

func (h *Handler) ApproveRequest(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	r, err := h.service.Approve(c.Request.Context(), actorFromContext(c), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"request": r})
}

func (h *Handler) RejectRequest(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	r, err := h.service.Reject(c.Request.Context(), actorFromContext(c), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"request": r})
}

func (h *Handler) ReturnRequest(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req ReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	r, err := h.service.Return(c.Request.Context(), actorFromContext(c), id, domain.ItemCondition(req.Condition))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"request": r})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Request or referenced entity not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Access denied")
	case errors.Is(err, ErrItemNotAvailable):
		response.Error(c, http.StatusConflict, "STATE_ERROR", "Item is not in the required status")
	case errors.Is(err, ErrRequestNotPending), errors.Is(err, ErrRequestNotActive):
		response.Error(c, http.StatusConflict, "STATE_ERROR", "Request is not in the required status")
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
