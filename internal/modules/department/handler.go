package department

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

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/departments", h.ListDepartments)
	rg.GET("/departments/:id", h.GetDepartment)
}

// RegisterAdminRoutes wires the mutating routes; the caller guards the group
// with the admin middleware.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.POST("/departments", h.CreateDepartment)
	rg.PUT("/departments/:id", h.UpdateDepartment)
	rg.DELETE("/departments/:id", h.DeleteDepartment)
	rg.POST("/sub-departments", h.CreateSubDepartment)
	rg.PUT("/sub-departments/:id", h.UpdateSubDepartment)
	rg.DELETE("/sub-departments/:id", h.DeleteSubDepartment)
}

func (h *Handler) CreateDepartment(c *gin.Context) {
	var req CreateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	d, err := h.service.Create(c.Request.Context(), actorFromContext(c), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"department": d})
}

func (h *Handler) ListDepartments(c *gin.Context) {
	views, err := h.service.List(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"departments": views})
}

func (h *Handler) GetDepartment(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	view, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"department": view})
}

func (h *Handler) UpdateDepartment(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req UpdateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	d, err := h.service.Update(c.Request.Context(), actorFromContext(c), id, req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"department": d})
}

func (h *Handler) DeleteDepartment(c *gin.Context) {
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

func (h *Handler) CreateSubDepartment(c *gin.Context) {
	var req CreateSubDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	sd, err := h.service.CreateSub(c.Request.Context(), actorFromContext(c), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"sub_department": sd})
}

func (h *Handler) UpdateSubDepartment(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req UpdateSubDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	sd, err := h.service.UpdateSub(c.Request.Context(), actorFromContext(c), id, req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"sub_department": sd})
}

func (h *Handler) DeleteSubDepartment(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.service.DeleteSub(c.Request.Context(), actorFromContext(c), id); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Department not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Access denied")
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
