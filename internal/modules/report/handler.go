package report

import (
	"errors"
	"net/http"

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
	rg.GET("/dashboard", h.Dashboard)
	rg.GET("/reports", h.Report)
}

func (h *Handler) Dashboard(c *gin.Context) {
	d, err := h.service.Dashboard(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}
	response.Success(c, http.StatusOK, d)
}

func (h *Handler) Report(c *gin.Context) {
	period := Period(c.DefaultQuery("period", string(PeriodMonth)))

	r, err := h.service.Report(c.Request.Context(), period)
	if err != nil {
		if errors.Is(err, ErrInvalidPeriod) {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Unknown report period")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}
	response.Success(c, http.StatusOK, r)
}
