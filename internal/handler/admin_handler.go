package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/portal-api/internal/models"
	"github.com/noah-isme/portal-api/pkg/response"
)

type adminService interface {
	Stats(ctx context.Context) (*models.AdminStats, error)
	ExportOrders(ctx context.Context, status string) ([]byte, error)
}

// AdminHandler serves the storefront dashboard.
type AdminHandler struct {
	service adminService
	now     func() time.Time
}

// NewAdminHandler constructs the handler.
func NewAdminHandler(svc adminService) *AdminHandler {
	return &AdminHandler{service: svc, now: time.Now}
}

// Stats godoc
// @Summary Storefront statistics
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.AdminStats
// @Failure 403 {object} response.ErrorBody
// @Router /admin/stats [get]
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, stats)
}

// ExportOrders godoc
// @Summary Export orders as CSV
// @Tags Admin
// @Produce text/csv
// @Security BearerAuth
// @Param status query string false "Status filter"
// @Success 200 {file} binary
// @Router /admin/orders/export [get]
func (h *AdminHandler) ExportOrders(c *gin.Context) {
	data, err := h.service.ExportOrders(c.Request.Context(), c.Query("status"))
	if err != nil {
		response.Error(c, err)
		return
	}
	filename := "orders-" + h.now().UTC().Format("20060102") + ".csv"
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}
