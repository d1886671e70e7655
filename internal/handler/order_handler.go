package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/portal-api/internal/models"
	"github.com/noah-isme/portal-api/internal/service"
	appErrors "github.com/noah-isme/portal-api/pkg/errors"
	"github.com/noah-isme/portal-api/pkg/response"
)

type orderService interface {
	Create(ctx context.Context, actor service.Actor, req service.CreateOrderRequest) (*models.Order, error)
	MyOrders(ctx context.Context, actor service.Actor) ([]models.Order, error)
	List(ctx context.Context, status string) ([]models.Order, error)
	Get(ctx context.Context, actor service.Actor, id string) (*models.Order, error)
	UpdateStatus(ctx context.Context, actor service.Actor, id string, req service.UpdateOrderStatusRequest, meta service.AuditMeta) (*models.Order, error)
	Cancel(ctx context.Context, actor service.Actor, id string, meta service.AuditMeta) (*models.Order, error)
	Invoice(ctx context.Context, actor service.Actor, id string) ([]byte, string, error)
}

// OrderHandler exposes checkout and order management.
type OrderHandler struct {
	service orderService
}

// NewOrderHandler constructs the handler.
func NewOrderHandler(svc orderService) *OrderHandler {
	return &OrderHandler{service: svc}
}

// Create godoc
// @Summary Place an order
// @Description Reserves stock for every line atomically; the whole order fails if any line cannot be filled.
// @Tags Orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body service.CreateOrderRequest true "Order"
// @Success 201 {object} models.Order
// @Failure 400 {object} response.ErrorBody
// @Router /orders [post]
func (h *OrderHandler) Create(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	var req service.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err))
		return
	}
	order, err := h.service.Create(c.Request.Context(), actor, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, order)
}

// MyOrders godoc
// @Summary List own orders
// @Tags Orders
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Order
// @Router /orders/my-orders [get]
func (h *OrderHandler) MyOrders(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	orders, err := h.service.MyOrders(c.Request.Context(), actor)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, orders)
}

// List godoc
// @Summary List all orders
// @Tags Orders
// @Produce json
// @Security BearerAuth
// @Param status query string false "Status filter"
// @Success 200 {array} models.Order
// @Router /orders [get]
func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.service.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, orders)
}

// Get godoc
// @Summary Get order
// @Tags Orders
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 200 {object} models.Order
// @Failure 403 {object} response.ErrorBody
// @Failure 404 {object} response.ErrorBody
// @Router /orders/{id} [get]
func (h *OrderHandler) Get(c *gin.Context) {
	actor, id, ok := h.target(c)
	if !ok {
		return
	}
	order, err := h.service.Get(c.Request.Context(), actor, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, order)
}

// UpdateStatus godoc
// @Summary Advance order status
// @Tags Orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Param payload body service.UpdateOrderStatusRequest true "New status"
// @Success 200 {object} models.Order
// @Failure 400 {object} response.ErrorBody
// @Router /orders/{id}/status [put]
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	actor, id, ok := h.target(c)
	if !ok {
		return
	}
	var req service.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err))
		return
	}
	order, err := h.service.UpdateStatus(c.Request.Context(), actor, id, req, auditMeta(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, order)
}

// Cancel godoc
// @Summary Cancel own pending order
// @Tags Orders
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 200 {object} models.Order
// @Failure 400 {object} response.ErrorBody
// @Router /orders/{id}/cancel [post]
func (h *OrderHandler) Cancel(c *gin.Context) {
	actor, id, ok := h.target(c)
	if !ok {
		return
	}
	order, err := h.service.Cancel(c.Request.Context(), actor, id, auditMeta(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, order)
}

// Invoice godoc
// @Summary Download order invoice
// @Tags Orders
// @Produce application/pdf
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 200 {file} binary
// @Failure 404 {object} response.ErrorBody
// @Router /orders/{id}/invoice [get]
func (h *OrderHandler) Invoice(c *gin.Context) {
	actor, id, ok := h.target(c)
	if !ok {
		return
	}
	pdf, filename, err := h.service.Invoice(c.Request.Context(), actor, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "application/pdf", pdf)
}

func (h *OrderHandler) target(c *gin.Context) (service.Actor, string, bool) {
	actor, ok := actorFromContext(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return actor, "", false
	}
	id, ok := pathID(c, "id")
	if !ok {
		response.Error(c, notFound("Order"))
		return actor, "", false
	}
	return actor, id, true
}
