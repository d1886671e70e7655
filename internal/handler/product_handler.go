package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/portal-api/internal/models"
	"github.com/noah-isme/portal-api/internal/service"
	"github.com/noah-isme/portal-api/pkg/response"
)

type productService interface {
	List(ctx context.Context, filter models.ProductFilter) ([]models.Product, error)
	Get(ctx context.Context, id string) (*models.Product, error)
	Create(ctx context.Context, req service.CreateProductRequest) (*models.Product, error)
	Update(ctx context.Context, id string, req service.UpdateProductRequest) (*models.Product, error)
	Delete(ctx context.Context, id string) error
}

// ProductHandler serves the storefront catalogue.
type ProductHandler struct {
	service productService
}

// NewProductHandler constructs the handler.
func NewProductHandler(svc productService) *ProductHandler {
	return &ProductHandler{service: svc}
}

// List godoc
// @Summary List products
// @Tags Products
// @Produce json
// @Param category query string false "Category, or all"
// @Param search query string false "Name or description substring"
// @Param sort query string false "price-low, price-high or newest"
// @Success 200 {array} models.Product
// @Router /products [get]
func (h *ProductHandler) List(c *gin.Context) {
	filter := models.ProductFilter{
		Category: c.Query("category"),
		Search:   c.Query("search"),
		Sort:     models.ProductSort(strings.TrimSpace(c.Query("sort"))),
	}
	products, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, products)
}

// Get godoc
// @Summary Get product
// @Tags Products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} models.Product
// @Failure 404 {object} response.ErrorBody
// @Router /products/{id} [get]
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		response.Error(c, notFound("Product"))
		return
	}
	product, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, product)
}

// Create godoc
// @Summary Create product
// @Tags Products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body service.CreateProductRequest true "Product"
// @Success 201 {object} models.Product
// @Failure 400 {object} response.ErrorBody
// @Failure 403 {object} response.ErrorBody
// @Router /products [post]
func (h *ProductHandler) Create(c *gin.Context) {
	var req service.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err))
		return
	}
	product, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, product)
}

// Update godoc
// @Summary Update product
// @Tags Products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Param payload body service.UpdateProductRequest true "Fields to change"
// @Success 200 {object} models.Product
// @Failure 400 {object} response.ErrorBody
// @Failure 404 {object} response.ErrorBody
// @Router /products/{id} [put]
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		response.Error(c, notFound("Product"))
		return
	}
	var req service.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err))
		return
	}
	product, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, product)
}

// Delete godoc
// @Summary Delete product
// @Tags Products
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Success 200 {object} response.MessageBody
// @Failure 404 {object} response.ErrorBody
// @Router /products/{id} [delete]
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		response.Error(c, notFound("Product"))
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "Product deleted successfully")
}
