package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/noah-isme/portal-api/internal/models"
	appErrors "github.com/noah-isme/portal-api/pkg/errors"
)

type productRepository interface {
	List(ctx context.Context, filter models.ProductFilter) ([]models.Product, error)
	FindByID(ctx context.Context, id string) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, id string, changes models.ProductChanges) (*models.Product, error)
	Delete(ctx context.Context, id string) error
}

// CreateProductRequest is the admin payload for a new catalogue entry.
type CreateProductRequest struct {
	Name        string           `json:"name" validate:"required,max=100"`
	Category    string           `json:"category" validate:"required,max=50"`
	Price       *decimal.Decimal `json:"price" validate:"required,gte=0"`
	Stock       *int             `json:"stock" validate:"omitempty,gte=0"`
	Description string           `json:"description" validate:"max=1000"`
	Image       string           `json:"image" validate:"max=500"`
}

// UpdateProductRequest changes only the fields that are present.
type UpdateProductRequest struct {
	Name        *string          `json:"name" validate:"omitempty,min=1,max=100"`
	Category    *string          `json:"category" validate:"omitempty,min=1,max=50"`
	Price       *decimal.Decimal `json:"price" validate:"omitempty,gte=0"`
	Stock       *int             `json:"stock" validate:"omitempty,gte=0"`
	Description *string          `json:"description" validate:"omitempty,max=1000"`
	Image       *string          `json:"image" validate:"omitempty,max=500"`
}

// ProductService manages the storefront catalogue.
type ProductService struct {
	repo      productRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewProductService constructs a ProductService.
func NewProductService(repo productRepository, validate *validator.Validate, logger *zap.Logger) *ProductService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = NewValidator()
	}
	return &ProductService{repo: repo, validator: validate, logger: logger}
}

// List returns products filtered by category and search text.
func (s *ProductService) List(ctx context.Context, filter models.ProductFilter) ([]models.Product, error) {
	filter.Category = strings.TrimSpace(filter.Category)
	if strings.EqualFold(filter.Category, "all") {
		filter.Category = ""
	}
	filter.Search = strings.TrimSpace(filter.Search)
	switch filter.Sort {
	case models.ProductSortPriceLow, models.ProductSortPriceHigh, models.ProductSortNewest:
	default:
		filter.Sort = models.ProductSortNewest
	}

	products, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list products")
	}
	return products, nil
}

// Get returns a single product.
func (s *ProductService) Get(ctx context.Context, id string) (*models.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Product not found")
		}
		return nil, appErrors.Internal(err, "failed to load product")
	}
	return product, nil
}

// Create adds a product. Stock defaults to DefaultProductStock.
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*models.Product, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Category = strings.TrimSpace(req.Category)
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}

	stock := models.DefaultProductStock
	if req.Stock != nil {
		stock = *req.Stock
	}
	product := &models.Product{
		Name:        req.Name,
		Category:    req.Category,
		Price:       req.Price.Round(2),
		Stock:       stock,
		Description: req.Description,
		Image:       req.Image,
	}
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, appErrors.Internal(err, "failed to create product")
	}
	return product, nil
}

// Update applies the present fields of req.
func (s *ProductService) Update(ctx context.Context, id string, req UpdateProductRequest) (*models.Product, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}
	changes := models.ProductChanges{
		Stock:       req.Stock,
		Description: req.Description,
		Image:       req.Image,
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		changes.Name = &name
	}
	if req.Category != nil {
		category := strings.TrimSpace(*req.Category)
		changes.Category = &category
	}
	if req.Price != nil {
		price := req.Price.Round(2)
		changes.Price = &price
	}

	product, err := s.repo.Update(ctx, id, changes)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Product not found")
		}
		return nil, appErrors.Internal(err, "failed to update product")
	}
	return product, nil
}

// Delete removes a product permanently.
func (s *ProductService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "Product not found")
		}
		return appErrors.Internal(err, "failed to delete product")
	}
	return nil
}
