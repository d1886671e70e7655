package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/portal-api/internal/models"
)

const productColumns = `id, name, category, price, stock, description, image, created_at, updated_at`

// ProductRepository manages the storefront catalogue.
type ProductRepository struct {
	db *sqlx.DB
}

// NewProductRepository constructs the repository.
func NewProductRepository(db *sqlx.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// List returns products matching the filter in the requested order.
func (r *ProductRepository) List(ctx context.Context, filter models.ProductFilter) ([]models.Product, error) {
	var conditions []string
	var args []interface{}

	if filter.Category != "" {
		args = append(args, filter.Category)
		conditions = append(conditions, fmt.Sprintf("category = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
		conditions = append(conditions, fmt.Sprintf("(LOWER(name) LIKE $%d OR LOWER(description) LIKE $%d)", len(args), len(args)))
	}

	query := `SELECT ` + productColumns + ` FROM products`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	switch filter.Sort {
	case models.ProductSortPriceLow:
		query += " ORDER BY price ASC, created_at DESC"
	case models.ProductSortPriceHigh:
		query += " ORDER BY price DESC, created_at DESC"
	default:
		query += " ORDER BY created_at DESC"
	}

	products := []models.Product{}
	if err := r.db.SelectContext(ctx, &products, query, args...); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

// FindByID returns a single product.
func (r *ProductRepository) FindByID(ctx context.Context, id string) (*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	var product models.Product
	if err := r.db.GetContext(ctx, &product, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find product: %w", err)
	}
	return &product, nil
}

// Create inserts a product.
func (r *ProductRepository) Create(ctx context.Context, product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	product.CreatedAt = now
	product.UpdatedAt = now

	const query = `INSERT INTO products (id, name, category, price, stock, description, image, created_at, updated_at)
VALUES (:id, :name, :category, :price, :stock, :description, :image, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, product); err != nil {
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

// Update writes only the columns present in changes and returns the stored row.
func (r *ProductRepository) Update(ctx context.Context, id string, changes models.ProductChanges) (*models.Product, error) {
	var sets []string
	var args []interface{}
	set := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if changes.Name != nil {
		set("name", *changes.Name)
	}
	if changes.Category != nil {
		set("category", *changes.Category)
	}
	if changes.Price != nil {
		set("price", *changes.Price)
	}
	if changes.Stock != nil {
		set("stock", *changes.Stock)
	}
	if changes.Description != nil {
		set("description", *changes.Description)
	}
	if changes.Image != nil {
		set("image", *changes.Image)
	}
	set("updated_at", time.Now().UTC())
	args = append(args, id)

	query := fmt.Sprintf(`UPDATE products SET %s WHERE id = $%d RETURNING %s`, strings.Join(sets, ", "), len(args), productColumns)
	var product models.Product
	if err := r.db.GetContext(ctx, &product, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("update product: %w", err)
	}
	return &product, nil
}

// Delete removes a product. Orders keep their line snapshots.
func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return expectAffected(result, "delete product")
}

// Count returns the catalogue size.
func (r *ProductRepository) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM products`); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return total, nil
}
