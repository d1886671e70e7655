package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultProductStock is applied when a product is created without a stock value.
const DefaultProductStock = 100

// Product is a storefront catalogue entry.
type Product struct {
	ID          string          `db:"id" json:"id"`
	Name        string          `db:"name" json:"name"`
	Category    string          `db:"category" json:"category"`
	Price       decimal.Decimal `db:"price" json:"price"`
	Stock       int             `db:"stock" json:"stock"`
	Description string          `db:"description" json:"description"`
	Image       string          `db:"image" json:"image"`
	CreatedAt   time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time       `db:"updated_at" json:"updatedAt"`
}

// ProductSort enumerates the supported list orders.
type ProductSort string

const (
	ProductSortNewest    ProductSort = "newest"
	ProductSortPriceLow  ProductSort = "price-low"
	ProductSortPriceHigh ProductSort = "price-high"
)

// ProductFilter narrows product listings.
type ProductFilter struct {
	Category string
	Search   string
	Sort     ProductSort
}

// ProductChanges holds the columns an admin edit touches; nil fields keep
// their stored value.
type ProductChanges struct {
	Name        *string
	Category    *string
	Price       *decimal.Decimal
	Stock       *int
	Description *string
	Image       *string
}
