package models

import (
	"database/sql/driver"
	"time"

	"github.com/shopspring/decimal"

	"github.com/noah-isme/portal-api/internal/workflow"
)

// OrderItem is a line snapshot taken when the order was placed.
type OrderItem struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Image     string          `json:"image,omitempty"`
}

// Subtotal returns price × quantity.
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// OrderItems is stored as a JSONB array.
type OrderItems []OrderItem

// Value implements driver.Valuer.
func (o OrderItems) Value() (driver.Value, error) {
	if o == nil {
		return []byte("[]"), nil
	}
	return jsonValue(o)
}

// Scan implements sql.Scanner.
func (o *OrderItems) Scan(src interface{}) error { return scanJSON(src, o) }

// Total sums every line subtotal.
func (o OrderItems) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o {
		total = total.Add(item.Subtotal())
	}
	return total
}

// ShippingInfo is the delivery address captured at checkout.
type ShippingInfo struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Address   string `json:"address" validate:"required"`
	City      string `json:"city" validate:"required"`
	Zip       string `json:"zip" validate:"required"`
	Country   string `json:"country" validate:"required"`
}

// Value implements driver.Valuer.
func (s ShippingInfo) Value() (driver.Value, error) { return jsonValue(s) }

// Scan implements sql.Scanner.
func (s *ShippingInfo) Scan(src interface{}) error { return scanJSON(src, s) }

// PaymentInfo keeps only what is safe to persist about the card.
type PaymentInfo struct {
	CardLast4 string `json:"cardLast4"`
	CardName  string `json:"cardName"`
}

// Value implements driver.Valuer.
func (p PaymentInfo) Value() (driver.Value, error) { return jsonValue(p) }

// Scan implements sql.Scanner.
func (p *PaymentInfo) Scan(src interface{}) error { return scanJSON(src, p) }

// Order is a placed storefront order.
type Order struct {
	ID           string               `db:"id" json:"id"`
	UserID       string               `db:"user_id" json:"userId"`
	UserName     string               `db:"user_name" json:"userName"`
	UserEmail    string               `db:"user_email" json:"userEmail"`
	Items        OrderItems           `db:"items" json:"items"`
	ShippingInfo ShippingInfo         `db:"shipping_info" json:"shippingInfo"`
	PaymentInfo  PaymentInfo          `db:"payment_info" json:"paymentInfo"`
	Total        decimal.Decimal      `db:"total" json:"total"`
	Status       workflow.OrderStatus `db:"status" json:"status"`
	CreatedAt    time.Time            `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time            `db:"updated_at" json:"updatedAt"`
}

// OrderFilter narrows the admin order listing.
type OrderFilter struct {
	UserID string
	Status *workflow.OrderStatus
}

// OrderLine is a requested product and quantity before stock is reserved.
type OrderLine struct {
	ProductID string
	Quantity  int
}

// AdminStats summarises the storefront for the dashboard.
type AdminStats struct {
	TotalUsers     int             `json:"totalUsers"`
	TotalProducts  int             `json:"totalProducts"`
	TotalOrders    int             `json:"totalOrders"`
	TotalRevenue   decimal.Decimal `json:"totalRevenue"`
	OrdersByStatus map[string]int  `json:"ordersByStatus"`
}
