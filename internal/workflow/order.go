// Package workflow holds the closed status sets for orders and job
// applications and the transitions each one permits.
//
// Orders:
//
//	pending ──► processing ──► shipped ──► delivered
//	   │             │
//	   └─────────────┴──► cancelled
//
// Applications:
//
//	pending ──► accepted | rejected
//
// delivered, cancelled, accepted and rejected are terminal.
package workflow

import "fmt"

// OrderStatus mirrors orders.status in PostgreSQL.
type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

// OrderStatuses lists every order status in lifecycle order.
var OrderStatuses = []OrderStatus{OrderPending, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled}

var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderPending:    {OrderProcessing, OrderCancelled},
	OrderProcessing: {OrderShipped, OrderCancelled},
	OrderShipped:    {OrderDelivered},
}

// ParseOrderStatus rejects values outside the closed set.
func ParseOrderStatus(s string) (OrderStatus, error) {
	st := OrderStatus(s)
	switch st {
	case OrderPending, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled:
		return st, nil
	}
	return "", fmt.Errorf("unknown order status %q", s)
}

// CanAdvanceOrder reports whether an administrator may move an order from → to.
func CanAdvanceOrder(from, to OrderStatus) bool {
	return contains(orderTransitions[from], to)
}

// CanCustomerCancel reports whether the owning customer may still cancel.
func CanCustomerCancel(from OrderStatus) bool {
	return from == OrderPending
}

// IsTerminal reports whether no further order transition exists.
func (s OrderStatus) IsTerminal() bool {
	return len(orderTransitions[s]) == 0
}

// RestocksOnEntry reports whether entering s returns line items to inventory.
func (s OrderStatus) RestocksOnEntry() bool {
	return s == OrderCancelled
}

func contains[T comparable](list []T, v T) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
