package repository

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
)

var (
	// ErrDuplicate is returned when a unique constraint rejects an insert.
	ErrDuplicate = errors.New("duplicate record")
	// ErrStatusConflict means the row left the expected status before the update landed.
	ErrStatusConflict = errors.New("status changed concurrently")
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrTotalMismatch     = errors.New("order total mismatch")
)

// StockError identifies the order line that could not be reserved.
type StockError struct {
	ProductID   string
	ProductName string
	Err         error
}

func (e *StockError) Error() string {
	if e.ProductName != "" {
		return fmt.Sprintf("%v for %s", e.Err, e.ProductName)
	}
	return fmt.Sprintf("%v: %s", e.Err, e.ProductID)
}

func (e *StockError) Unwrap() error { return e.Err }

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
