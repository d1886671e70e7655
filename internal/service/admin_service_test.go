package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/portal-api/internal/models"
	"github.com/noah-isme/portal-api/internal/repository"
	"github.com/noah-isme/portal-api/internal/workflow"
)

type fixedCount int

func (c fixedCount) Count(ctx context.Context) (int, error) { return int(c), nil }

type mockOrderStats struct {
	totals []repository.StatusTotal
	orders []models.Order
	filter models.OrderFilter
}

func (m *mockOrderStats) List(ctx context.Context, filter models.OrderFilter) ([]models.Order, error) {
	m.filter = filter
	return m.orders, nil
}

func (m *mockOrderStats) TotalsByStatus(ctx context.Context) ([]repository.StatusTotal, error) {
	return m.totals, nil
}

func TestAdminServiceStats(t *testing.T) {
	orders := &mockOrderStats{totals: []repository.StatusTotal{
		{Status: workflow.OrderPending, Count: 2, Revenue: decimal.RequireFromString("20.50")},
		{Status: workflow.OrderDelivered, Count: 1, Revenue: decimal.RequireFromString("9.50")},
		{Status: workflow.OrderCancelled, Count: 3, Revenue: decimal.RequireFromString("100")},
	}}
	svc := NewAdminService(fixedCount(4), fixedCount(7), orders, nil)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, stats.TotalUsers)
	assert.Equal(t, 7, stats.TotalProducts)
	assert.Equal(t, 6, stats.TotalOrders)
	assert.True(t, decimal.NewFromInt(30).Equal(stats.TotalRevenue))
	assert.Equal(t, map[string]int{"pending": 2, "processing": 0, "shipped": 0, "delivered": 1, "cancelled": 3}, stats.OrdersByStatus)
}

func TestAdminServiceExportOrders(t *testing.T) {
	orders := &mockOrderStats{orders: []models.Order{{
		ID:        "o1",
		UserName:  "Ana",
		UserEmail: "ana@example.com",
		Items:     models.OrderItems{{Name: "Mug", Quantity: 2}, {Name: "Pen", Quantity: 1}},
		Total:     decimal.RequireFromString("12"),
		Status:    workflow.OrderShipped,
		CreatedAt: time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC),
	}}}
	svc := NewAdminService(fixedCount(0), fixedCount(0), orders, nil)

	data, err := svc.ExportOrders(context.Background(), "shipped")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Order ID,Date,Customer,Email,Items,Total,Status", lines[0])
	assert.Equal(t, "o1,2024-05-01 09:30,Ana,ana@example.com,Mug x2; Pen x1,12.00,shipped", lines[1])
	require.NotNil(t, orders.filter.Status)

	_, err = svc.ExportOrders(context.Background(), "nope")
	assert.Error(t, err)
}
