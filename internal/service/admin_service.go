package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/noah-isme/portal-api/internal/models"
	"github.com/noah-isme/portal-api/internal/repository"
	"github.com/noah-isme/portal-api/internal/workflow"
	appErrors "github.com/noah-isme/portal-api/pkg/errors"
	"github.com/noah-isme/portal-api/pkg/export"
)

type counter interface {
	Count(ctx context.Context) (int, error)
}

type orderStatsRepository interface {
	List(ctx context.Context, filter models.OrderFilter) ([]models.Order, error)
	TotalsByStatus(ctx context.Context) ([]repository.StatusTotal, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

// AdminService builds the storefront dashboard and exports.
type AdminService struct {
	users    counter
	products counter
	orders   orderStatsRepository
	csv      csvRenderer
	logger   *zap.Logger
}

// NewAdminService constructs an AdminService.
func NewAdminService(users, products counter, orders orderStatsRepository, logger *zap.Logger) *AdminService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdminService{users: users, products: products, orders: orders, csv: export.NewCSVExporter(), logger: logger}
}

// Stats returns totals for the admin dashboard. Revenue excludes cancelled orders.
func (s *AdminService) Stats(ctx context.Context) (*models.AdminStats, error) {
	totalUsers, err := s.users.Count(ctx)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to count users")
	}
	totalProducts, err := s.products.Count(ctx)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to count products")
	}
	totals, err := s.orders.TotalsByStatus(ctx)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to aggregate orders")
	}

	stats := &models.AdminStats{
		TotalUsers:     totalUsers,
		TotalProducts:  totalProducts,
		TotalRevenue:   decimal.Zero,
		OrdersByStatus: make(map[string]int, len(workflow.OrderStatuses)),
	}
	for _, st := range workflow.OrderStatuses {
		stats.OrdersByStatus[string(st)] = 0
	}
	for _, t := range totals {
		stats.TotalOrders += t.Count
		stats.OrdersByStatus[string(t.Status)] += t.Count
		if t.Status != workflow.OrderCancelled {
			stats.TotalRevenue = stats.TotalRevenue.Add(t.Revenue)
		}
	}
	stats.TotalRevenue = stats.TotalRevenue.Round(2)
	return stats, nil
}

var orderExportHeaders = []string{"Order ID", "Date", "Customer", "Email", "Items", "Total", "Status"}

// ExportOrders renders orders, optionally filtered by status, as CSV.
func (s *AdminService) ExportOrders(ctx context.Context, status string) ([]byte, error) {
	filter := models.OrderFilter{}
	if status != "" && status != "all" {
		st, err := workflow.ParseOrderStatus(status)
		if err != nil {
			return nil, invalid("status must be one of: pending, processing, shipped, delivered, cancelled")
		}
		filter.Status = &st
	}
	orders, err := s.orders.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list orders")
	}

	rows := make([]map[string]string, 0, len(orders))
	for _, o := range orders {
		lines := make([]string, 0, len(o.Items))
		for _, item := range o.Items {
			lines = append(lines, fmt.Sprintf("%s x%d", item.Name, item.Quantity))
		}
		rows = append(rows, map[string]string{
			"Order ID": o.ID,
			"Date":     o.CreatedAt.UTC().Format("2006-01-02 15:04"),
			"Customer": o.UserName,
			"Email":    o.UserEmail,
			"Items":    strings.Join(lines, "; "),
			"Total":    o.Total.StringFixed(2),
			"Status":   string(o.Status),
		})
	}

	data, err := s.csv.Render(export.Dataset{Headers: orderExportHeaders, Rows: rows})
	if err != nil {
		return nil, appErrors.Internal(err, "failed to render export")
	}
	s.logger.Info("orders exported", zap.Int("rows", len(rows)), zap.String("status", status))
	return data, nil
}
