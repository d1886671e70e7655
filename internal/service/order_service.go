package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/noah-isme/portal-api/internal/models"
	"github.com/noah-isme/portal-api/internal/repository"
	"github.com/noah-isme/portal-api/internal/workflow"
	appErrors "github.com/noah-isme/portal-api/pkg/errors"
	"github.com/noah-isme/portal-api/pkg/export"
)

type orderRepository interface {
	Create(ctx context.Context, params repository.CreateOrderParams) error
	FindByID(ctx context.Context, id string) (*models.Order, error)
	List(ctx context.Context, filter models.OrderFilter) ([]models.Order, error)
	Transition(ctx context.Context, id string, from, to workflow.OrderStatus) (*models.Order, error)
}

type userLookup interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
}

// OrderLineRequest is one requested product line.
type OrderLineRequest struct {
	ProductID string `json:"productId" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"min=1"`
}

// PaymentRequest carries card details; only the last four digits are kept.
type PaymentRequest struct {
	CardNumber string `json:"cardNumber" validate:"required"`
	CardName   string `json:"cardName" validate:"required,max=100"`
}

// CreateOrderRequest is the checkout payload.
type CreateOrderRequest struct {
	Items        []OrderLineRequest  `json:"items" validate:"required,min=1,dive"`
	ShippingInfo models.ShippingInfo `json:"shippingInfo"`
	PaymentInfo  PaymentRequest      `json:"paymentInfo"`
	Total        *decimal.Decimal    `json:"total" validate:"omitempty,gte=0"`
}

// UpdateOrderStatusRequest is the admin payload for moving an order along.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending processing shipped delivered cancelled"`
}

// OrderService places orders and drives them through the order workflow.
type OrderService struct {
	repo      orderRepository
	users     userLookup
	audit     auditRecorder
	pdf       *export.PDFExporter
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewOrderService constructs an OrderService.
func NewOrderService(repo orderRepository, users userLookup, audit auditRecorder, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *OrderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = NewValidator()
	}
	return &OrderService{
		repo:      repo,
		users:     users,
		audit:     audit,
		pdf:       export.NewPDFExporter(),
		metrics:   metrics,
		validator: validate,
		logger:    logger,
	}
}

// Create reserves stock for every line and stores the order as pending.
func (s *OrderService) Create(ctx context.Context, actor Actor, req CreateOrderRequest) (*models.Order, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}
	digits, err := cardDigits(req.PaymentInfo.CardNumber)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, actor.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrTokenInvalid, "user no longer exists")
		}
		return nil, appErrors.Internal(err, "failed to load user")
	}

	order := &models.Order{
		UserID:       user.ID,
		UserName:     user.Name,
		UserEmail:    user.Email,
		ShippingInfo: req.ShippingInfo,
		PaymentInfo: models.PaymentInfo{
			CardLast4: digits[len(digits)-4:],
			CardName:  strings.TrimSpace(req.PaymentInfo.CardName),
		},
	}
	params := repository.CreateOrderParams{
		Order:         order,
		Lines:         mergeOrderLines(req.Items),
		ExpectedTotal: req.Total,
	}

	if err := s.repo.Create(ctx, params); err != nil {
		var stockErr *repository.StockError
		switch {
		case errors.As(err, &stockErr) && errors.Is(err, repository.ErrProductNotFound):
			s.metrics.OrderRejected("not_found")
			return nil, invalid(fmt.Sprintf("product %s not found", stockErr.ProductID))
		case errors.As(err, &stockErr):
			s.metrics.OrderRejected("insufficient_stock")
			return nil, appErrors.Wrap(err, appErrors.ErrInsufficientStock.Code, appErrors.ErrInsufficientStock.Status,
				fmt.Sprintf("insufficient stock for %s", stockErr.ProductName))
		case errors.Is(err, repository.ErrTotalMismatch):
			s.metrics.OrderRejected("total_mismatch")
			return nil, invalid("total does not match the order items")
		}
		return nil, appErrors.Internal(err, "failed to create order")
	}

	s.metrics.OrderPlaced()
	s.logger.Info("order placed", zap.String("order_id", order.ID), zap.String("user_id", order.UserID), zap.String("total", order.Total.StringFixed(2)))
	return order, nil
}

// MyOrders returns the caller's orders newest first.
func (s *OrderService) MyOrders(ctx context.Context, actor Actor) ([]models.Order, error) {
	orders, err := s.repo.List(ctx, models.OrderFilter{UserID: actor.ID})
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list orders")
	}
	return orders, nil
}

// List returns every order, optionally filtered by status. Admin only.
func (s *OrderService) List(ctx context.Context, status string) ([]models.Order, error) {
	filter := models.OrderFilter{}
	if status != "" && status != "all" {
		st, err := workflow.ParseOrderStatus(status)
		if err != nil {
			return nil, invalid("status must be one of: pending, processing, shipped, delivered, cancelled")
		}
		filter.Status = &st
	}
	orders, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list orders")
	}
	return orders, nil
}

// Get returns an order visible to its owner or an administrator.
func (s *OrderService) Get(ctx context.Context, actor Actor, id string) (*models.Order, error) {
	order, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.Owns(order.UserID) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "Not authorized to view this order")
	}
	return order, nil
}

// UpdateStatus applies an administrator transition.
func (s *OrderService) UpdateStatus(ctx context.Context, actor Actor, id string, req UpdateOrderStatusRequest, meta AuditMeta) (*models.Order, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}
	to, err := workflow.ParseOrderStatus(req.Status)
	if err != nil {
		return nil, invalid(err.Error())
	}
	order, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !workflow.CanAdvanceOrder(order.Status, to) {
		return nil, appErrors.Clone(appErrors.ErrInvalidTransition, fmt.Sprintf("cannot change order status from %s to %s", order.Status, to))
	}
	updated, err := s.transition(ctx, order, to)
	if err != nil {
		return nil, err
	}

	recordAudit(ctx, s.audit, s.logger, auditEntry{
		actorID:    actor.ID,
		action:     models.AuditActionOrderStatus,
		resource:   "order",
		resourceID: id,
		oldValues:  map[string]string{"status": string(order.Status)},
		newValues:  map[string]string{"status": string(to)},
		meta:       meta,
	})
	return updated, nil
}

// Cancel lets the owner cancel an order that has not started processing.
func (s *OrderService) Cancel(ctx context.Context, actor Actor, id string, meta AuditMeta) (*models.Order, error) {
	order, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.UserID != actor.ID {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "Not authorized to cancel this order")
	}
	if !workflow.CanCustomerCancel(order.Status) {
		return nil, appErrors.Clone(appErrors.ErrInvalidTransition, "only pending orders can be cancelled")
	}
	updated, err := s.transition(ctx, order, workflow.OrderCancelled)
	if err != nil {
		return nil, err
	}

	recordAudit(ctx, s.audit, s.logger, auditEntry{
		actorID:    actor.ID,
		action:     models.AuditActionOrderCancel,
		resource:   "order",
		resourceID: id,
		oldValues:  map[string]string{"status": string(order.Status)},
		newValues:  map[string]string{"status": string(workflow.OrderCancelled)},
		meta:       meta,
	})
	return updated, nil
}

// Invoice renders a PDF invoice for an order visible to actor.
func (s *OrderService) Invoice(ctx context.Context, actor Actor, id string) ([]byte, string, error) {
	order, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, "", err
	}

	rows := make([]map[string]string, 0, len(order.Items))
	for _, item := range order.Items {
		rows = append(rows, map[string]string{
			"Product":  item.Name,
			"Price":    item.Price.StringFixed(2),
			"Quantity": fmt.Sprintf("%d", item.Quantity),
			"Subtotal": item.Subtotal().StringFixed(2),
		})
	}
	ship := order.ShippingInfo
	doc := export.Document{
		Title: "Invoice",
		Header: []export.Field{
			{Label: "Order", Value: order.ID},
			{Label: "Date", Value: order.CreatedAt.Format("2006-01-02")},
			{Label: "Customer", Value: fmt.Sprintf("%s <%s>", order.UserName, order.UserEmail)},
			{Label: "Ship to", Value: fmt.Sprintf("%s %s, %s, %s %s, %s", ship.FirstName, ship.LastName, ship.Address, ship.City, ship.Zip, ship.Country)},
			{Label: "Status", Value: string(order.Status)},
		},
		Table: export.Dataset{
			Headers: []string{"Product", "Price", "Quantity", "Subtotal"},
			Rows:    rows,
		},
		Widths: []float64{85, 35, 30, 40},
		Summary: []export.Field{
			{Label: "Paid with", Value: "card ending " + order.PaymentInfo.CardLast4},
			{Label: "Total", Value: order.Total.StringFixed(2)},
		},
	}
	data, err := s.pdf.Render(doc)
	if err != nil {
		return nil, "", appErrors.Internal(err, "failed to render invoice")
	}
	return data, fmt.Sprintf("invoice-%s.pdf", order.ID), nil
}

func (s *OrderService) find(ctx context.Context, id string) (*models.Order, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Order not found")
		}
		return nil, appErrors.Internal(err, "failed to load order")
	}
	return order, nil
}

func (s *OrderService) transition(ctx context.Context, order *models.Order, to workflow.OrderStatus) (*models.Order, error) {
	updated, err := s.repo.Transition(ctx, order.ID, order.Status, to)
	if err != nil {
		if errors.Is(err, repository.ErrStatusConflict) {
			return nil, appErrors.Clone(appErrors.ErrInvalidTransition, "order status changed, reload and try again")
		}
		return nil, appErrors.Internal(err, "failed to update order status")
	}
	s.metrics.OrderTransition(string(to))
	return updated, nil
}

// mergeOrderLines folds repeated products into one line, keeping first-seen order.
func mergeOrderLines(items []OrderLineRequest) []models.OrderLine {
	lines := make([]models.OrderLine, 0, len(items))
	index := make(map[string]int, len(items))
	for _, item := range items {
		id := strings.TrimSpace(item.ProductID)
		if i, ok := index[id]; ok {
			lines[i].Quantity += item.Quantity
			continue
		}
		index[id] = len(lines)
		lines = append(lines, models.OrderLine{ProductID: id, Quantity: item.Quantity})
	}
	return lines
}

// cardDigits strips spaces and dashes and checks the remaining length.
func cardDigits(number string) (string, error) {
	var b strings.Builder
	for _, r := range number {
		switch {
		case r == ' ' || r == '-':
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			return "", invalid("paymentInfo.cardNumber must contain only digits")
		}
	}
	digits := b.String()
	if len(digits) < 12 || len(digits) > 19 {
		return "", invalid("paymentInfo.cardNumber must have between 12 and 19 digits")
	}
	return digits, nil
}
