package service

import (
	"context"
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/opendev-studio/site-api/internal/api/metrics"
	"github.com/opendev-studio/site-api/internal/core/domain"
	"github.com/opendev-studio/site-api/internal/core/ports"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

// OrderService implements order use-cases: creation against an existing
// service, the filtered/paginated admin listing, and status updates.
type OrderService struct {
	orders   ports.OrderRepository
	services ports.ServiceRepository
	notifier Enqueuer
	audit    ports.AuditLogger
	logger   zerolog.Logger
}

func NewOrderService(
	orders ports.OrderRepository,
	services ports.ServiceRepository,
	notifier Enqueuer,
	audit ports.AuditLogger,
	logger zerolog.Logger,
) *OrderService {
	return &OrderService{
		orders:   orders,
		services: services,
		notifier: notifier,
		audit:    audit,
		logger:   logger,
	}
}

// Create verifies the referenced service exists (404 otherwise — no order is
// written and no email attempted), persists the order, then dispatches a
// best-effort notification to the admin address and the submitter.
func (s *OrderService) Create(ctx context.Context, in ports.CreateOrderInput) (*domain.Order, error) {
	svc, err := s.services.FindByID(ctx, in.ServiceID)
	if err != nil {
		return nil, err
	}

	order := &domain.Order{
		ServiceID: svc.ID,
		Name:      in.Name,
		Email:     NormalizeEmail(in.Email),
		Message:   in.Message,
		FileURL:   in.FileURL,
		Status:    domain.OrderPending,
		CreatedAt: time.Now().UTC(),
	}

	created, err := s.orders.Create(ctx, order)
	if err != nil {
		return nil, err
	}

	metrics.OrdersCreatedTotal.Inc()
	s.logger.Info().Str("order_id", created.ID).Str("service_id", svc.ID).Msg("order created")

	if s.notifier != nil {
		s.notifier.Enqueue(ports.Notification{
			Kind:          ports.NotifyOrder,
			OrderID:       created.ID,
			ServiceName:   svc.Title,
			CustomerName:  created.Name,
			CustomerEmail: created.Email,
			Message:       created.Message,
			FileURL:       created.FileURL,
		})
	}

	return created, nil
}

func (s *OrderService) Get(ctx context.Context, id string) (*domain.Order, error) {
	return s.orders.FindByID(ctx, id)
}

// List applies the filter, clamping page/limit to safe defaults and silently
// dropping a status value outside the enum. The repository never sees an
// invalid filter shape.
func (s *OrderService) List(ctx context.Context, f ports.ListOrdersFilter) (*ports.OrderPage, error) {
	f.Page, f.Limit = clampPage(f.Page, f.Limit)
	if f.Status != "" && !domain.ValidOrderStatus(f.Status) {
		f.Status = ""
	}

	items, total, err := s.orders.List(ctx, f)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []*domain.Order{}
	}

	return &ports.OrderPage{
		Items:      items,
		Total:      total,
		Page:       f.Page,
		Limit:      f.Limit,
		TotalPages: totalPages(total, f.Limit),
	}, nil
}

// UpdateStatus sets the order status. Repeating the same status is a no-op
// success; there is no transition state machine beyond enum membership,
// which the handler validates.
func (s *OrderService) UpdateStatus(ctx context.Context, actorID, id, status string) (*domain.Order, error) {
	if !domain.ValidOrderStatus(status) {
		return nil, domain.ErrInvalidStatus
	}

	updated, err := s.orders.UpdateStatus(ctx, id, domain.OrderStatus(status))
	if err != nil {
		return nil, err
	}

	s.audit.Log(ctx, actorID, "update_order_status", domain.TargetOrder, id, map[string]any{"status": status})
	return updated, nil
}

func (s *OrderService) Delete(ctx context.Context, actorID, id string) error {
	if err := s.orders.Delete(ctx, id); err != nil {
		return err
	}
	s.audit.Log(ctx, actorID, "delete_order", domain.TargetOrder, id, nil)
	return nil
}

// clampPage normalizes pagination inputs: page defaults to 1, limit to 10,
// and limit is capped at 100.
func clampPage(page, limit int) (int, int) {
	if page < 1 {
		page = defaultPage
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return page, limit
}

// totalPages is ceil(total/limit), never negative.
func totalPages(total int64, limit int) int {
	if limit <= 0 || total <= 0 {
		return 0
	}
	return int(math.Ceil(float64(total) / float64(limit)))
}
