package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/opendev-studio/site-api/internal/core/domain"
	"github.com/opendev-studio/site-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stubs
// ---------------------------------------------------------------------------

type stubOrderRepo struct {
	orders     map[string]*domain.Order
	nextID     int
	lastFilter ports.ListOrdersFilter
	listErr    error
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{orders: make(map[string]*domain.Order)}
}

func (r *stubOrderRepo) Create(_ context.Context, o *domain.Order) (*domain.Order, error) {
	r.nextID++
	clone := *o
	clone.ID = fmt.Sprintf("order_%d", r.nextID)
	r.orders[clone.ID] = &clone
	return &clone, nil
}

func (r *stubOrderRepo) FindByID(_ context.Context, id string) (*domain.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	clone := *o
	return &clone, nil
}

func (r *stubOrderRepo) List(_ context.Context, f ports.ListOrdersFilter) ([]*domain.Order, int64, error) {
	r.lastFilter = f
	if r.listErr != nil {
		return nil, 0, r.listErr
	}
	var matched []*domain.Order
	for _, o := range r.orders {
		if f.Status != "" && string(o.Status) != f.Status {
			continue
		}
		clone := *o
		matched = append(matched, &clone)
	}

	// Apply skip/limit like the real store: a page past the end yields an
	// empty slice, never an error.
	total := int64(len(matched))
	if f.Limit > 0 {
		skip := (f.Page - 1) * f.Limit
		switch {
		case skip >= len(matched):
			matched = nil
		case skip+f.Limit < len(matched):
			matched = matched[skip : skip+f.Limit]
		default:
			matched = matched[skip:]
		}
	}
	return matched, total, nil
}

func (r *stubOrderRepo) UpdateStatus(_ context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	o.Status = status
	clone := *o
	return &clone, nil
}

func (r *stubOrderRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.orders[id]; !ok {
		return domain.ErrOrderNotFound
	}
	delete(r.orders, id)
	return nil
}

type stubServiceRepo struct {
	services map[string]*domain.Service
	findErr  error
}

func newStubServiceRepo() *stubServiceRepo {
	return &stubServiceRepo{services: make(map[string]*domain.Service)}
}

func (r *stubServiceRepo) Create(_ context.Context, s *domain.Service) (*domain.Service, error) {
	clone := *s
	if clone.ID == "" {
		clone.ID = fmt.Sprintf("svc_%d", len(r.services)+1)
	}
	for _, existing := range r.services {
		if existing.Slug == clone.Slug {
			return nil, domain.ErrSlugExists
		}
	}
	r.services[clone.ID] = &clone
	return &clone, nil
}

func (r *stubServiceRepo) FindByID(_ context.Context, id string) (*domain.Service, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	s, ok := r.services[id]
	if !ok {
		return nil, domain.ErrServiceNotFound
	}
	clone := *s
	return &clone, nil
}

func (r *stubServiceRepo) FindBySlug(_ context.Context, slug string) (*domain.Service, error) {
	for _, s := range r.services {
		if s.Slug == slug {
			clone := *s
			return &clone, nil
		}
	}
	return nil, domain.ErrServiceNotFound
}

func (r *stubServiceRepo) List(_ context.Context, includeArchived bool) ([]*domain.Service, error) {
	var out []*domain.Service
	for _, s := range r.services {
		if s.IsArchived && !includeArchived {
			continue
		}
		clone := *s
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubServiceRepo) Update(_ context.Context, id string, in ports.UpdateServiceInput) (*domain.Service, error) {
	s, ok := r.services[id]
	if !ok {
		return nil, domain.ErrServiceNotFound
	}
	if in.Title != nil {
		s.Title = *in.Title
	}
	if in.Slug != nil {
		s.Slug = *in.Slug
	}
	if in.IsArchived != nil {
		s.IsArchived = *in.IsArchived
	}
	clone := *s
	return &clone, nil
}

func (r *stubServiceRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.services[id]; !ok {
		return domain.ErrServiceNotFound
	}
	delete(r.services, id)
	return nil
}

// stubAudit records every Log call so tests can assert the trail.
type stubAudit struct {
	entries []string
}

func (a *stubAudit) Log(_ context.Context, adminID, action, targetType, targetID string, _ map[string]any) {
	a.entries = append(a.entries, adminID+":"+action+":"+targetType+":"+targetID)
}

func (a *stubAudit) Recent(_ context.Context, _ int) ([]*domain.AdminAction, error) {
	return nil, nil
}

// stubEnqueuer captures dispatched notifications.
type stubEnqueuer struct {
	sent []ports.Notification
}

func (e *stubEnqueuer) Enqueue(n ports.Notification) {
	e.sent = append(e.sent, n)
}

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

// ---------------------------------------------------------------------------
// Create
// ---------------------------------------------------------------------------

func TestOrderService_Create_UnknownService(t *testing.T) {
	orders := newStubOrderRepo()
	services := newStubServiceRepo()
	notifier := &stubEnqueuer{}
	svc := NewOrderService(orders, services, notifier, &stubAudit{}, testLogger())

	_, err := svc.Create(context.Background(), ports.CreateOrderInput{
		ServiceID: "missing",
		Name:      "Alice",
		Email:     "alice@example.com",
		Message:   "please build my site",
	})
	if !errors.Is(err, domain.ErrServiceNotFound) {
		t.Fatalf("expected ErrServiceNotFound, got %v", err)
	}
	if len(orders.orders) != 0 {
		t.Fatalf("no order should be written on unknown service")
	}
	if len(notifier.sent) != 0 {
		t.Fatalf("no notification should be sent on unknown service")
	}
}

func TestOrderService_Create_Success(t *testing.T) {
	orders := newStubOrderRepo()
	services := newStubServiceRepo()
	services.services["svc_1"] = &domain.Service{ID: "svc_1", Title: "Dév Web", Slug: "dev-web"}
	notifier := &stubEnqueuer{}
	svc := NewOrderService(orders, services, notifier, &stubAudit{}, testLogger())

	created, err := svc.Create(context.Background(), ports.CreateOrderInput{
		ServiceID: "svc_1",
		Name:      "Alice",
		Email:     "  Alice@Example.COM ",
		Message:   "please build my site",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Status != domain.OrderPending {
		t.Fatalf("expected pending status, got %s", created.Status)
	}
	if created.Email != "alice@example.com" {
		t.Fatalf("email not normalized: %q", created.Email)
	}
	if len(notifier.sent) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(notifier.sent))
	}
	n := notifier.sent[0]
	if n.Kind != ports.NotifyOrder || n.ServiceName != "Dév Web" || n.OrderID != created.ID {
		t.Fatalf("unexpected notification: %+v", n)
	}
}

// ---------------------------------------------------------------------------
// List
// ---------------------------------------------------------------------------

func TestOrderService_List_ClampsPagination(t *testing.T) {
	orders := newStubOrderRepo()
	svc := NewOrderService(orders, newStubServiceRepo(), nil, &stubAudit{}, testLogger())

	page, err := svc.List(context.Background(), ports.ListOrdersFilter{Page: 0, Limit: 0})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Page != 1 || page.Limit != 10 {
		t.Fatalf("expected defaults 1/10, got %d/%d", page.Page, page.Limit)
	}
	if page.Items == nil {
		t.Fatalf("items must never be nil")
	}

	if _, err := svc.List(context.Background(), ports.ListOrdersFilter{Page: -3, Limit: 500}); err != nil {
		t.Fatalf("list: %v", err)
	}
	if orders.lastFilter.Page != 1 || orders.lastFilter.Limit != 100 {
		t.Fatalf("expected clamp to 1/100, got %d/%d", orders.lastFilter.Page, orders.lastFilter.Limit)
	}
}

func TestOrderService_List_DropsInvalidStatus(t *testing.T) {
	orders := newStubOrderRepo()
	svc := NewOrderService(orders, newStubServiceRepo(), nil, &stubAudit{}, testLogger())

	if _, err := svc.List(context.Background(), ports.ListOrdersFilter{Status: "shipped"}); err != nil {
		t.Fatalf("list: %v", err)
	}
	if orders.lastFilter.Status != "" {
		t.Fatalf("invalid status should be dropped, repo saw %q", orders.lastFilter.Status)
	}

	if _, err := svc.List(context.Background(), ports.ListOrdersFilter{Status: "done"}); err != nil {
		t.Fatalf("list: %v", err)
	}
	if orders.lastFilter.Status != "done" {
		t.Fatalf("valid status should pass through, repo saw %q", orders.lastFilter.Status)
	}
}

func TestOrderService_List_TotalPages(t *testing.T) {
	orders := newStubOrderRepo()
	for i := 0; i < 25; i++ {
		orders.orders[fmt.Sprintf("o%d", i)] = &domain.Order{
			ID: fmt.Sprintf("o%d", i), Status: domain.OrderPending, CreatedAt: time.Now(),
		}
	}
	svc := NewOrderService(orders, newStubServiceRepo(), nil, &stubAudit{}, testLogger())

	page, err := svc.List(context.Background(), ports.ListOrdersFilter{Limit: 10})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Total != 25 {
		t.Fatalf("expected total 25, got %d", page.Total)
	}
	if page.TotalPages != 3 {
		t.Fatalf("expected 3 pages, got %d", page.TotalPages)
	}
}

func TestOrderService_List_PageBeyondEnd(t *testing.T) {
	orders := newStubOrderRepo()
	for i := 0; i < 25; i++ {
		orders.orders[fmt.Sprintf("o%d", i)] = &domain.Order{
			ID: fmt.Sprintf("o%d", i), Status: domain.OrderPending, CreatedAt: time.Now(),
		}
	}
	svc := NewOrderService(orders, newStubServiceRepo(), nil, &stubAudit{}, testLogger())

	page, err := svc.List(context.Background(), ports.ListOrdersFilter{Page: 9, Limit: 10})
	if err != nil {
		t.Fatalf("a page past the end must not error: %v", err)
	}
	if page.Items == nil || len(page.Items) != 0 {
		t.Fatalf("expected an empty items slice, got %v", page.Items)
	}
	if page.Total != 25 || page.TotalPages != 3 {
		t.Fatalf("counts must still reflect the full result set, got total=%d pages=%d", page.Total, page.TotalPages)
	}
	if page.Page != 9 {
		t.Fatalf("requested page must be echoed back, got %d", page.Page)
	}
}

// ---------------------------------------------------------------------------
// UpdateStatus / Delete
// ---------------------------------------------------------------------------

func TestOrderService_UpdateStatus_InvalidEnum(t *testing.T) {
	svc := NewOrderService(newStubOrderRepo(), newStubServiceRepo(), nil, &stubAudit{}, testLogger())

	_, err := svc.UpdateStatus(context.Background(), "admin_1", "o1", "shipped")
	if !errors.Is(err, domain.ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestOrderService_UpdateStatus_IdempotentAndAudited(t *testing.T) {
	orders := newStubOrderRepo()
	orders.orders["o1"] = &domain.Order{ID: "o1", Status: domain.OrderDone}
	audit := &stubAudit{}
	svc := NewOrderService(orders, newStubServiceRepo(), nil, audit, testLogger())

	updated, err := svc.UpdateStatus(context.Background(), "admin_1", "o1", "done")
	if err != nil {
		t.Fatalf("repeating the current status must succeed: %v", err)
	}
	if updated.Status != domain.OrderDone {
		t.Fatalf("unexpected status %s", updated.Status)
	}
	if len(audit.entries) != 1 || audit.entries[0] != "admin_1:update_order_status:order:o1" {
		t.Fatalf("unexpected audit trail: %v", audit.entries)
	}
}

func TestOrderService_Delete_NotFound(t *testing.T) {
	audit := &stubAudit{}
	svc := NewOrderService(newStubOrderRepo(), newStubServiceRepo(), nil, audit, testLogger())

	if err := svc.Delete(context.Background(), "admin_1", "missing"); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
	if len(audit.entries) != 0 {
		t.Fatalf("failed delete must not be audited")
	}
}
