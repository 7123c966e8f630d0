package ports

import (
	"context"
	"time"

	"github.com/opendev-studio/site-api/internal/core/domain"
)

// ListOrdersFilter carries all query parameters for listing orders.
// Zero values mean "no filter"; filters compose conjunctively except the
// OR inside the text search.
type ListOrdersFilter struct {
	Status    string    // optional: must be a member of the status enum, ignored otherwise
	ServiceID string    // optional: exact match on the service reference
	Search    string    // optional: case-insensitive substring over name, email, message
	DateFrom  time.Time // optional: createdAt >= DateFrom (inclusive)
	DateTo    time.Time // optional: createdAt <= DateTo (inclusive)
	Page      int       // 1-based
	Limit     int       // rows per page (capped at 100 by the service)
}

// OrderPage is the uniform paginated envelope body for order listings.
type OrderPage struct {
	Items      []*domain.Order `json:"items"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"totalPages"`
}

// CreateOrderInput carries the fields accepted when creating an order.
type CreateOrderInput struct {
	ServiceID string
	Name      string
	Email     string
	Message   string
	FileURL   string
}

// OrderRepository defines persistence operations for orders.
type OrderRepository interface {
	Create(ctx context.Context, o *domain.Order) (*domain.Order, error)
	FindByID(ctx context.Context, id string) (*domain.Order, error)
	// List returns a page of orders matching filter, sorted by createdAt
	// descending, and the total count of matches across all pages.
	List(ctx context.Context, f ListOrdersFilter) ([]*domain.Order, int64, error)
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error)
	Delete(ctx context.Context, id string) error
}

// OrderService defines use-case operations for orders.
type OrderService interface {
	// Create verifies the referenced service exists before writing, then
	// dispatches a best-effort notification.
	Create(ctx context.Context, in CreateOrderInput) (*domain.Order, error)
	Get(ctx context.Context, id string) (*domain.Order, error)
	List(ctx context.Context, f ListOrdersFilter) (*OrderPage, error)
	// UpdateStatus is idempotent: setting the current status again succeeds.
	UpdateStatus(ctx context.Context, actorID, id, status string) (*domain.Order, error)
	Delete(ctx context.Context, actorID, id string) error
}
