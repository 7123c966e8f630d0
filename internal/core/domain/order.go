package domain

import "time"

// OrderStatus is the lifecycle state of an order. Any status may be set from
// any other; the enum itself is the only constraint.
type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderInProgress OrderStatus = "in_progress"
	OrderDone       OrderStatus = "done"
	OrderCancelled  OrderStatus = "cancelled"
)

// ValidOrderStatus reports whether s is a member of the status enum.
func ValidOrderStatus(s string) bool {
	switch OrderStatus(s) {
	case OrderPending, OrderInProgress, OrderDone, OrderCancelled:
		return true
	}
	return false
}

// Order is a customer request for a service. Status is the only field that
// can change after creation.
type Order struct {
	ID        string      `json:"id"`
	ServiceID string      `json:"serviceId"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Message   string      `json:"message"`
	FileURL   string      `json:"fileUrl,omitempty"`
	Status    OrderStatus `json:"status"`
	CreatedAt time.Time   `json:"createdAt"`
}
