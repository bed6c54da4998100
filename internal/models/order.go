package models

import "time"

// Order statuses
const (
	OrderPending    = "pending"
	OrderProcessing = "processing"
	OrderShipped    = "shipped"
	OrderDelivered  = "delivered"
	OrderCancelled  = "cancelled"
)

// ValidOrderStatus reports whether s is a known order status
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderPending, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

// Order represents a purchase placed by a user
type Order struct {
	ID        int64        `json:"id"`
	UserID    int64        `json:"userId"`
	Total     float64      `json:"total"`
	Status    string       `json:"status"`
	User      *UserSummary `json:"user,omitempty"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

// OrderInput carries client supplied order fields; nil means the field was not sent
type OrderInput struct {
	Total  *float64 `json:"total"`
	Status *string  `json:"status"`
}
