package service

import (
	"context"
)

// OrderEvent is published after an order is placed or changes status.
type OrderEvent struct {
	RequestID      string   `json:"request_id,omitempty"` // For distributed tracing
	Type           string   `json:"type"`
	OrderID        uint     `json:"order_id"`
	OrderNumber    string   `json:"order_number"`
	Username       string   `json:"username"`
	Status         string   `json:"status"`
	PaymentMethod  string   `json:"payment_method"`
	TotalAmount    float64  `json:"total_amount"`
	FarmerAccounts []string `json:"farmer_accounts,omitempty"`
	OccurredAt     string   `json:"occurred_at"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishOrderEvent publishes an order event for async consumers
	PublishOrderEvent(ctx context.Context, event *OrderEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
