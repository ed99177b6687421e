package repository

import (
	"context"
	"errors"

	"agriconnect/internal/domain/entity"
)

// ErrOrderNotFound is returned when an order id does not exist.
var ErrOrderNotFound = errors.New("order not found")

// ErrOrderFinalized is returned when a status update meets a completed or cancelled order.
var ErrOrderFinalized = errors.New("order is finalized")

// OrderRepository persists orders and their items.
type OrderRepository interface {
	// Create inserts the order and all of its items, filling generated ids.
	Create(ctx context.Context, order *entity.Order) error

	// FindByID retrieves an order with its items.
	FindByID(ctx context.Context, id uint) (*entity.Order, error)

	// FindByUsername lists a customer's orders newest first with item counts.
	FindByUsername(ctx context.Context, username string) ([]*entity.OrderSummary, error)

	// FindAll lists every order newest first, without items.
	FindAll(ctx context.Context) ([]*entity.Order, error)

	// FindItems lists the items of one order.
	FindItems(ctx context.Context, orderID uint) ([]*entity.OrderItem, error)

	// UpdateStatus sets the status of an order that is not yet completed or cancelled.
	// The check and the write are one statement, so concurrent updates cannot both
	// move an order out of an open state.
	UpdateStatus(ctx context.Context, id uint, status entity.OrderStatus) error

	// HasCompletedPurchase reports whether username has a completed order containing any of productIDs.
	HasCompletedPurchase(ctx context.Context, username string, productIDs []string) (bool, error)
}
