package repository

import (
	"context"
	"errors"

	"agriconnect/internal/domain/entity"
)

// ErrFarmerNotificationNotFound is returned when a notification is missing or belongs to another farmer.
var ErrFarmerNotificationNotFound = errors.New("farmer notification not found")

// FarmerNotificationRepository persists the per-farmer order inbox.
type FarmerNotificationRepository interface {
	// CreateBatch inserts all notifications in one statement.
	CreateBatch(ctx context.Context, notifications []*entity.FarmerNotification) error

	// FindByFarmer lists a farmer's notifications newest first.
	FindByFarmer(ctx context.Context, farmerUsername string) ([]*entity.FarmerNotification, error)

	// FindAll lists every notification newest first.
	FindAll(ctx context.Context) ([]*entity.FarmerNotification, error)

	// MarkRead flags one of the farmer's notifications as read.
	MarkRead(ctx context.Context, id uint, farmerUsername string) error

	// DeleteByFarmer clears a farmer's inbox and returns how many rows were removed.
	DeleteByFarmer(ctx context.Context, farmerUsername string) (int64, error)

	// UpdateStatusByOrder mirrors an order status onto its notifications.
	UpdateStatusByOrder(ctx context.Context, orderID uint, status entity.OrderStatus) error

	// DeleteByOrder removes the notifications of a fulfilled order.
	DeleteByOrder(ctx context.Context, orderID uint) error
}
