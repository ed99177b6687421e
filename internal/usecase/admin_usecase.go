package usecase

import (
	"context"
	"encoding/json"

	"agriconnect/internal/domain/entity"
)

// PincodeGroup is the orders shipped to one pincode.
type PincodeGroup struct {
	Pincode string
	Orders  []*entity.Order
}

// DashboardOutput is the admin console landing data.
type DashboardOutput struct {
	// Groups keep the order of first appearance in the newest-first listing.
	Groups       []*PincodeGroup
	PendingCount int
	TotalOrders  int
	// Notifications and SoilTests are only filled for field admins.
	Notifications []*entity.AdminNotification
	SoilTests     []*entity.SoilTestBooking
	Dealers       json.RawMessage
}

// UpdateOrderStatusInput moves an order along its lifecycle.
type UpdateOrderStatusInput struct {
	OrderID uint
	Status  entity.OrderStatus
}

// UpdateOrderStatusOutput reports the applied status.
type UpdateOrderStatusOutput struct {
	Status        entity.OrderStatus
	RefundMessage string
}

// AdminUsecase defines the order console operations.
type AdminUsecase interface {
	Dashboard(ctx context.Context, principal *entity.Principal) (*DashboardOutput, error)
	ListOrders(ctx context.Context) ([]*entity.Order, error)
	OrderItems(ctx context.Context, orderID uint) ([]*entity.OrderItem, error)
	UpdateOrderStatus(ctx context.Context, input *UpdateOrderStatusInput) (*UpdateOrderStatusOutput, error)
	UpdateSoilTestStatus(ctx context.Context, id uint, status entity.SoilTestStatus) error
	Notifications(ctx context.Context) ([]*entity.AdminNotification, error)
}
