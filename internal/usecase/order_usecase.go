package usecase

import (
	"context"

	"agriconnect/internal/domain/entity"
	"agriconnect/internal/domain/service"
)

// PlaceOrderInput is a cash on delivery checkout from the cart page.
type PlaceOrderInput struct {
	Username       string
	Cart           []entity.CartItem
	IdempotencyKey string
}

// CreateOrderInput is an order created by the checkout widget before payment.
type CreateOrderInput struct {
	Username       string
	PaymentMethod  string
	Cart           []entity.CartItem
	IdempotencyKey string
}

// VerifyPaymentInput is the payment callback together with the cart being paid for.
type VerifyPaymentInput struct {
	Username       string
	Payment        service.PaymentVerification
	Cart           []entity.CartItem
	IdempotencyKey string
}

// OrderOutput describes a freshly created order.
type OrderOutput struct {
	Order *entity.Order
}

// VerifyPaymentOutput carries the created order, or nil when only the signature was checked.
type VerifyPaymentOutput struct {
	Order *entity.Order
}

// OrderUsecase defines checkout and order retrieval operations.
type OrderUsecase interface {
	PlaceOrder(ctx context.Context, input *PlaceOrderInput) (*OrderOutput, error)
	CreateOrder(ctx context.Context, input *CreateOrderInput) (*OrderOutput, error)
	// CreatePaymentOrder registers amount rupees with the payment gateway.
	CreatePaymentOrder(ctx context.Context, amount float64) (*service.GatewayOrder, error)
	VerifyPayment(ctx context.Context, input *VerifyPaymentInput) (*VerifyPaymentOutput, error)
	// Invoice returns an order with items. Only the owner and admins may read it.
	Invoice(ctx context.Context, principal *entity.Principal, orderID uint) (*entity.Order, error)
	// DeliveryQR renders the hand-over QR code for the owner of an order.
	DeliveryQR(ctx context.Context, principal *entity.Principal, orderID uint) ([]byte, error)
}
