package service

import "context"

// GatewayOrder is the payment order created before checkout. Amount is in the
// smallest currency unit (paise).
type GatewayOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Status   string `json:"status"`
}

// PaymentVerification is the callback payload sent by the checkout widget.
type PaymentVerification struct {
	OrderID   string
	PaymentID string
	Signature string
}

// PaymentGateway creates payment orders and verifies completed payments.
type PaymentGateway interface {
	// CreateOrder registers an order for amount paise.
	CreateOrder(ctx context.Context, amount int64) (*GatewayOrder, error)

	// VerifyPayment reports whether the callback payload is authentic.
	VerifyPayment(ctx context.Context, payload PaymentVerification) (bool, error)
}
