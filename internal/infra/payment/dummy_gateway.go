package payment

import (
	"context"

	"agriconnect/internal/domain/service"
	"agriconnect/internal/util"
)

const defaultCurrency = "INR"

// dummyGateway accepts every payment. Used for demos and the agriconnect edition.
type dummyGateway struct {
	currency string
}

// NewDummyGateway creates a gateway that never talks to a provider.
func NewDummyGateway(currency string) service.PaymentGateway {
	if currency == "" {
		currency = defaultCurrency
	}

	return &dummyGateway{currency: currency}
}

func (g *dummyGateway) CreateOrder(_ context.Context, amount int64) (*service.GatewayOrder, error) {
	id, err := util.PrefixedCode("order_DUMMY", 10)
	if err != nil {
		return nil, err
	}

	return &service.GatewayOrder{
		ID:       id,
		Amount:   amount,
		Currency: g.currency,
		Status:   "created",
	}, nil
}

func (g *dummyGateway) VerifyPayment(_ context.Context, _ service.PaymentVerification) (bool, error) {
	return true, nil
}
