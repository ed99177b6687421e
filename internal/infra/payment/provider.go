// Package payment holds the payment gateway integrations.
package payment

import (
	"log/slog"

	"agriconnect/config"
	"agriconnect/internal/domain/constants"
	"agriconnect/internal/domain/service"

	"github.com/pkg/errors"
)

// NewGateway selects the configured payment gateway.
func NewGateway(cfg *config.Config, logger *slog.Logger) (service.PaymentGateway, error) {
	pc := cfg.Payment
	if pc == nil || pc.Provider == "" || pc.Provider == constants.PaymentProviderDummy {
		logger.Info("Using dummy payment gateway")

		currency := ""
		if pc != nil {
			currency = pc.Currency
		}

		return NewDummyGateway(currency), nil
	}

	switch pc.Provider {
	case constants.PaymentProviderRazorpay:
		if pc.KeyID == "" || pc.KeySecret == "" {
			return nil, errors.New("razorpay key id and secret are required")
		}
		logger.Info("Using Razorpay payment gateway", slog.String("base_url", pc.BaseURL))

		return NewRazorpayGateway(pc.BaseURL, pc.KeyID, pc.KeySecret, pc.Currency), nil
	default:
		return nil, errors.Errorf("unknown payment provider: %s", pc.Provider)
	}
}
