package impl

import (
	"context"
	"log/slog"
	"slices"
	"time"

	deliverycontext "agriconnect/internal/delivery/context"
	"agriconnect/internal/domain/entity"
	"agriconnect/internal/domain/lifecycle"
	"agriconnect/internal/domain/service"
)

// publishOrderEvent is called after commit. Failures are logged and never reach the caller.
func publishOrderEvent(ctx context.Context, publisher service.EventPublisher, logger *slog.Logger, eventType string, order *entity.Order, farmers []string) {
	if publisher == nil {
		return
	}

	event := &service.OrderEvent{
		RequestID:      deliverycontext.GetRequestIDFromContext(ctx),
		Type:           eventType,
		OrderID:        order.ID,
		OrderNumber:    order.OrderNumber,
		Username:       order.Username,
		Status:         string(order.Status),
		PaymentMethod:  order.PaymentMethod,
		TotalAmount:    order.TotalAmount,
		FarmerAccounts: farmers,
		OccurredAt:     time.Now().UTC().Format(time.RFC3339),
	}

	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), lifecycle.DefaultTimeout)
	defer cancel()

	if err := publisher.PublishOrderEvent(pubCtx, event); err != nil {
		logger.Error("Failed to publish order event",
			slog.String("type", eventType),
			slog.String("orderNumber", order.OrderNumber),
			slog.Any("error", err))
	}
}

func farmerAccounts(notifications []*entity.FarmerNotification) []string {
	accounts := make([]string, 0, len(notifications))
	for _, n := range notifications {
		if !slices.Contains(accounts, n.FarmerUsername) {
			accounts = append(accounts, n.FarmerUsername)
		}
	}

	return accounts
}
