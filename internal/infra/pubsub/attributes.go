package pubsub

import (
	"strconv"

	"agriconnect/internal/domain/service"
)

// eventAttributes are attached to every transport that supports headers, for filtering and tracing.
func eventAttributes(event *service.OrderEvent) map[string]string {
	attributes := map[string]string{
		"type":         event.Type,
		"order_id":     strconv.FormatUint(uint64(event.OrderID), 10),
		"order_number": event.OrderNumber,
	}
	if event.RequestID != "" {
		attributes["request_id"] = event.RequestID
	}

	return attributes
}
