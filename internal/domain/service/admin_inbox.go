package service

import (
	"context"

	"agriconnect/internal/domain/entity"
)

// AdminInbox stores notifications for the field admin console. Ids increase
// monotonically for the lifetime of the store.
type AdminInbox interface {
	// Push assigns an id and stores the notification.
	Push(ctx context.Context, notification *entity.AdminNotification) error

	// List returns notifications newest first.
	List(ctx context.Context) ([]*entity.AdminNotification, error)
}
