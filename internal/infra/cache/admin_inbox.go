package cache

import (
	"context"
	"encoding/json"
	"slices"
	"sync"

	"agriconnect/internal/domain/entity"
	"agriconnect/internal/domain/service"
	"agriconnect/internal/errors"

	"github.com/go-redis/redis/v8"
)

const (
	inboxListKey = keyPrefix + "admin_notifications"
	inboxSeqKey  = keyPrefix + "admin_notifications:seq"
)

// NewAdminInbox picks the Redis inbox when a client is available.
func NewAdminInbox(client *redis.Client) service.AdminInbox {
	if client == nil {
		return NewMemoryAdminInbox()
	}

	return &redisAdminInbox{client: client}
}

type memoryAdminInbox struct {
	mu      sync.Mutex
	lastID  int64
	entries []*entity.AdminNotification
}

// NewMemoryAdminInbox keeps notifications for the lifetime of the process.
func NewMemoryAdminInbox() service.AdminInbox {
	return &memoryAdminInbox{}
}

func (m *memoryAdminInbox) Push(_ context.Context, notification *entity.AdminNotification) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lastID++
	notification.ID = m.lastID

	stored := *notification
	m.entries = append(m.entries, &stored)

	return nil
}

func (m *memoryAdminInbox) List(_ context.Context) ([]*entity.AdminNotification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]*entity.AdminNotification, 0, len(m.entries))
	for _, n := range slices.Backward(m.entries) {
		cp := *n
		out = append(out, &cp)
	}

	return out, nil
}

type redisAdminInbox struct {
	client *redis.Client
}

func (r *redisAdminInbox) Push(ctx context.Context, notification *entity.AdminNotification) error {
	id, err := r.client.Incr(ctx, inboxSeqKey).Result()
	if err != nil {
		return errors.Wrap(err, "failed to allocate notification id")
	}
	notification.ID = id

	data, err := json.Marshal(notification)
	if err != nil {
		return errors.WithStack(err)
	}

	// LPUSH keeps the list newest first.
	if err := r.client.LPush(ctx, inboxListKey, data).Err(); err != nil {
		return errors.Wrap(err, "failed to push admin notification")
	}

	return nil
}

func (r *redisAdminInbox) List(ctx context.Context) ([]*entity.AdminNotification, error) {
	raw, err := r.client.LRange(ctx, inboxListKey, 0, -1).Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to list admin notifications")
	}

	out := make([]*entity.AdminNotification, 0, len(raw))
	for _, item := range raw {
		var n entity.AdminNotification
		if err := json.Unmarshal([]byte(item), &n); err != nil {
			return nil, errors.Wrap(err, "failed to decode admin notification")
		}
		out = append(out, &n)
	}

	return out, nil
}
