package repository

import (
	"context"
	"errors"

	"agriconnect/internal/domain/entity"
)

// ErrSoilTestNotFound is returned when a booking id does not exist.
var ErrSoilTestNotFound = errors.New("soil test booking not found")

// SoilTestRepository persists soil test bookings.
type SoilTestRepository interface {
	Create(ctx context.Context, booking *entity.SoilTestBooking) error

	// FindByUsername lists a farmer's bookings newest first.
	FindByUsername(ctx context.Context, username string) ([]*entity.SoilTestBooking, error)

	// FindAll lists every booking newest first.
	FindAll(ctx context.Context) ([]*entity.SoilTestBooking, error)

	UpdateStatus(ctx context.Context, id uint, status entity.SoilTestStatus) error
}
