package usecase

import (
	"context"

	"agriconnect/internal/domain/entity"
)

// BookSoilTestInput requests a field soil test.
type BookSoilTestInput struct {
	FarmLocation  string
	FarmSize      string
	ContactNumber string
	PreferredDate string
	TestType      string
}

// SoilTestUsecase books soil tests.
type SoilTestUsecase interface {
	Book(ctx context.Context, username string, input *BookSoilTestInput) (*entity.SoilTestBooking, error)
}
