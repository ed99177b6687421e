package repository

import (
	"context"
	"errors"

	"agriconnect/internal/domain/entity"
)

// ErrRatingNotFound is returned when the user has not rated the target yet.
var ErrRatingNotFound = errors.New("rating not found")

// RatingRepository persists product and farmer reviews. One review per (target, reviewer).
type RatingRepository interface {
	// UpsertProductRating inserts or replaces the reviewer's rating of a product.
	UpsertProductRating(ctx context.Context, rating *entity.ProductRating) error

	// FindProductRatings lists a product's ratings newest first.
	FindProductRatings(ctx context.Context, productID string) ([]*entity.ProductRating, error)

	// FindProductRating retrieves a single reviewer's rating.
	FindProductRating(ctx context.Context, productID, username string) (*entity.ProductRating, error)

	// UpsertFarmerRating inserts or replaces the reviewer's rating of a farmer.
	UpsertFarmerRating(ctx context.Context, rating *entity.FarmerRating) error

	// FindFarmerRatings lists a farmer's ratings newest first.
	FindFarmerRatings(ctx context.Context, farmerUsername string) ([]*entity.FarmerRating, error)
}
