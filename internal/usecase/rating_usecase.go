package usecase

import (
	"context"

	"agriconnect/internal/domain/entity"
)

// SubmitProductRatingInput reviews a product.
type SubmitProductRatingInput struct {
	ProductID string
	Rating    int
	Comment   string
}

// SubmitFarmerRatingInput reviews a farmer.
type SubmitFarmerRatingInput struct {
	FarmerUsername string
	Rating         int
	Comment        string
}

// FarmerRatingOutput aggregates a farmer's reviews.
type FarmerRatingOutput struct {
	Summary entity.RatingSummary
	Ratings []*entity.FarmerRating
}

// RatingUsecase defines review operations. Reviews require a completed purchase.
type RatingUsecase interface {
	SubmitProductRating(ctx context.Context, username string, input *SubmitProductRatingInput) error
	SubmitFarmerRating(ctx context.Context, customer string, input *SubmitFarmerRatingInput) error
	FarmerRating(ctx context.Context, farmer string) (*FarmerRatingOutput, error)
}
