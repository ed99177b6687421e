package entity

import (
	"math"
	"time"
)

// Rating bounds
const (
	MinRating = 1
	MaxRating = 5
)

// IsValidRating checks the 1..5 star range.
func IsValidRating(r int) bool {
	return r >= MinRating && r <= MaxRating
}

// ProductRating is a customer's single review of a product.
type ProductRating struct {
	ID        uint
	ProductID string
	Username  string
	Rating    int
	Comment   string
	CreatedAt time.Time
}

// FarmerRating is a customer's single review of a farmer.
type FarmerRating struct {
	ID               uint
	FarmerUsername   string
	CustomerUsername string
	Rating           int
	Comment          string
	CreatedAt        time.Time
}

// RatingSummary aggregates reviews.
type RatingSummary struct {
	Average float64
	Count   int
}

// NewRatingSummary rounds the average to one decimal place.
func NewRatingSummary(sum float64, count int) RatingSummary {
	if count == 0 {
		return RatingSummary{}
	}

	return RatingSummary{
		Average: math.Round(sum/float64(count)*10) / 10,
		Count:   count,
	}
}
