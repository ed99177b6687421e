package usecase

import (
	"context"

	"agriconnect/internal/domain/entity"
)

// AddProductInput lists a new farmer product. Price and Stock are pointers so zero can be told from missing.
type AddProductInput struct {
	Name        string
	Category    string
	Price       *float64
	Stock       *int
	Unit        string
	Image       string
	Description string
}

// UpdateProductInput changes only the provided fields.
type UpdateProductInput struct {
	Name        *string
	Category    *string
	Price       *float64
	Stock       *int
	Unit        *string
	Image       *string
	Description *string
}

// FarmerUsecase defines the seller dashboard operations. Every call is scoped to one farmer.
type FarmerUsecase interface {
	AddProduct(ctx context.Context, farmer string, input *AddProductInput) (*entity.Product, error)
	ListProducts(ctx context.Context, farmer string) ([]*entity.Product, error)
	UpdateProduct(ctx context.Context, farmer, productID string, input *UpdateProductInput) error
	DeleteProduct(ctx context.Context, farmer, productID string) error
	Notifications(ctx context.Context, farmer string) ([]*entity.FarmerNotification, error)
	MarkNotificationRead(ctx context.Context, farmer string, id uint) error
	ClearNotifications(ctx context.Context, farmer string) (int64, error)
}
