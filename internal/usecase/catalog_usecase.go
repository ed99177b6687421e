package usecase

import (
	"context"
	"encoding/json"

	"agriconnect/internal/domain/entity"
)

// ProductPageOutput is a product with its reviews as seen by one viewer.
type ProductPageOutput struct {
	Product *entity.Product
	Summary entity.RatingSummary
	Ratings []*entity.ProductRating
	// HasPurchased and UserRating are only set for a logged-in viewer.
	HasPurchased bool
	UserRating   *entity.ProductRating
}

// CategoryProduct is a farmer product listed on the category page.
type CategoryProduct struct {
	Product        *entity.Product
	FarmerUsername string
	FarmerName     string
}

// CatalogUsecase defines read operations over the JSON catalogs.
type CatalogUsecase interface {
	// HomeProducts returns the home catalog enriched with seller details.
	HomeProducts(ctx context.Context) ([]*entity.Product, error)
	FarmProducts(ctx context.Context) ([]*entity.Product, error)
	FarmProduct(ctx context.Context, id string) (*entity.Product, error)
	// ProductPage looks the id up in the home catalog, then in the farm catalog. viewer may be empty.
	ProductPage(ctx context.Context, id, viewer string) (*ProductPageOutput, error)
	// ProductsByCategory groups in-stock farmer products by category.
	ProductsByCategory(ctx context.Context) (map[string][]*CategoryProduct, error)
	Dealers(ctx context.Context) (json.RawMessage, error)
}
