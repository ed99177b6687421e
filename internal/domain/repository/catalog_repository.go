package repository

import (
	"context"
	"encoding/json"

	"agriconnect/internal/domain/entity"
)

// ProductCatalog reads and rewrites the JSON product files.
type ProductCatalog interface {
	// HomeProducts returns the home catalog. A missing file is an empty catalog.
	HomeProducts(ctx context.Context) ([]*entity.Product, error)

	// FarmProducts returns the read-only farm products catalog.
	FarmProducts(ctx context.Context) ([]*entity.Product, error)

	// Dealers returns the dealers document as stored.
	Dealers(ctx context.Context) (json.RawMessage, error)

	// UpdateHomeProducts applies fn to the home catalog and persists the result.
	// Concurrent updates are serialized; an error from fn leaves the file untouched.
	UpdateHomeProducts(ctx context.Context, fn func(products []*entity.Product) ([]*entity.Product, error)) error
}
