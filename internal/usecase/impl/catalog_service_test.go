package impl

import (
	"context"
	"testing"
	"time"

	"agriconnect/internal/domain/entity"
	domainerrors "agriconnect/internal/domain/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogService_HomeProductsEnrichesFarmerProducts(t *testing.T) {
	env := newTestEnv(t)
	srv := env.catalogService()
	ctx := context.Background()
	env.seedUser(t, "ravi", entity.LoginTypeFarmer)

	products, err := srv.HomeProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 3)

	tomato := findProduct(products, "FP00000001")
	require.NotNil(t, tomato)
	assert.Equal(t, "Name of ravi", tomato.Farmer)
	assert.Equal(t, "560001", tomato.Pincode)
	assert.Equal(t, "12 Market Road", tomato.Location)

	raw := homeProduct(t, env, "FP00000001")
	assert.Empty(t, raw.Farmer, "enrichment never reaches the file")
}

func TestCatalogService_ProductPage(t *testing.T) {
	env := newTestEnv(t)
	srv := env.catalogService()
	ctx := context.Background()

	require.NoError(t, env.ratingRepo.UpsertProductRating(ctx, &entity.ProductRating{ProductID: "7", Username: "asha", Rating: 5, CreatedAt: time.Now().UTC()}))
	require.NoError(t, env.ratingRepo.UpsertProductRating(ctx, &entity.ProductRating{ProductID: "7", Username: "vik", Rating: 2, CreatedAt: time.Now().UTC()}))
	env.seedOrder(t, "asha", entity.OrderStatusCompleted, &entity.OrderItem{ProductID: "7", Quantity: 1, Price: 60})

	page, err := srv.ProductPage(ctx, "7", "asha")
	require.NoError(t, err)
	assert.Equal(t, "Rice", page.Product.Name)
	assert.Equal(t, 2, page.Summary.Count)
	assert.InDelta(t, 3.5, page.Summary.Average, 0.001)
	assert.True(t, page.HasPurchased)
	require.NotNil(t, page.UserRating)
	assert.Equal(t, 5, page.UserRating.Rating)

	anonymous, err := srv.ProductPage(ctx, "7", "")
	require.NoError(t, err)
	assert.False(t, anonymous.HasPurchased)
	assert.Nil(t, anonymous.UserRating)

	farm, err := srv.ProductPage(ctx, "F1", "vik")
	require.NoError(t, err)
	assert.Equal(t, "Mango", farm.Product.Name, "falls back to the farm catalog")
	assert.Nil(t, farm.UserRating)

	_, err = srv.ProductPage(ctx, "missing", "")
	assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)
}

func TestCatalogService_ProductsByCategory(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedUser(t, "ravi", entity.LoginTypeFarmer)

	grouped, err := env.catalogService().ProductsByCategory(ctx)
	require.NoError(t, err)

	require.Len(t, grouped, 1, "out of stock and store products are hidden")
	vegetables := grouped["Vegetables"]
	require.Len(t, vegetables, 1)
	assert.Equal(t, "FP00000001", vegetables[0].Product.ID)
	assert.Equal(t, "ravi", vegetables[0].FarmerUsername)
	assert.Equal(t, "Name of ravi", vegetables[0].FarmerName)
}

func TestCatalogService_FarmProductAndDealers(t *testing.T) {
	env := newTestEnv(t)
	srv := env.catalogService()
	ctx := context.Background()

	product, err := srv.FarmProduct(ctx, "F1")
	require.NoError(t, err)
	assert.Equal(t, "Mango", product.Name)

	_, err = srv.FarmProduct(ctx, "7")
	assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)

	dealers, err := srv.Dealers(ctx)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"name":"Agro Depot"}]`, string(dealers))
}
