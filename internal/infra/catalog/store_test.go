package catalog

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"agriconnect/config"
	"agriconnect/internal/domain/entity"
	"agriconnect/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, home string) (*fileStore, string) {
	t.Helper()

	dir := t.TempDir()
	homePath := filepath.Join(dir, "products.json")
	if home != "" {
		require.NoError(t, os.WriteFile(homePath, []byte(home), 0o600))
	}

	cfg := &config.Config{Catalog: &config.CatalogConfig{
		ProductsPath:     homePath,
		FarmProductsPath: filepath.Join(dir, "farm_product.json"),
		DealersPath:      filepath.Join(dir, "dealers.json"),
	}}

	return NewStore(cfg).(*fileStore), homePath
}

func TestMissingFilesAreEmpty(t *testing.T) {
	store, _ := newTestStore(t, "")
	ctx := context.Background()

	home, err := store.HomeProducts(ctx)
	require.NoError(t, err)
	assert.Empty(t, home)

	farm, err := store.FarmProducts(ctx)
	require.NoError(t, err)
	assert.Empty(t, farm)

	dealers, err := store.Dealers(ctx)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(dealers))
}

func TestUpdateKeepsBareArrayAndUnknownFields(t *testing.T) {
	store, path := newTestStore(t, `[{"id": 1, "name": "Tomato", "price": 30, "stock": 10, "organic": true}]`)
	ctx := context.Background()

	err := store.UpdateHomeProducts(ctx, func(products []*entity.Product) ([]*entity.Product, error) {
		products[0].Stock = 7
		return products, nil
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, float64(1), decoded[0]["id"])
	assert.Equal(t, float64(7), decoded[0]["stock"])
	assert.Equal(t, true, decoded[0]["organic"])
}

func TestUpdateLeavesOtherProductsNumbersAlone(t *testing.T) {
	store, path := newTestStore(t, `[{"id":"p1","price":"N/A","stock":2.5},{"id":"p2","name":"b"},{"id":"p3","price":10,"stock":4}]`)
	ctx := context.Background()

	err := store.UpdateHomeProducts(ctx, func(products []*entity.Product) ([]*entity.Product, error) {
		products[2].Stock = 3
		return products, nil
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded []map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded, 3)
	assert.JSONEq(t, `"N/A"`, string(decoded[0]["price"]))
	assert.JSONEq(t, `2.5`, string(decoded[0]["stock"]))
	assert.NotContains(t, decoded[1], "price")
	assert.NotContains(t, decoded[1], "stock")
	assert.JSONEq(t, `10`, string(decoded[2]["price"]))
	assert.JSONEq(t, `3`, string(decoded[2]["stock"]))
}

func TestUpdateKeepsWrappedShape(t *testing.T) {
	store, path := newTestStore(t, `{"version": 2, "products": [{"id": "FP12345678", "name": "Mango", "price": 50, "stock": 3}]}`)
	ctx := context.Background()

	err := store.UpdateHomeProducts(ctx, func(products []*entity.Product) ([]*entity.Product, error) {
		return append(products, &entity.Product{ID: "FP00000001", Name: "Guava", Price: 20, Stock: 5}), nil
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.JSONEq(t, `2`, string(decoded["version"]))

	products, err := store.HomeProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "Guava", products[1].Name)
}

func TestUpdateErrorLeavesFileUntouched(t *testing.T) {
	original := `[{"id": "1", "name": "Rice", "price": 60, "stock": 2}]`
	store, path := newTestStore(t, original)

	err := store.UpdateHomeProducts(context.Background(), func([]*entity.Product) ([]*entity.Product, error) {
		return nil, errors.New("boom")
	})
	require.Error(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, original, string(data))
}

func TestConcurrentUpdatesAreSerialized(t *testing.T) {
	store, _ := newTestStore(t, `[{"id": "1", "name": "Rice", "price": 60, "stock": 100}]`)
	ctx := context.Background()

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.UpdateHomeProducts(ctx, func(products []*entity.Product) ([]*entity.Product, error) {
				products[0].Stock--
				return products, nil
			})
		}()
	}
	wg.Wait()

	products, err := store.HomeProducts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 80, products[0].Stock)
}

func TestDealersRejectsInvalidJSON(t *testing.T) {
	store, _ := newTestStore(t, "")
	require.NoError(t, os.WriteFile(store.dealersPath, []byte(`{"dealers": [`), 0o600))

	_, err := store.Dealers(context.Background())
	assert.Error(t, err)
}

func TestWriteFileAtomicRemovesTempOnFailure(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "products.json")
	require.NoError(t, os.Mkdir(target, 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(target, "keep"), []byte("x"), 0o600))

	err := writeFileAtomic(target, []byte("[]"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to replace catalog file")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "products.json", entries[0].Name())
}
