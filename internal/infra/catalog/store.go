// Package catalog keeps the product catalogs in flat JSON files.
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"agriconnect/config"
	"agriconnect/internal/domain/entity"
	"agriconnect/internal/domain/repository"
	"agriconnect/internal/errors"
)

const wrappedProductsKey = "products"

// document is a decoded product file together with its original shape.
type document struct {
	products []*entity.Product
	// wrapper holds the other top level keys of a {"products": [...]} file; nil for a bare array.
	wrapper map[string]json.RawMessage
}

type fileStore struct {
	mu sync.Mutex

	homePath    string
	farmPath    string
	dealersPath string
}

// NewStore creates the catalog backed by the configured JSON files.
func NewStore(cfg *config.Config) repository.ProductCatalog {
	return &fileStore{
		homePath:    cfg.Catalog.ProductsPath,
		farmPath:    cfg.Catalog.FarmProductsPath,
		dealersPath: cfg.Catalog.DealersPath,
	}
}

func (s *fileStore) HomeProducts(ctx context.Context) ([]*entity.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.WithStack(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := readDocument(s.homePath)
	if err != nil {
		return nil, err
	}

	return doc.products, nil
}

func (s *fileStore) FarmProducts(ctx context.Context) ([]*entity.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.WithStack(err)
	}

	doc, err := readDocument(s.farmPath)
	if err != nil {
		return nil, err
	}

	return doc.products, nil
}

func (s *fileStore) Dealers(ctx context.Context) (json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.WithStack(err)
	}

	data, err := os.ReadFile(s.dealersPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return json.RawMessage("[]"), nil
		}

		return nil, errors.Wrapf(err, "failed to read %s", s.dealersPath)
	}
	if !json.Valid(data) {
		return nil, errors.Errorf("%s is not valid JSON", s.dealersPath)
	}

	return json.RawMessage(bytes.TrimSpace(data)), nil
}

func (s *fileStore) UpdateHomeProducts(ctx context.Context, fn func([]*entity.Product) ([]*entity.Product, error)) error {
	if err := ctx.Err(); err != nil {
		return errors.WithStack(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := readDocument(s.homePath)
	if err != nil {
		return err
	}

	updated, err := fn(doc.products)
	if err != nil {
		return err
	}
	doc.products = updated

	return writeDocument(s.homePath, doc)
}

func readDocument(path string) (*document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &document{products: []*entity.Product{}}, nil
		}

		return nil, errors.Wrapf(err, "failed to read %s", path)
	}

	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return &document{products: []*entity.Product{}}, nil
	}

	doc := &document{}
	if data[0] == '{' {
		if err := json.Unmarshal(data, &doc.wrapper); err != nil {
			return nil, errors.Wrapf(err, "failed to decode %s", path)
		}
		raw, ok := doc.wrapper[wrappedProductsKey]
		if ok {
			if err := json.Unmarshal(raw, &doc.products); err != nil {
				return nil, errors.Wrapf(err, "failed to decode products in %s", path)
			}
		}
	} else if err := json.Unmarshal(data, &doc.products); err != nil {
		return nil, errors.Wrapf(err, "failed to decode %s", path)
	}

	if doc.products == nil {
		doc.products = []*entity.Product{}
	}

	return doc, nil
}

func writeDocument(path string, doc *document) error {
	var payload any = doc.products
	if doc.wrapper != nil {
		raw, err := json.Marshal(doc.products)
		if err != nil {
			return errors.Wrap(err, "failed to encode products")
		}
		doc.wrapper[wrappedProductsKey] = raw
		payload = doc.wrapper
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to encode catalog")
	}

	return writeFileAtomic(path, data)
}

// writeFileAtomic replaces path with data via a temp file in the same directory.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.Wrap(err, "failed to create temp catalog file")
	}
	tmpName := tmp.Name()

	discard := func() error {
		return errors.Join(tmp.Close(), os.Remove(tmpName))
	}
	remove := func() error { return os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		return errors.WrapCleanup(err, "failed to write temp catalog file", discard)
	}
	if err := tmp.Sync(); err != nil {
		return errors.WrapCleanup(err, "failed to sync temp catalog file", discard)
	}
	if err := tmp.Close(); err != nil {
		return errors.WrapCleanup(err, "failed to close temp catalog file", remove)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return errors.WrapCleanup(err, "failed to replace catalog file", remove)
	}

	return nil
}
