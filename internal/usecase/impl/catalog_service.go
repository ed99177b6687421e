package impl

import (
	"context"
	"encoding/json"
	"log/slog"

	deliverycontext "agriconnect/internal/delivery/context"
	"agriconnect/internal/domain/entity"
	domainerrors "agriconnect/internal/domain/errors"
	"agriconnect/internal/domain/repository"
	"agriconnect/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type catalogService struct {
	catalog    repository.ProductCatalog
	userRepo   repository.UserRepository
	orderRepo  repository.OrderRepository
	ratingRepo repository.RatingRepository
	logger     *slog.Logger
}

// CatalogServiceParams holds dependencies for CatalogService, injected by Fx.
type CatalogServiceParams struct {
	fx.In

	Catalog    repository.ProductCatalog
	UserRepo   repository.UserRepository
	OrderRepo  repository.OrderRepository
	RatingRepo repository.RatingRepository
	Logger     *slog.Logger
}

// NewCatalogService is the constructor for catalogService.
func NewCatalogService(params CatalogServiceParams) usecase.CatalogUsecase {
	return &catalogService{
		catalog:    params.Catalog,
		userRepo:   params.UserRepo,
		orderRepo:  params.OrderRepo,
		ratingRepo: params.RatingRepo,
		logger:     params.Logger,
	}
}

func (srv *catalogService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// HomeProducts fills farmer name, pincode and location from the seller's details.
func (srv *catalogService) HomeProducts(ctx context.Context) ([]*entity.Product, error) {
	products, err := srv.catalog.HomeProducts(ctx)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrCatalogUnavailable, err.Error())
	}

	sellers, err := srv.sellerDetails(ctx, products)
	if err != nil {
		return nil, err
	}

	enriched := make([]*entity.Product, 0, len(products))
	for _, product := range products {
		p := product.Clone()
		if seller, ok := sellers[p.SellerUsername]; ok {
			if p.Farmer == "" {
				p.Farmer = seller.DisplayName()
			}
			p.Pincode = seller.Pincode
			if p.Location == "" && seller.Address != "" {
				p.Location = seller.Address
			}
		}
		enriched = append(enriched, p)
	}

	return enriched, nil
}

// sellerDetails loads the details of every seller referenced by products in one query.
func (srv *catalogService) sellerDetails(ctx context.Context, products []*entity.Product) (map[string]*entity.UserDetails, error) {
	seen := make(map[string]bool)
	usernames := make([]string, 0)
	for _, p := range products {
		if p.SellerUsername == "" || seen[p.SellerUsername] {
			continue
		}
		seen[p.SellerUsername] = true
		usernames = append(usernames, p.SellerUsername)
	}
	if len(usernames) == 0 {
		return map[string]*entity.UserDetails{}, nil
	}

	details, err := srv.userRepo.FindDetailsByUsernames(ctx, usernames)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load seller details")
	}

	return details, nil
}

func (srv *catalogService) FarmProducts(ctx context.Context) ([]*entity.Product, error) {
	products, err := srv.catalog.FarmProducts(ctx)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrCatalogUnavailable, err.Error())
	}

	return products, nil
}

func (srv *catalogService) FarmProduct(ctx context.Context, id string) (*entity.Product, error) {
	products, err := srv.FarmProducts(ctx)
	if err != nil {
		return nil, err
	}

	if p := findProduct(products, id); p != nil {
		return p, nil
	}

	return nil, errors.Wrap(domainerrors.ErrProductNotFound, id)
}

// ProductPage resolves a product and its reviews for a viewer.
func (srv *catalogService) ProductPage(ctx context.Context, id, viewer string) (*usecase.ProductPageOutput, error) {
	product, err := srv.lookupAnyCatalog(ctx, id)
	if err != nil {
		return nil, err
	}

	ratings, err := srv.ratingRepo.FindProductRatings(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load product ratings")
	}

	var sum float64
	for _, r := range ratings {
		sum += float64(r.Rating)
	}

	out := &usecase.ProductPageOutput{
		Product: product,
		Summary: entity.NewRatingSummary(sum, len(ratings)),
		Ratings: ratings,
	}
	if viewer == "" {
		return out, nil
	}

	out.HasPurchased, err = srv.orderRepo.HasCompletedPurchase(ctx, viewer, []string{id})
	if err != nil {
		return nil, errors.Wrap(err, "failed to check purchase history")
	}

	own, err := srv.ratingRepo.FindProductRating(ctx, id, viewer)
	switch {
	case err == nil:
		out.UserRating = own
	case !errors.Is(err, repository.ErrRatingNotFound):
		return nil, errors.Wrap(err, "failed to load viewer rating")
	}

	return out, nil
}

func (srv *catalogService) lookupAnyCatalog(ctx context.Context, id string) (*entity.Product, error) {
	home, err := srv.catalog.HomeProducts(ctx)
	if err != nil {
		srv.log(ctx).Warn("Home catalog unreadable, falling back to farm catalog", slog.Any("error", err))
	} else if p := findProduct(home, id); p != nil {
		return p, nil
	}

	return srv.FarmProduct(ctx, id)
}

// ProductsByCategory groups in-stock farmer products by category.
func (srv *catalogService) ProductsByCategory(ctx context.Context) (map[string][]*usecase.CategoryProduct, error) {
	products, err := srv.catalog.HomeProducts(ctx)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrCatalogUnavailable, err.Error())
	}

	listed := make([]*entity.Product, 0, len(products))
	for _, p := range products {
		if p.IsFarmerProduct() && p.Stock > 0 {
			listed = append(listed, p)
		}
	}

	sellers, err := srv.sellerDetails(ctx, listed)
	if err != nil {
		return nil, err
	}

	grouped := make(map[string][]*usecase.CategoryProduct)
	for _, p := range listed {
		name := p.SellerUsername
		if seller, ok := sellers[p.SellerUsername]; ok && seller.Name != "" {
			name = seller.Name
		}
		grouped[p.Category] = append(grouped[p.Category], &usecase.CategoryProduct{
			Product:        p,
			FarmerUsername: p.SellerUsername,
			FarmerName:     name,
		})
	}

	return grouped, nil
}

func (srv *catalogService) Dealers(ctx context.Context) (json.RawMessage, error) {
	dealers, err := srv.catalog.Dealers(ctx)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrCatalogUnavailable, err.Error())
	}

	return dealers, nil
}

func findProduct(products []*entity.Product, id string) *entity.Product {
	for _, p := range products {
		if p.ID == id {
			return p
		}
	}

	return nil
}
