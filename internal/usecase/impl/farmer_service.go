package impl

import (
	"context"
	"log/slog"
	"slices"
	"strings"

	deliverycontext "agriconnect/internal/delivery/context"
	"agriconnect/internal/domain/constants"
	"agriconnect/internal/domain/entity"
	domainerrors "agriconnect/internal/domain/errors"
	"agriconnect/internal/domain/repository"
	"agriconnect/internal/usecase"
	"agriconnect/internal/util"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	farmerProductPrefix = "FP"
	farmerProductDigits = 8
)

type farmerService struct {
	catalog          repository.ProductCatalog
	notificationRepo repository.FarmerNotificationRepository
	logger           *slog.Logger
}

// FarmerServiceParams holds dependencies for FarmerService, injected by Fx.
type FarmerServiceParams struct {
	fx.In

	Catalog          repository.ProductCatalog
	NotificationRepo repository.FarmerNotificationRepository
	Logger           *slog.Logger
}

// NewFarmerService is the constructor for farmerService.
func NewFarmerService(params FarmerServiceParams) usecase.FarmerUsecase {
	return &farmerService{
		catalog:          params.Catalog,
		notificationRepo: params.NotificationRepo,
		logger:           params.Logger,
	}
}

func (srv *farmerService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// AddProduct appends a farmer product to the home catalog.
func (srv *farmerService) AddProduct(ctx context.Context, farmer string, input *usecase.AddProductInput) (*entity.Product, error) {
	name := strings.TrimSpace(input.Name)
	category := strings.TrimSpace(input.Category)
	if name == "" || category == "" || input.Price == nil || input.Stock == nil {
		return nil, errors.Wrap(domainerrors.ErrProductFieldsRequired, "add product")
	}
	if *input.Price < 0 || *input.Stock < 0 {
		return nil, domainerrors.ErrValidationFailed.WithDetails("price and stock must not be negative")
	}

	product := &entity.Product{
		Name:           name,
		Category:       category,
		Price:          *input.Price,
		Stock:          *input.Stock,
		Unit:           strings.TrimSpace(input.Unit),
		Description:    strings.TrimSpace(input.Description),
		Image:          strings.TrimSpace(input.Image),
		SellerUsername: farmer,
		SellerType:     entity.SellerTypeFarmer,
		Location:       constants.DefaultProductLocation,
		CreatedAt:      util.FormatDisplayTime(util.NowIST()),
	}
	if product.Unit == "" {
		product.Unit = constants.DefaultProductUnit
	}
	if product.Image == "" {
		product.Image = constants.DefaultProductImage
	}

	err := srv.catalog.UpdateHomeProducts(ctx, func(products []*entity.Product) ([]*entity.Product, error) {
		for {
			id, err := util.PrefixedCode(farmerProductPrefix, farmerProductDigits)
			if err != nil {
				return nil, errors.Wrap(err, "failed to generate product id")
			}
			if findProduct(products, id) == nil {
				product.ID = id

				break
			}
		}

		return append(products, product), nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to add farmer product", slog.String("farmer", farmer), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to add product")
	}

	srv.log(ctx).Info("Farmer product added", slog.String("farmer", farmer), slog.String("productID", product.ID))

	return product, nil
}

func (srv *farmerService) ListProducts(ctx context.Context, farmer string) ([]*entity.Product, error) {
	products, err := srv.catalog.HomeProducts(ctx)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrCatalogUnavailable, err.Error())
	}

	own := make([]*entity.Product, 0)
	for _, p := range products {
		if ownedBy(p, farmer) {
			own = append(own, p)
		}
	}

	return own, nil
}

// UpdateProduct changes the provided fields of one of the farmer's products.
func (srv *farmerService) UpdateProduct(ctx context.Context, farmer, productID string, input *usecase.UpdateProductInput) error {
	if (input.Price != nil && *input.Price < 0) || (input.Stock != nil && *input.Stock < 0) {
		return domainerrors.ErrValidationFailed.WithDetails("price and stock must not be negative")
	}

	return srv.catalog.UpdateHomeProducts(ctx, func(products []*entity.Product) ([]*entity.Product, error) {
		idx := slices.IndexFunc(products, func(p *entity.Product) bool {
			return p.ID == productID && ownedBy(p, farmer)
		})
		if idx < 0 {
			return nil, errors.Wrap(domainerrors.ErrProductNotOwned, productID)
		}

		applyProductUpdate(products[idx], input)

		return products, nil
	})
}

func applyProductUpdate(p *entity.Product, input *usecase.UpdateProductInput) {
	if input.Name != nil {
		p.Name = *input.Name
	}
	if input.Category != nil {
		p.Category = *input.Category
	}
	if input.Price != nil {
		p.Price = *input.Price
	}
	if input.Stock != nil {
		p.Stock = *input.Stock
	}
	if input.Unit != nil {
		p.Unit = *input.Unit
	}
	if input.Image != nil {
		p.Image = *input.Image
	}
	if input.Description != nil {
		p.Description = *input.Description
	}
}

func (srv *farmerService) DeleteProduct(ctx context.Context, farmer, productID string) error {
	return srv.catalog.UpdateHomeProducts(ctx, func(products []*entity.Product) ([]*entity.Product, error) {
		idx := slices.IndexFunc(products, func(p *entity.Product) bool {
			return p.ID == productID && ownedBy(p, farmer)
		})
		if idx < 0 {
			return nil, errors.Wrap(domainerrors.ErrProductNotOwned, productID)
		}

		return slices.Delete(products, idx, idx+1), nil
	})
}

func (srv *farmerService) Notifications(ctx context.Context, farmer string) ([]*entity.FarmerNotification, error) {
	notifications, err := srv.notificationRepo.FindByFarmer(ctx, farmer)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load farmer notifications")
	}

	return notifications, nil
}

func (srv *farmerService) MarkNotificationRead(ctx context.Context, farmer string, id uint) error {
	err := srv.notificationRepo.MarkRead(ctx, id, farmer)
	if errors.Is(err, repository.ErrFarmerNotificationNotFound) {
		return errors.Wrap(domainerrors.ErrNotificationNotFound, "mark notification read")
	}
	if err != nil {
		return errors.Wrap(err, "failed to mark notification read")
	}

	return nil
}

func (srv *farmerService) ClearNotifications(ctx context.Context, farmer string) (int64, error) {
	deleted, err := srv.notificationRepo.DeleteByFarmer(ctx, farmer)
	if err != nil {
		return 0, errors.Wrap(err, "failed to clear farmer notifications")
	}

	return deleted, nil
}

func ownedBy(p *entity.Product, farmer string) bool {
	return p.SellerType == entity.SellerTypeFarmer && p.SellerUsername == farmer
}
