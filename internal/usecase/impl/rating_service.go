package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	deliverycontext "agriconnect/internal/delivery/context"
	"agriconnect/internal/domain/entity"
	domainerrors "agriconnect/internal/domain/errors"
	"agriconnect/internal/domain/repository"
	"agriconnect/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type ratingService struct {
	ratingRepo repository.RatingRepository
	orderRepo  repository.OrderRepository
	userRepo   repository.UserRepository
	catalog    repository.ProductCatalog
	logger     *slog.Logger
}

// RatingServiceParams holds dependencies for RatingService, injected by Fx.
type RatingServiceParams struct {
	fx.In

	RatingRepo repository.RatingRepository
	OrderRepo  repository.OrderRepository
	UserRepo   repository.UserRepository
	Catalog    repository.ProductCatalog
	Logger     *slog.Logger
}

// NewRatingService is the constructor for ratingService.
func NewRatingService(params RatingServiceParams) usecase.RatingUsecase {
	return &ratingService{
		ratingRepo: params.RatingRepo,
		orderRepo:  params.OrderRepo,
		userRepo:   params.UserRepo,
		catalog:    params.Catalog,
		logger:     params.Logger,
	}
}

func (srv *ratingService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// SubmitProductRating stores or replaces the user's review of a purchased product.
func (srv *ratingService) SubmitProductRating(ctx context.Context, username string, input *usecase.SubmitProductRatingInput) error {
	productID := strings.TrimSpace(input.ProductID)
	if productID == "" || input.Rating == 0 {
		return domainerrors.ErrValidationFailed.WithDetails("Product ID and rating required")
	}
	if !entity.IsValidRating(input.Rating) {
		return errors.Wrap(domainerrors.ErrInvalidRating, "submit product rating")
	}

	purchased, err := srv.orderRepo.HasCompletedPurchase(ctx, username, []string{productID})
	if err != nil {
		return errors.Wrap(err, "failed to check purchase history")
	}
	if !purchased {
		srv.log(ctx).Warn("Rating without purchase rejected", slog.String("username", username), slog.String("productID", productID))

		return errors.Wrap(domainerrors.ErrPurchaseRequired, productID)
	}

	err = srv.ratingRepo.UpsertProductRating(ctx, &entity.ProductRating{
		ProductID: productID,
		Username:  username,
		Rating:    input.Rating,
		Comment:   strings.TrimSpace(input.Comment),
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return errors.Wrap(err, "failed to save product rating")
	}

	return nil
}

// SubmitFarmerRating requires a completed order containing one of the farmer's products.
func (srv *ratingService) SubmitFarmerRating(ctx context.Context, customer string, input *usecase.SubmitFarmerRatingInput) error {
	if !entity.IsValidRating(input.Rating) {
		return errors.Wrap(domainerrors.ErrInvalidRating, "submit farmer rating")
	}

	farmer, err := srv.userRepo.FindDetails(ctx, input.FarmerUsername)
	if errors.Is(err, repository.ErrUserDetailsNotFound) || (err == nil && !farmer.IsFarmer()) {
		return errors.Wrap(domainerrors.ErrUserNotFound, input.FarmerUsername)
	}
	if err != nil {
		return errors.Wrap(err, "failed to load farmer")
	}

	products, err := srv.catalog.HomeProducts(ctx)
	if err != nil {
		return errors.Wrap(domainerrors.ErrCatalogUnavailable, err.Error())
	}
	var productIDs []string
	for _, p := range products {
		if ownedBy(p, farmer.Username) {
			productIDs = append(productIDs, p.ID)
		}
	}

	purchased := false
	if len(productIDs) > 0 {
		purchased, err = srv.orderRepo.HasCompletedPurchase(ctx, customer, productIDs)
		if err != nil {
			return errors.Wrap(err, "failed to check purchase history")
		}
	}
	if !purchased {
		return errors.Wrap(domainerrors.ErrPurchaseRequired, farmer.Username)
	}

	err = srv.ratingRepo.UpsertFarmerRating(ctx, &entity.FarmerRating{
		FarmerUsername:   farmer.Username,
		CustomerUsername: customer,
		Rating:           input.Rating,
		Comment:          strings.TrimSpace(input.Comment),
		CreatedAt:        time.Now().UTC(),
	})
	if err != nil {
		return errors.Wrap(err, "failed to save farmer rating")
	}

	return nil
}

func (srv *ratingService) FarmerRating(ctx context.Context, farmer string) (*usecase.FarmerRatingOutput, error) {
	ratings, err := srv.ratingRepo.FindFarmerRatings(ctx, farmer)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load farmer ratings")
	}

	var sum float64
	for _, r := range ratings {
		sum += float64(r.Rating)
	}

	return &usecase.FarmerRatingOutput{
		Summary: entity.NewRatingSummary(sum, len(ratings)),
		Ratings: ratings,
	}, nil
}
