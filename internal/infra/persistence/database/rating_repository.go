package database

import (
	"context"

	"agriconnect/internal/domain/entity"
	domainerrors "agriconnect/internal/domain/errors"
	"agriconnect/internal/domain/repository"
	"agriconnect/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ratingRepository struct {
	db *gorm.DB
}

// NewRatingRepository creates the GORM backed rating repository.
func NewRatingRepository(db *gorm.DB) repository.RatingRepository {
	return &ratingRepository{db: db}
}

func (repo *ratingRepository) UpsertProductRating(ctx context.Context, rating *entity.ProductRating) error {
	row := &model.ProductRatingModel{
		ProductID: rating.ProductID,
		Username:  rating.Username,
		Rating:    rating.Rating,
		Comment:   rating.Comment,
		CreatedAt: rating.CreatedAt,
	}

	err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "product_id"}, {Name: "username"}},
			DoUpdates: clause.AssignmentColumns([]string{"rating", "comment", "created_at"}),
		}).
		Create(row).Error
	if err != nil {
		if isCheckConstraintViolation(err) {
			return domainerrors.ErrInvalidRating
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to save product rating")
	}

	return nil
}

func (repo *ratingRepository) FindProductRatings(ctx context.Context, productID string) ([]*entity.ProductRating, error) {
	var rows []*model.ProductRatingModel
	err := repo.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order(newestFirst).
		Find(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to find product ratings")
	}

	out := make([]*entity.ProductRating, 0, len(rows))
	for _, row := range rows {
		out = append(out, toProductRatingDomain(row))
	}

	return out, nil
}

func (repo *ratingRepository) FindProductRating(ctx context.Context, productID, username string) (*entity.ProductRating, error) {
	var row model.ProductRatingModel
	err := repo.db.WithContext(ctx).
		Where("product_id = ? AND username = ?", productID, username).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrRatingNotFound
		}

		return nil, errors.Wrap(err, "failed to find product rating")
	}

	return toProductRatingDomain(&row), nil
}

func (repo *ratingRepository) UpsertFarmerRating(ctx context.Context, rating *entity.FarmerRating) error {
	row := &model.FarmerRatingModel{
		FarmerUsername:   rating.FarmerUsername,
		CustomerUsername: rating.CustomerUsername,
		Rating:           rating.Rating,
		Comment:          rating.Comment,
		CreatedAt:        rating.CreatedAt,
	}

	err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "farmer_username"}, {Name: "customer_username"}},
			DoUpdates: clause.AssignmentColumns([]string{"rating", "comment", "created_at"}),
		}).
		Create(row).Error
	if err != nil {
		if isCheckConstraintViolation(err) {
			return domainerrors.ErrInvalidRating
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to save farmer rating")
	}

	return nil
}

func (repo *ratingRepository) FindFarmerRatings(ctx context.Context, farmerUsername string) ([]*entity.FarmerRating, error) {
	var rows []*model.FarmerRatingModel
	err := repo.db.WithContext(ctx).
		Where("farmer_username = ?", farmerUsername).
		Order(newestFirst).
		Find(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to find farmer ratings")
	}

	out := make([]*entity.FarmerRating, 0, len(rows))
	for _, row := range rows {
		out = append(out, &entity.FarmerRating{
			ID:               row.ID,
			FarmerUsername:   row.FarmerUsername,
			CustomerUsername: row.CustomerUsername,
			Rating:           row.Rating,
			Comment:          row.Comment,
			CreatedAt:        row.CreatedAt,
		})
	}

	return out, nil
}

func toProductRatingDomain(row *model.ProductRatingModel) *entity.ProductRating {
	return &entity.ProductRating{
		ID:        row.ID,
		ProductID: row.ProductID,
		Username:  row.Username,
		Rating:    row.Rating,
		Comment:   row.Comment,
		CreatedAt: row.CreatedAt,
	}
}
