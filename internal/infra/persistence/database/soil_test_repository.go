package database

import (
	"context"

	"agriconnect/internal/domain/entity"
	domainerrors "agriconnect/internal/domain/errors"
	"agriconnect/internal/domain/repository"
	"agriconnect/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type soilTestRepository struct {
	db *gorm.DB
}

// NewSoilTestRepository creates the GORM backed soil test booking repository.
func NewSoilTestRepository(db *gorm.DB) repository.SoilTestRepository {
	return &soilTestRepository{db: db}
}

func (repo *soilTestRepository) Create(ctx context.Context, booking *entity.SoilTestBooking) error {
	status := booking.Status
	if status == "" {
		status = entity.SoilTestPending
	}

	row := &model.SoilTestBookingModel{
		BookingID:     booking.BookingID,
		Username:      booking.Username,
		FarmLocation:  booking.FarmLocation,
		FarmSize:      booking.FarmSize,
		ContactNumber: booking.ContactNumber,
		PreferredDate: booking.PreferredDate,
		TestType:      booking.TestType,
		Status:        string(status),
		CreatedAt:     booking.CreatedAt,
	}

	if err := repo.db.WithContext(ctx).Create(row).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrConflict.WrapMessage("booking id already exists")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create soil test booking")
	}

	booking.ID = row.ID
	booking.Status = status
	booking.CreatedAt = row.CreatedAt

	return nil
}

func (repo *soilTestRepository) FindByUsername(ctx context.Context, username string) ([]*entity.SoilTestBooking, error) {
	var rows []*model.SoilTestBookingModel
	err := repo.db.WithContext(ctx).
		Where("username = ?", username).
		Order(newestFirst).
		Find(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to find soil test bookings")
	}

	return toSoilTestsDomain(rows), nil
}

func (repo *soilTestRepository) FindAll(ctx context.Context) ([]*entity.SoilTestBooking, error) {
	var rows []*model.SoilTestBookingModel
	if err := repo.db.WithContext(ctx).Order(newestFirst).Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list soil test bookings")
	}

	return toSoilTestsDomain(rows), nil
}

func (repo *soilTestRepository) UpdateStatus(ctx context.Context, id uint, status entity.SoilTestStatus) error {
	result := repo.db.WithContext(ctx).
		Model(&model.SoilTestBookingModel{}).
		Where("id = ?", id).
		Update("status", string(status))
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update soil test status")
	}
	if result.RowsAffected == 0 {
		return repository.ErrSoilTestNotFound
	}

	return nil
}

func toSoilTestsDomain(rows []*model.SoilTestBookingModel) []*entity.SoilTestBooking {
	out := make([]*entity.SoilTestBooking, 0, len(rows))
	for _, row := range rows {
		out = append(out, &entity.SoilTestBooking{
			ID:            row.ID,
			BookingID:     row.BookingID,
			Username:      row.Username,
			FarmLocation:  row.FarmLocation,
			FarmSize:      row.FarmSize,
			ContactNumber: row.ContactNumber,
			PreferredDate: row.PreferredDate,
			TestType:      row.TestType,
			Status:        entity.SoilTestStatus(row.Status),
			CreatedAt:     row.CreatedAt,
		})
	}

	return out
}
