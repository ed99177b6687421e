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

type farmerNotificationRepository struct {
	db *gorm.DB
}

// NewFarmerNotificationRepository creates the GORM backed farmer inbox.
func NewFarmerNotificationRepository(db *gorm.DB) repository.FarmerNotificationRepository {
	return &farmerNotificationRepository{db: db}
}

func (repo *farmerNotificationRepository) CreateBatch(ctx context.Context, notifications []*entity.FarmerNotification) error {
	if len(notifications) == 0 {
		return nil
	}

	rows := make([]*model.FarmerOrderNotificationModel, 0, len(notifications))
	for _, n := range notifications {
		rows = append(rows, fromFarmerNotificationDomain(n))
	}

	if err := repo.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create farmer notifications")
	}

	for i, row := range rows {
		notifications[i].ID = row.ID
		notifications[i].CreatedAt = row.CreatedAt
	}

	return nil
}

func (repo *farmerNotificationRepository) FindByFarmer(ctx context.Context, farmerUsername string) ([]*entity.FarmerNotification, error) {
	var rows []*model.FarmerOrderNotificationModel
	err := repo.db.WithContext(ctx).
		Where("farmer_username = ?", farmerUsername).
		Order(newestFirst).
		Find(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to find farmer notifications")
	}

	return toFarmerNotificationsDomain(rows), nil
}

func (repo *farmerNotificationRepository) FindAll(ctx context.Context) ([]*entity.FarmerNotification, error) {
	var rows []*model.FarmerOrderNotificationModel
	if err := repo.db.WithContext(ctx).Order(newestFirst).Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list farmer notifications")
	}

	return toFarmerNotificationsDomain(rows), nil
}

func (repo *farmerNotificationRepository) MarkRead(ctx context.Context, id uint, farmerUsername string) error {
	result := repo.db.WithContext(ctx).
		Model(&model.FarmerOrderNotificationModel{}).
		Where("id = ? AND farmer_username = ?", id, farmerUsername).
		Update("read_status", true)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to mark notification read")
	}
	if result.RowsAffected == 0 {
		return repository.ErrFarmerNotificationNotFound
	}

	return nil
}

func (repo *farmerNotificationRepository) DeleteByFarmer(ctx context.Context, farmerUsername string) (int64, error) {
	result := repo.db.WithContext(ctx).
		Where("farmer_username = ?", farmerUsername).
		Delete(&model.FarmerOrderNotificationModel{})
	if result.Error != nil {
		return 0, domainerrors.NewDatabaseExecuteError(result.Error, "failed to clear farmer notifications")
	}

	return result.RowsAffected, nil
}

func (repo *farmerNotificationRepository) UpdateStatusByOrder(ctx context.Context, orderID uint, status entity.OrderStatus) error {
	err := repo.db.WithContext(ctx).
		Model(&model.FarmerOrderNotificationModel{}).
		Where("order_id = ?", orderID).
		Update("status", string(status)).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to update notification status")
	}

	return nil
}

func (repo *farmerNotificationRepository) DeleteByOrder(ctx context.Context, orderID uint) error {
	err := repo.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Delete(&model.FarmerOrderNotificationModel{}).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete order notifications")
	}

	return nil
}

func toFarmerNotificationsDomain(rows []*model.FarmerOrderNotificationModel) []*entity.FarmerNotification {
	out := make([]*entity.FarmerNotification, 0, len(rows))
	for _, row := range rows {
		out = append(out, &entity.FarmerNotification{
			ID:               row.ID,
			FarmerUsername:   row.FarmerUsername,
			OrderID:          row.OrderID,
			ProductID:        row.ProductID,
			ProductName:      row.ProductName,
			Quantity:         row.Quantity,
			Price:            row.Price,
			CustomerUsername: row.CustomerUsername,
			CustomerName:     row.CustomerName,
			Status:           entity.OrderStatus(row.Status),
			Read:             row.ReadStatus,
			CreatedAt:        row.CreatedAt,
		})
	}

	return out
}

func fromFarmerNotificationDomain(data *entity.FarmerNotification) *model.FarmerOrderNotificationModel {
	return &model.FarmerOrderNotificationModel{
		ID:               data.ID,
		FarmerUsername:   data.FarmerUsername,
		OrderID:          data.OrderID,
		ProductID:        data.ProductID,
		ProductName:      data.ProductName,
		Quantity:         data.Quantity,
		Price:            data.Price,
		CustomerUsername: data.CustomerUsername,
		CustomerName:     data.CustomerName,
		Status:           string(data.Status),
		ReadStatus:       data.Read,
		CreatedAt:        data.CreatedAt,
	}
}
