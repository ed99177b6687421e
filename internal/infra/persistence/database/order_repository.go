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

const newestFirst = "created_at DESC, id DESC"

// finalStatuses are order states a status update may not leave.
var finalStatuses = []string{string(entity.OrderStatusCompleted), string(entity.OrderStatusCancelled)}

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates the GORM backed order repository.
func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepository{db: db}
}

func (repo *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	orderM := fromOrderDomain(order)

	// Items are saved through the association in the same statement batch.
	if err := repo.db.WithContext(ctx).Create(orderM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrConflict.WrapMessage("order number already exists")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create order")
	}

	order.ID = orderM.ID
	order.CreatedAt = orderM.CreatedAt
	for i, itemM := range orderM.Items {
		if i < len(order.Items) {
			order.Items[i].ID = itemM.ID
			order.Items[i].OrderID = itemM.OrderID
		}
	}

	return nil
}

func (repo *orderRepository) FindByID(ctx context.Context, id uint) (*entity.Order, error) {
	var orderM model.OrderModel
	err := repo.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		First(&orderM, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order by id")
	}

	return toOrderDomain(&orderM), nil
}

type itemCountRow struct {
	OrderID uint
	Count   int
}

func (repo *orderRepository) FindByUsername(ctx context.Context, username string) ([]*entity.OrderSummary, error) {
	var rows []*model.OrderModel
	err := repo.db.WithContext(ctx).
		Where("username = ?", username).
		Order(newestFirst).
		Find(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to find orders by username")
	}
	if len(rows) == 0 {
		return []*entity.OrderSummary{}, nil
	}

	ids := make([]uint, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}

	var counts []itemCountRow
	err = repo.db.WithContext(ctx).
		Model(&model.OrderItemModel{}).
		Select("order_id, COUNT(*) AS count").
		Where("order_id IN ?", ids).
		Group("order_id").
		Scan(&counts).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to count order items")
	}

	countByOrder := make(map[uint]int, len(counts))
	for _, c := range counts {
		countByOrder[c.OrderID] = c.Count
	}

	summaries := make([]*entity.OrderSummary, 0, len(rows))
	for _, row := range rows {
		summaries = append(summaries, &entity.OrderSummary{
			Order:     toOrderDomain(row),
			ItemCount: countByOrder[row.ID],
		})
	}

	return summaries, nil
}

func (repo *orderRepository) FindAll(ctx context.Context) ([]*entity.Order, error) {
	var rows []*model.OrderModel
	if err := repo.db.WithContext(ctx).Order(newestFirst).Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	orders := make([]*entity.Order, 0, len(rows))
	for _, row := range rows {
		orders = append(orders, toOrderDomain(row))
	}

	return orders, nil
}

func (repo *orderRepository) FindItems(ctx context.Context, orderID uint) ([]*entity.OrderItem, error) {
	var rows []*model.OrderItemModel
	if err := repo.db.WithContext(ctx).Where("order_id = ?", orderID).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find order items")
	}

	return toOrderItemsDomain(rows), nil
}

func (repo *orderRepository) UpdateStatus(ctx context.Context, id uint, status entity.OrderStatus) error {
	result := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("id = ? AND status NOT IN ?", id, finalStatuses).
		Update("status", string(status))
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update order status")
	}
	if result.RowsAffected > 0 {
		return nil
	}

	var current model.OrderModel
	err := repo.db.WithContext(ctx).Select("status").Where("id = ?", id).Take(&current).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return repository.ErrOrderNotFound
	}
	if err != nil {
		return errors.Wrap(err, "failed to reload order status")
	}
	if entity.OrderStatus(current.Status).IsTerminal() {
		return repository.ErrOrderFinalized
	}

	// MySQL counts changed rows only; an open order already in status is a no-op.
	return nil
}

func (repo *orderRepository) HasCompletedPurchase(ctx context.Context, username string, productIDs []string) (bool, error) {
	if len(productIDs) == 0 {
		return false, nil
	}

	var count int64
	err := repo.db.WithContext(ctx).
		Model(&model.OrderItemModel{}).
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.username = ? AND orders.status = ? AND order_items.product_id IN ?",
			username, string(entity.OrderStatusCompleted), productIDs).
		Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "failed to check completed purchase")
	}

	return count > 0, nil
}

// --- Mapper Functions ---

func toOrderDomain(data *model.OrderModel) *entity.Order {
	if data == nil {
		return nil
	}

	return &entity.Order{
		ID:            data.ID,
		OrderNumber:   data.OrderNumber,
		Username:      data.Username,
		Name:          data.Name,
		Address:       data.Address,
		Pincode:       data.Pincode,
		Phone:         data.Phone,
		TotalAmount:   data.TotalAmount,
		Status:        entity.OrderStatus(data.Status),
		PaymentMethod: data.PaymentMethod,
		PaymentID:     data.PaymentID,
		OTP:           data.OTP,
		CreatedAt:     data.CreatedAt,
		Items:         toOrderItemsDomain(data.Items),
	}
}

func fromOrderDomain(data *entity.Order) *model.OrderModel {
	if data == nil {
		return nil
	}

	items := make([]*model.OrderItemModel, 0, len(data.Items))
	for _, item := range data.Items {
		items = append(items, &model.OrderItemModel{
			ID:          item.ID,
			OrderID:     item.OrderID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       item.Price,
		})
	}

	return &model.OrderModel{
		ID:            data.ID,
		OrderNumber:   data.OrderNumber,
		Username:      data.Username,
		Name:          data.Name,
		Address:       data.Address,
		Pincode:       data.Pincode,
		Phone:         data.Phone,
		TotalAmount:   data.TotalAmount,
		Status:        string(data.Status),
		PaymentMethod: data.PaymentMethod,
		PaymentID:     data.PaymentID,
		OTP:           data.OTP,
		CreatedAt:     data.CreatedAt,
		Items:         items,
	}
}

func toOrderItemsDomain(rows []*model.OrderItemModel) []*entity.OrderItem {
	items := make([]*entity.OrderItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, &entity.OrderItem{
			ID:          row.ID,
			OrderID:     row.OrderID,
			ProductID:   row.ProductID,
			ProductName: row.ProductName,
			Quantity:    row.Quantity,
			Price:       row.Price,
		})
	}

	return items
}
