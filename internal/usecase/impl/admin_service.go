package impl

import (
	"context"
	"log/slog"

	deliverycontext "agriconnect/internal/delivery/context"
	"agriconnect/internal/domain/constants"
	"agriconnect/internal/domain/entity"
	domainerrors "agriconnect/internal/domain/errors"
	"agriconnect/internal/domain/repository"
	"agriconnect/internal/domain/service"
	"agriconnect/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type adminService struct {
	txManager    repository.TransactionManager
	orderRepo    repository.OrderRepository
	soilTestRepo repository.SoilTestRepository
	userRepo     repository.UserRepository
	catalog      repository.ProductCatalog
	adminInbox   service.AdminInbox
	publisher    service.EventPublisher
	logger       *slog.Logger
}

// AdminServiceParams holds dependencies for AdminService, injected by Fx.
type AdminServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	OrderRepo    repository.OrderRepository
	SoilTestRepo repository.SoilTestRepository
	UserRepo     repository.UserRepository
	Catalog      repository.ProductCatalog
	AdminInbox   service.AdminInbox
	Publisher    service.EventPublisher
	Logger       *slog.Logger
}

// NewAdminService is the constructor for adminService.
func NewAdminService(params AdminServiceParams) usecase.AdminUsecase {
	return &adminService{
		txManager:    params.TxManager,
		orderRepo:    params.OrderRepo,
		soilTestRepo: params.SoilTestRepo,
		userRepo:     params.UserRepo,
		catalog:      params.Catalog,
		adminInbox:   params.AdminInbox,
		publisher:    params.Publisher,
		logger:       params.Logger,
	}
}

func (srv *adminService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Dashboard groups all orders by pincode. Field admins also get the inbox and soil tests.
func (srv *adminService) Dashboard(ctx context.Context, principal *entity.Principal) (*usecase.DashboardOutput, error) {
	orders, err := srv.orderRepo.FindAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load orders")
	}

	out := &usecase.DashboardOutput{
		Groups:      groupByPincode(orders),
		TotalOrders: len(orders),
	}
	for _, o := range orders {
		if o.Status == entity.OrderStatusPending {
			out.PendingCount++
		}
	}

	if principal.Role == entity.RoleFieldAdmin {
		if out.Notifications, err = srv.adminInbox.List(ctx); err != nil {
			return nil, errors.Wrap(err, "failed to load admin notifications")
		}
		if out.SoilTests, err = srv.soilTestsWithNames(ctx); err != nil {
			return nil, err
		}
	}

	out.Dealers, err = srv.catalog.Dealers(ctx)
	if err != nil {
		srv.log(ctx).Warn("Dealers document unreadable", slog.Any("error", err))
		out.Dealers = nil
	}

	return out, nil
}

func groupByPincode(orders []*entity.Order) []*usecase.PincodeGroup {
	var groups []*usecase.PincodeGroup
	index := make(map[string]*usecase.PincodeGroup)
	for _, o := range orders {
		key := o.Pincode
		if key == "" {
			key = constants.NoPincodeGroup
		}
		group, ok := index[key]
		if !ok {
			group = &usecase.PincodeGroup{Pincode: key}
			index[key] = group
			groups = append(groups, group)
		}
		group.Orders = append(group.Orders, o)
	}

	return groups
}

func (srv *adminService) soilTestsWithNames(ctx context.Context) ([]*entity.SoilTestBooking, error) {
	bookings, err := srv.soilTestRepo.FindAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load soil test bookings")
	}

	usernames := make([]string, 0, len(bookings))
	for _, b := range bookings {
		usernames = append(usernames, b.Username)
	}
	details, err := srv.userRepo.FindDetailsByUsernames(ctx, usernames)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load farmer names")
	}

	for _, b := range bookings {
		b.FarmerName = b.Username
		if d, ok := details[b.Username]; ok && d.Name != "" {
			b.FarmerName = d.Name
		}
	}

	return bookings, nil
}

func (srv *adminService) ListOrders(ctx context.Context) ([]*entity.Order, error) {
	orders, err := srv.orderRepo.FindAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load orders")
	}

	return orders, nil
}

func (srv *adminService) OrderItems(ctx context.Context, orderID uint) ([]*entity.OrderItem, error) {
	items, err := srv.orderRepo.FindItems(ctx, orderID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load order items")
	}

	return items, nil
}

// UpdateOrderStatus applies a status change. Completed and cancelled orders are final.
func (srv *adminService) UpdateOrderStatus(ctx context.Context, input *usecase.UpdateOrderStatusInput) (*usecase.UpdateOrderStatusOutput, error) {
	if !input.Status.IsValid() {
		return nil, domainerrors.ErrInvalidOrderStatus.WithDetails(string(input.Status))
	}

	var order *entity.Order
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		orderRepo := repoFactory.NewOrderRepository()
		notificationRepo := repoFactory.NewFarmerNotificationRepository()

		var err error
		order, err = orderRepo.FindByID(ctx, input.OrderID)
		if errors.Is(err, repository.ErrOrderNotFound) {
			return errors.Wrap(domainerrors.ErrOrderNotFound, "update order status")
		}
		if err != nil {
			return errors.Wrap(err, "failed to load order")
		}
		if order.Status.IsTerminal() {
			return errors.Wrap(domainerrors.ErrOrderFinalized, string(order.Status))
		}

		err = orderRepo.UpdateStatus(ctx, order.ID, input.Status)
		if errors.Is(err, repository.ErrOrderFinalized) {
			// another request finalized the order after it was read
			return errors.Wrap(domainerrors.ErrOrderFinalized, "update order status")
		}
		if err != nil {
			return errors.Wrap(err, "failed to update order status")
		}

		switch input.Status {
		case entity.OrderStatusCompleted:
			if err := notificationRepo.UpdateStatusByOrder(ctx, order.ID, input.Status); err != nil {
				return errors.Wrap(err, "failed to update farmer notifications")
			}
			// fulfilled orders leave the farmer inbox
			if err := notificationRepo.DeleteByOrder(ctx, order.ID); err != nil {
				return errors.Wrap(err, "failed to delete farmer notifications")
			}
		case entity.OrderStatusCancelled:
			if err := notificationRepo.UpdateStatusByOrder(ctx, order.ID, input.Status); err != nil {
				return errors.Wrap(err, "failed to update farmer notifications")
			}
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Failed to update order status", slog.Any("orderID", input.OrderID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute update order status transaction")
	}

	order.Status = input.Status
	srv.log(ctx).Info("Order status updated", slog.String("orderNumber", order.OrderNumber), slog.String("status", string(input.Status)))

	if input.Status == entity.OrderStatusCompleted {
		srv.decrementStock(ctx, order.Items)
	}

	publishOrderEvent(ctx, srv.publisher, srv.log(ctx), constants.EventOrderStatusChanged, order, nil)

	out := &usecase.UpdateOrderStatusOutput{Status: input.Status}
	if input.Status == entity.OrderStatusCancelled && order.IsPrepaid() {
		out.RefundMessage = constants.RefundMessage
	}

	return out, nil
}

// decrementStock lowers farmer product stock by the sold quantities, skipping
// products that do not have enough stock left.
func (srv *adminService) decrementStock(ctx context.Context, items []*entity.OrderItem) {
	err := srv.catalog.UpdateHomeProducts(ctx, func(products []*entity.Product) ([]*entity.Product, error) {
		for _, item := range items {
			for _, p := range products {
				if p.ID != item.ProductID || p.SellerType != entity.SellerTypeFarmer {
					continue
				}
				if p.Stock >= item.Quantity {
					p.Stock -= item.Quantity
				}

				break
			}
		}

		return products, nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to update catalog stock", slog.Any("error", err))
	}
}

func (srv *adminService) UpdateSoilTestStatus(ctx context.Context, id uint, status entity.SoilTestStatus) error {
	if !status.IsValid() {
		return domainerrors.ErrInvalidSoilTestStatus.WithDetails(string(status))
	}

	err := srv.soilTestRepo.UpdateStatus(ctx, id, status)
	if errors.Is(err, repository.ErrSoilTestNotFound) {
		return errors.Wrap(domainerrors.ErrSoilTestNotFound, "update soil test status")
	}
	if err != nil {
		return errors.Wrap(err, "failed to update soil test status")
	}

	return nil
}

func (srv *adminService) Notifications(ctx context.Context) ([]*entity.AdminNotification, error) {
	notifications, err := srv.adminInbox.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load admin notifications")
	}

	return notifications, nil
}
