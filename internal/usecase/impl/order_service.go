package impl

import (
	"context"
	"log/slog"
	"math"
	"strings"
	"time"

	"agriconnect/config"
	deliverycontext "agriconnect/internal/delivery/context"
	"agriconnect/internal/domain/constants"
	"agriconnect/internal/domain/entity"
	domainerrors "agriconnect/internal/domain/errors"
	"agriconnect/internal/domain/repository"
	"agriconnect/internal/domain/service"
	"agriconnect/internal/usecase"
	"agriconnect/internal/util"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	orderNumberPrefix      = "ORD"
	orderNumberDigits      = 8
	otpDigits              = 6
	dummyPaymentPrefix     = "DUMMY_"
	dummyPaymentDigits     = 10
	maxOrderNumberAttempts = 3
)

type orderService struct {
	txManager   repository.TransactionManager
	orderRepo   repository.OrderRepository
	catalog     repository.ProductCatalog
	gateway     service.PaymentGateway
	publisher   service.EventPublisher
	idempotency service.IdempotencyGuard
	qrCode      service.QRCodeService
	edition     string
	logger      *slog.Logger
}

// OrderServiceParams holds dependencies for OrderService, injected by Fx.
type OrderServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	OrderRepo   repository.OrderRepository
	Catalog     repository.ProductCatalog
	Gateway     service.PaymentGateway
	Publisher   service.EventPublisher
	Idempotency service.IdempotencyGuard
	QRCode      service.QRCodeService
	Config      *config.Config
	Logger      *slog.Logger
}

// NewOrderService is the constructor for orderService.
func NewOrderService(params OrderServiceParams) usecase.OrderUsecase {
	return &orderService{
		txManager:   params.TxManager,
		orderRepo:   params.OrderRepo,
		catalog:     params.Catalog,
		gateway:     params.Gateway,
		publisher:   params.Publisher,
		idempotency: params.Idempotency,
		qrCode:      params.QRCode,
		edition:     params.Config.Env.Edition,
		logger:      params.Logger,
	}
}

func (srv *orderService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// orderDraft is everything needed to persist one order.
type orderDraft struct {
	username       string
	cart           []entity.CartItem
	status         entity.OrderStatus
	paymentMethod  string
	paymentID      string
	idempotencyKey string
	// requireDelivery rejects accounts without a complete delivery address.
	requireDelivery bool
}

// PlaceOrder creates a cash on delivery order from the cart page.
func (srv *orderService) PlaceOrder(ctx context.Context, input *usecase.PlaceOrderInput) (*usecase.OrderOutput, error) {
	if input.Username == "" {
		return nil, errors.Wrap(domainerrors.ErrUnauthorized, "place order")
	}
	if len(input.Cart) == 0 {
		return nil, errors.Wrap(domainerrors.ErrCartEmpty, "place order")
	}

	order, err := srv.createOrder(ctx, &orderDraft{
		username:        input.Username,
		cart:            input.Cart,
		status:          entity.OrderStatusPending,
		paymentMethod:   entity.PaymentMethodCOD,
		idempotencyKey:  input.IdempotencyKey,
		requireDelivery: true,
	})
	if err != nil {
		return nil, err
	}

	return &usecase.OrderOutput{Order: order}, nil
}

// CreateOrder creates a pending order for the checkout widget.
func (srv *orderService) CreateOrder(ctx context.Context, input *usecase.CreateOrderInput) (*usecase.OrderOutput, error) {
	if input.Username == "" {
		return nil, errors.Wrap(domainerrors.ErrUnauthorized, "create order")
	}
	if len(input.Cart) == 0 {
		return nil, errors.Wrap(domainerrors.ErrCartItemsMissing, "create order")
	}

	method := strings.TrimSpace(input.PaymentMethod)
	if method == "" {
		method = entity.PaymentMethodCOD
	}

	order, err := srv.createOrder(ctx, &orderDraft{
		username:       input.Username,
		cart:           input.Cart,
		status:         entity.OrderStatusPending,
		paymentMethod:  method,
		idempotencyKey: input.IdempotencyKey,
	})
	if err != nil {
		return nil, err
	}

	return &usecase.OrderOutput{Order: order}, nil
}

// CreatePaymentOrder converts rupees to paise and registers the amount with the gateway.
func (srv *orderService) CreatePaymentOrder(ctx context.Context, amount float64) (*service.GatewayOrder, error) {
	if amount <= 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return nil, domainerrors.ErrValidationFailed.WithDetails("amount must be a positive number")
	}

	gatewayOrder, err := srv.gateway.CreateOrder(ctx, int64(math.Round(amount*100)))
	if err != nil {
		srv.log(ctx).Error("Payment gateway rejected order", slog.Float64("amount", amount), slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrPaymentGateway, err.Error())
	}

	return gatewayOrder, nil
}

// VerifyPayment checks the callback and, when a cart is supplied, records a paid order.
func (srv *orderService) VerifyPayment(ctx context.Context, input *usecase.VerifyPaymentInput) (*usecase.VerifyPaymentOutput, error) {
	valid, err := srv.gateway.VerifyPayment(ctx, input.Payment)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrPaymentGateway, err.Error())
	}
	if !valid {
		srv.log(ctx).Warn("Payment signature rejected", slog.String("paymentOrderID", input.Payment.OrderID))

		return nil, errors.Wrap(domainerrors.ErrPaymentVerificationFailed, "verify payment")
	}

	if len(input.Cart) == 0 {
		if srv.edition == config.EditionStorefront {
			return &usecase.VerifyPaymentOutput{}, nil
		}

		return nil, errors.Wrap(domainerrors.ErrCartItemsMissing, "verify payment")
	}
	if input.Username == "" {
		return nil, errors.Wrap(domainerrors.ErrUnauthorized, "verify payment")
	}

	paymentID := strings.TrimSpace(input.Payment.PaymentID)
	if paymentID == "" {
		paymentID, err = util.PrefixedCode(dummyPaymentPrefix, dummyPaymentDigits)
		if err != nil {
			return nil, errors.Wrap(err, "failed to generate payment id")
		}
	}

	order, err := srv.createOrder(ctx, &orderDraft{
		username:       input.Username,
		cart:           input.Cart,
		status:         entity.OrderStatusPaid,
		paymentMethod:  entity.PaymentMethodOnline,
		paymentID:      paymentID,
		idempotencyKey: input.IdempotencyKey,
	})
	if err != nil {
		return nil, err
	}

	return &usecase.VerifyPaymentOutput{Order: order}, nil
}

func (srv *orderService) createOrder(ctx context.Context, draft *orderDraft) (*entity.Order, error) {
	if draft.idempotencyKey != "" {
		first, err := srv.idempotency.Acquire(ctx, draft.idempotencyKey)
		if err != nil {
			return nil, errors.Wrap(err, "failed to check idempotency key")
		}
		if !first {
			srv.log(ctx).Warn("Replayed order request rejected", slog.String("username", draft.username))

			return nil, errors.Wrap(domainerrors.ErrDuplicateRequest, "create order")
		}
	}

	farmerProducts := srv.farmerProducts(ctx)

	var (
		order         *entity.Order
		notifications []*entity.FarmerNotification
		err           error
	)
	for attempt := 1; ; attempt++ {
		order, notifications, err = srv.persistOrder(ctx, draft, farmerProducts)
		if err == nil || !errors.Is(err, domainerrors.ErrConflict) || attempt >= maxOrderNumberAttempts {
			break
		}
		srv.log(ctx).Warn("Order number collision, retrying", slog.Int("attempt", attempt))
	}
	if err != nil {
		srv.releaseKey(ctx, draft.idempotencyKey)
		srv.log(ctx).Warn("Failed to create order", slog.String("username", draft.username), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute create order transaction")
	}

	srv.log(ctx).Info("Order created",
		slog.String("orderNumber", order.OrderNumber),
		slog.String("status", string(order.Status)),
		slog.Int("farmerNotifications", len(notifications)))

	publishOrderEvent(ctx, srv.publisher, srv.log(ctx), constants.EventOrderPlaced, order, farmerAccounts(notifications))

	return order, nil
}

func (srv *orderService) releaseKey(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := srv.idempotency.Release(ctx, key); err != nil {
		srv.log(ctx).Error("Failed to release idempotency key", slog.Any("error", err))
	}
}

// farmerProducts indexes the farmer-listed home products by id. An unreadable
// catalog only suppresses farmer notifications.
func (srv *orderService) farmerProducts(ctx context.Context) map[string]*entity.Product {
	products, err := srv.catalog.HomeProducts(ctx)
	if err != nil {
		srv.log(ctx).Warn("Catalog unreadable, skipping farmer notifications", slog.Any("error", err))

		return nil
	}

	index := make(map[string]*entity.Product)
	for _, p := range products {
		if p.IsFarmerProduct() {
			index[p.ID] = p
		}
	}

	return index
}

func (srv *orderService) persistOrder(ctx context.Context, draft *orderDraft, farmerProducts map[string]*entity.Product) (*entity.Order, []*entity.FarmerNotification, error) {
	var (
		order         *entity.Order
		notifications []*entity.FarmerNotification
	)

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		details, err := repoFactory.NewUserRepository().FindDetails(ctx, draft.username)
		if errors.Is(err, repository.ErrUserDetailsNotFound) {
			if draft.requireDelivery {
				return errors.Wrap(domainerrors.ErrDeliveryDetailsMissing, draft.username)
			}

			return errors.Wrap(domainerrors.ErrUserNotFound, draft.username)
		}
		if err != nil {
			return errors.Wrap(err, "failed to load delivery details")
		}
		if draft.requireDelivery && !details.HasDeliveryDetails() {
			return errors.Wrap(domainerrors.ErrDeliveryDetailsMissing, draft.username)
		}

		order, err = buildOrder(draft, details)
		if err != nil {
			return err
		}
		if err := repoFactory.NewOrderRepository().Create(ctx, order); err != nil {
			return errors.Wrap(err, "failed to insert order")
		}

		notifications = buildFarmerNotifications(order, details, farmerProducts)
		if len(notifications) == 0 {
			return nil
		}
		if err := repoFactory.NewFarmerNotificationRepository().CreateBatch(ctx, notifications); err != nil {
			return errors.Wrap(err, "failed to insert farmer notifications")
		}

		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return order, notifications, nil
}

func buildOrder(draft *orderDraft, details *entity.UserDetails) (*entity.Order, error) {
	orderNumber, err := util.PrefixedCode(orderNumberPrefix, orderNumberDigits)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate order number")
	}
	otp, err := util.RandomDigits(otpDigits)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate delivery otp")
	}

	items := make([]*entity.OrderItem, 0, len(draft.cart))
	for _, c := range draft.cart {
		items = append(items, &entity.OrderItem{
			ProductID:   c.ID,
			ProductName: c.Name,
			Quantity:    c.EffectiveQuantity(),
			Price:       c.Price,
		})
	}

	return &entity.Order{
		OrderNumber:   orderNumber,
		Username:      draft.username,
		Name:          details.Name,
		Address:       details.Address,
		Pincode:       details.Pincode,
		Phone:         details.Phone,
		TotalAmount:   entity.CartTotal(draft.cart),
		Status:        draft.status,
		PaymentMethod: draft.paymentMethod,
		PaymentID:     draft.paymentID,
		OTP:           otp,
		CreatedAt:     time.Now().UTC(),
		Items:         items,
	}, nil
}

// buildFarmerNotifications creates one notification per item sold by a farmer.
func buildFarmerNotifications(order *entity.Order, customer *entity.UserDetails, farmerProducts map[string]*entity.Product) []*entity.FarmerNotification {
	var notifications []*entity.FarmerNotification
	for _, item := range order.Items {
		product, ok := farmerProducts[item.ProductID]
		if !ok {
			continue
		}
		notifications = append(notifications, &entity.FarmerNotification{
			FarmerUsername:   product.SellerUsername,
			OrderID:          order.ID,
			ProductID:        item.ProductID,
			ProductName:      item.ProductName,
			Quantity:         item.Quantity,
			Price:            item.Price,
			CustomerUsername: order.Username,
			CustomerName:     customer.DisplayName(),
			Status:           order.Status,
			CreatedAt:        order.CreatedAt,
		})
	}

	return notifications
}

// Invoice returns an order to its owner or to an admin.
func (srv *orderService) Invoice(ctx context.Context, principal *entity.Principal, orderID uint) (*entity.Order, error) {
	order, err := srv.findOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !principal.Role.IsAdmin() && order.Username != principal.Username {
		return nil, errors.Wrap(domainerrors.ErrOrderNotFound, "invoice")
	}

	return order, nil
}

// DeliveryQR renders the hand-over code. Other accounts see the order as missing.
func (srv *orderService) DeliveryQR(ctx context.Context, principal *entity.Principal, orderID uint) ([]byte, error) {
	order, err := srv.findOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.Username != principal.Username {
		return nil, errors.Wrap(domainerrors.ErrOrderNotFound, "delivery qr")
	}

	png, err := srv.qrCode.GenerateDeliveryQR(order.OrderNumber, order.OTP)
	if err != nil {
		return nil, errors.Wrap(err, "failed to render delivery qr")
	}

	return png, nil
}

func (srv *orderService) findOrder(ctx context.Context, orderID uint) (*entity.Order, error) {
	order, err := srv.orderRepo.FindByID(ctx, orderID)
	if errors.Is(err, repository.ErrOrderNotFound) {
		return nil, errors.Wrap(domainerrors.ErrOrderNotFound, "find order")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load order")
	}

	return order, nil
}
