package impl

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"agriconnect/config"
	"agriconnect/internal/domain/constants"
	"agriconnect/internal/domain/entity"
	domainerrors "agriconnect/internal/domain/errors"
	"agriconnect/internal/domain/service"
	"agriconnect/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var mixedCart = []entity.CartItem{
	{ID: "FP00000001", Name: "Tomato", Price: 40, Quantity: 2},
	{ID: "7", Name: "Rice", Price: 60},
}

func TestOrderService_PlaceOrder(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedUser(t, "ravi", entity.LoginTypeFarmer)
	env.seedUser(t, "asha", entity.LoginTypeCustomer)

	var published *service.OrderEvent
	env.publisher.On("PublishOrderEvent", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { published = args.Get(1).(*service.OrderEvent) }).
		Return(nil).Once()

	out, err := env.orderService().PlaceOrder(ctx, &usecase.PlaceOrderInput{Username: "asha", Cart: mixedCart})
	require.NoError(t, err)

	order := out.Order
	assert.True(t, strings.HasPrefix(order.OrderNumber, "ORD"))
	assert.Len(t, order.OrderNumber, 11)
	assert.Len(t, order.OTP, 6)
	assert.Equal(t, entity.OrderStatusPending, order.Status)
	assert.Equal(t, entity.PaymentMethodCOD, order.PaymentMethod)
	assert.InDelta(t, 140.0, order.TotalAmount, 0.001)
	assert.Equal(t, "560001", order.Pincode)

	stored, err := env.orderRepo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, stored.Items, 2)
	assert.Equal(t, 1, stored.Items[1].Quantity, "missing quantity counts as one")

	notifications, err := env.notificationRepo.FindByFarmer(ctx, "ravi")
	require.NoError(t, err)
	require.Len(t, notifications, 1, "only the farmer product notifies")
	assert.Equal(t, "FP00000001", notifications[0].ProductID)
	assert.Equal(t, "Name of asha", notifications[0].CustomerName)
	assert.Equal(t, order.ID, notifications[0].OrderID)

	env.publisher.AssertExpectations(t)
	require.NotNil(t, published)
	assert.Equal(t, constants.EventOrderPlaced, published.Type)
	assert.Equal(t, []string{"ravi"}, published.FarmerAccounts)
}

func TestOrderService_PlaceOrderRejections(t *testing.T) {
	env := newTestEnv(t)
	srv := env.orderService()
	ctx := context.Background()

	require.NoError(t, env.userRepo.CreateDetails(ctx, &entity.UserDetails{Username: "partial", Name: "Partial"}))

	tests := []struct {
		name  string
		input *usecase.PlaceOrderInput
		want  error
	}{
		{"anonymous", &usecase.PlaceOrderInput{Cart: mixedCart}, domainerrors.ErrUnauthorized},
		{"empty cart", &usecase.PlaceOrderInput{Username: "partial"}, domainerrors.ErrCartEmpty},
		{"incomplete details", &usecase.PlaceOrderInput{Username: "partial", Cart: mixedCart}, domainerrors.ErrDeliveryDetailsMissing},
		{"no details row", &usecase.PlaceOrderInput{Username: "ghost", Cart: mixedCart}, domainerrors.ErrDeliveryDetailsMissing},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := srv.PlaceOrder(ctx, tt.input)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	orders, err := env.orderRepo.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, orders)
	env.publisher.AssertNotCalled(t, "PublishOrderEvent", mock.Anything, mock.Anything)
}

func TestOrderService_CreateOrder(t *testing.T) {
	env := newTestEnv(t)
	srv := env.orderService()
	ctx := context.Background()
	require.NoError(t, env.userRepo.CreateDetails(ctx, &entity.UserDetails{Username: "partial"}))
	env.expectPublish(constants.EventOrderPlaced)

	out, err := srv.CreateOrder(ctx, &usecase.CreateOrderInput{Username: "partial", Cart: mixedCart[1:]})
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentMethodCOD, out.Order.PaymentMethod)
	assert.Equal(t, entity.OrderStatusPending, out.Order.Status)

	_, err = srv.CreateOrder(ctx, &usecase.CreateOrderInput{Username: "partial"})
	assert.ErrorIs(t, err, domainerrors.ErrCartItemsMissing)

	_, err = srv.CreateOrder(ctx, &usecase.CreateOrderInput{Username: "ghost", Cart: mixedCart})
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}

func TestOrderService_ReplayedIdempotencyKey(t *testing.T) {
	env := newTestEnv(t)
	srv := env.orderService()
	ctx := context.Background()
	env.seedUser(t, "asha", entity.LoginTypeCustomer)
	env.expectPublish(constants.EventOrderPlaced)

	input := &usecase.PlaceOrderInput{Username: "asha", Cart: mixedCart, IdempotencyKey: "checkout-1"}
	_, err := srv.PlaceOrder(ctx, input)
	require.NoError(t, err)

	_, err = srv.PlaceOrder(ctx, input)
	assert.ErrorIs(t, err, domainerrors.ErrDuplicateRequest)

	orders, err := env.orderRepo.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, orders, 1)
}

func TestOrderService_FailedOrderReleasesKey(t *testing.T) {
	env := newTestEnv(t)
	srv := env.orderService()
	ctx := context.Background()
	env.expectPublish(constants.EventOrderPlaced)

	input := &usecase.PlaceOrderInput{Username: "asha", Cart: mixedCart, IdempotencyKey: "checkout-2"}
	_, err := srv.PlaceOrder(ctx, input)
	require.ErrorIs(t, err, domainerrors.ErrDeliveryDetailsMissing)

	env.seedUser(t, "asha", entity.LoginTypeCustomer)
	_, err = srv.PlaceOrder(ctx, input)
	assert.NoError(t, err)
}

func TestOrderService_CreatePaymentOrder(t *testing.T) {
	env := newTestEnv(t)
	srv := env.orderService()
	ctx := context.Background()

	env.gateway.On("CreateOrder", mock.Anything, int64(49950)).
		Return(&service.GatewayOrder{ID: "order_1", Amount: 49950, Currency: "INR"}, nil).Once()

	order, err := srv.CreatePaymentOrder(ctx, 499.5)
	require.NoError(t, err)
	assert.Equal(t, "order_1", order.ID)

	_, err = srv.CreatePaymentOrder(ctx, 0)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	env.gateway.On("CreateOrder", mock.Anything, int64(100)).Return(nil, errors.New("provider down")).Once()
	_, err = srv.CreatePaymentOrder(ctx, 1)
	assert.ErrorIs(t, err, domainerrors.ErrPaymentGateway)

	env.gateway.AssertExpectations(t)
}

func TestOrderService_VerifyPayment(t *testing.T) {
	payment := service.PaymentVerification{OrderID: "order_1", Signature: "sig"}

	t.Run("records paid online order", func(t *testing.T) {
		env := newTestEnv(t)
		env.seedUser(t, "asha", entity.LoginTypeCustomer)
		env.gateway.On("VerifyPayment", mock.Anything, payment).Return(true, nil)
		env.expectPublish(constants.EventOrderPlaced)

		out, err := env.orderService().VerifyPayment(context.Background(), &usecase.VerifyPaymentInput{
			Username: "asha", Payment: payment, Cart: mixedCart,
		})
		require.NoError(t, err)
		assert.Equal(t, entity.OrderStatusPaid, out.Order.Status)
		assert.Equal(t, entity.PaymentMethodOnline, out.Order.PaymentMethod)
		assert.True(t, strings.HasPrefix(out.Order.PaymentID, "DUMMY_"))
		assert.Len(t, out.Order.PaymentID, 16)
	})

	t.Run("rejects bad signature", func(t *testing.T) {
		env := newTestEnv(t)
		env.gateway.On("VerifyPayment", mock.Anything, payment).Return(false, nil)

		_, err := env.orderService().VerifyPayment(context.Background(), &usecase.VerifyPaymentInput{
			Username: "asha", Payment: payment, Cart: mixedCart,
		})
		assert.ErrorIs(t, err, domainerrors.ErrPaymentVerificationFailed)
	})

	t.Run("empty cart", func(t *testing.T) {
		env := newTestEnv(t)
		env.gateway.On("VerifyPayment", mock.Anything, payment).Return(true, nil)

		_, err := env.orderService().VerifyPayment(context.Background(), &usecase.VerifyPaymentInput{Username: "asha", Payment: payment})
		assert.ErrorIs(t, err, domainerrors.ErrCartItemsMissing)
	})

	t.Run("storefront verifies without a cart", func(t *testing.T) {
		env := newTestEnv(t)
		env.cfg.Env.Edition = config.EditionStorefront
		env.gateway.On("VerifyPayment", mock.Anything, payment).Return(true, nil)

		out, err := env.orderService().VerifyPayment(context.Background(), &usecase.VerifyPaymentInput{Payment: payment})
		require.NoError(t, err)
		assert.Nil(t, out.Order)
	})
}

func TestOrderService_InvoiceAndDeliveryQR(t *testing.T) {
	env := newTestEnv(t)
	srv := env.orderService()
	ctx := context.Background()
	order := env.seedOrder(t, "asha", entity.OrderStatusPending,
		&entity.OrderItem{ProductID: "7", ProductName: "Rice", Quantity: 1, Price: 60})

	owner := &entity.Principal{Username: "asha", Role: entity.RoleCustomer}
	stranger := &entity.Principal{Username: "mallory", Role: entity.RoleCustomer}
	admin := &entity.Principal{Username: "admin", Role: entity.RoleAdmin}

	invoice, err := srv.Invoice(ctx, owner, order.ID)
	require.NoError(t, err)
	assert.Len(t, invoice.Items, 1)

	_, err = srv.Invoice(ctx, admin, order.ID)
	assert.NoError(t, err)

	_, err = srv.Invoice(ctx, stranger, order.ID)
	assert.ErrorIs(t, err, domainerrors.ErrOrderNotFound)

	_, err = srv.Invoice(ctx, owner, order.ID+100)
	assert.ErrorIs(t, err, domainerrors.ErrOrderNotFound)

	png, err := srv.DeliveryQR(ctx, owner, order.ID)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))

	_, err = srv.DeliveryQR(ctx, admin, order.ID)
	assert.ErrorIs(t, err, domainerrors.ErrOrderNotFound)
}
