package handler

import (
	"net/http"

	"agriconnect/internal/delivery/http/response"
	domainerrors "agriconnect/internal/domain/errors"
	"agriconnect/internal/domain/service"
	"agriconnect/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type placeOrderRequest struct {
	Cart []cartItemRequest `json:"cart"`
}

type createOrderRequest struct {
	PaymentMethod string            `json:"payment_method"`
	Cart          []cartItemRequest `json:"cart"`
}

type paymentOrderRequest struct {
	Amount flexNumber `json:"amount"`
}

type verifyPaymentRequest struct {
	OrderID   string            `json:"razorpay_order_id"`
	PaymentID string            `json:"razorpay_payment_id"`
	Signature string            `json:"razorpay_signature"`
	Cart      []cartItemRequest `json:"cart"`
}

// OrderHandler serves checkout, invoices and delivery codes.
type OrderHandler struct {
	uc usecase.OrderUsecase
}

// NewOrderHandler is the constructor for OrderHandler, injected by Fx.
func NewOrderHandler(uc usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

// PlaceOrder checks out the cart as cash on delivery.
func (h *OrderHandler) PlaceOrder(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}

	var req placeOrderRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid cart")
	}

	out, err := h.uc.PlaceOrder(c.Request().Context(), &usecase.PlaceOrderInput{
		Username:       principal.Username,
		Cart:           toCart(req.Cart),
		IdempotencyKey: c.Request().Header.Get(HeaderIdempotencyKey),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Flat(c, http.StatusOK, "Order placed successfully!", response.Fields{
		"order_id":     out.Order.ID,
		"order_number": out.Order.OrderNumber,
		"otp":          out.Order.OTP,
	})
}

// CreateOrder records an order chosen on the payment page.
func (h *OrderHandler) CreateOrder(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}

	var req createOrderRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid order")
	}

	out, err := h.uc.CreateOrder(c.Request().Context(), &usecase.CreateOrderInput{
		Username:       principal.Username,
		PaymentMethod:  req.PaymentMethod,
		Cart:           toCart(req.Cart),
		IdempotencyKey: c.Request().Header.Get(HeaderIdempotencyKey),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Flat(c, http.StatusOK, "", response.Fields{
		"order_id":     out.Order.ID,
		"order_number": out.Order.OrderNumber,
		"otp":          out.Order.OTP,
	})
}

// CreatePaymentOrder registers a rupee amount with the payment gateway.
func (h *OrderHandler) CreatePaymentOrder(c echo.Context) error {
	var req paymentOrderRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid amount")
	}

	order, err := h.uc.CreatePaymentOrder(c.Request().Context(), float64(req.Amount))
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, order)
}

// VerifyPayment checks the gateway callback and records the paid order.
// A rejected signature answers {"success": false} with status 200.
func (h *OrderHandler) VerifyPayment(c echo.Context) error {
	var req verifyPaymentRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid payment payload")
	}

	out, err := h.uc.VerifyPayment(c.Request().Context(), &usecase.VerifyPaymentInput{
		Username: viewerName(c),
		Payment: service.PaymentVerification{
			OrderID:   req.OrderID,
			PaymentID: req.PaymentID,
			Signature: req.Signature,
		},
		Cart:           toCart(req.Cart),
		IdempotencyKey: c.Request().Header.Get(HeaderIdempotencyKey),
	})
	if errors.Is(err, domainerrors.ErrPaymentVerificationFailed) {
		return response.Failure(c, response.Fields{"error": domainerrors.ErrPaymentVerificationFailed.Message()})
	}
	if err != nil {
		return errors.WithStack(err)
	}

	if out.Order == nil {
		return response.Flat(c, http.StatusOK, "", nil)
	}

	return response.Flat(c, http.StatusOK, "", response.Fields{
		"order_id":     out.Order.ID,
		"order_number": out.Order.OrderNumber,
		"otp":          out.Order.OTP,
	})
}

// Invoice returns an order with its lines for the owner or an admin.
func (h *OrderHandler) Invoice(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}
	orderID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	order, err := h.uc.Invoice(c.Request().Context(), principal, orderID)
	if err != nil {
		return errors.WithStack(err)
	}

	view := newOrderView(order)
	view.Items = newOrderItemViews(order.Items)

	return response.Flat(c, http.StatusOK, "", response.Fields{"invoice": view})
}

// DeliveryQR renders the hand-over code of an order as a PNG.
func (h *OrderHandler) DeliveryQR(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}
	orderID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	png, err := h.uc.DeliveryQR(c.Request().Context(), principal, orderID)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}
