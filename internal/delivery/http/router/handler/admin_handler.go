package handler

import (
	"fmt"
	"net/http"

	"agriconnect/internal/delivery/http/response"
	"agriconnect/internal/domain/entity"
	"agriconnect/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type updateOrderStatusRequest struct {
	OrderID uint   `json:"order_id" validate:"required"`
	Status  string `json:"status" validate:"required"`
}

type updateSoilTestStatusRequest struct {
	BookingID uint   `json:"booking_id" validate:"required"`
	Status    string `json:"status" validate:"required"`
}

// AdminHandler serves the order console.
type AdminHandler struct {
	uc usecase.AdminUsecase
}

// NewAdminHandler is the constructor for AdminHandler, injected by Fx.
func NewAdminHandler(uc usecase.AdminUsecase) *AdminHandler {
	return &AdminHandler{uc: uc}
}

// Dashboard returns orders grouped by pincode and, for field admins, the inbox and soil tests.
func (h *AdminHandler) Dashboard(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}

	out, err := h.uc.Dashboard(c.Request().Context(), principal)
	if err != nil {
		return errors.WithStack(err)
	}

	groups := make([]map[string]any, 0, len(out.Groups))
	for _, g := range out.Groups {
		groups = append(groups, map[string]any{
			"pincode": g.Pincode,
			"orders":  newOrderViews(g.Orders),
		})
	}

	fields := response.Fields{
		"role":              principal.Role,
		"orders_by_pincode": groups,
		"pending_count":     out.PendingCount,
		"total_orders":      out.TotalOrders,
		"dealers":           out.Dealers,
	}
	if principal.Role == entity.RoleFieldAdmin {
		fields["notifications"] = emptyIfNil(out.Notifications)
		fields["soil_tests"] = newSoilTestViews(out.SoilTests)
	}

	return response.Flat(c, http.StatusOK, "", fields)
}

// ListOrders returns every order newest first.
func (h *AdminHandler) ListOrders(c echo.Context) error {
	orders, err := h.uc.ListOrders(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Flat(c, http.StatusOK, "", response.Fields{"orders": newOrderViews(orders)})
}

// OrderItems returns the lines of one order.
func (h *AdminHandler) OrderItems(c echo.Context) error {
	orderID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	items, err := h.uc.OrderItems(c.Request().Context(), orderID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Flat(c, http.StatusOK, "", response.Fields{"items": newOrderItemViews(items)})
}

// UpdateOrderStatus moves an order along its lifecycle.
func (h *AdminHandler) UpdateOrderStatus(c echo.Context) error {
	var req updateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid data")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	out, err := h.uc.UpdateOrderStatus(c.Request().Context(), &usecase.UpdateOrderStatusInput{
		OrderID: req.OrderID,
		Status:  entity.OrderStatus(req.Status),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	fields := response.Fields{}
	if out.RefundMessage != "" {
		fields["refund_message"] = out.RefundMessage
	}

	return response.Flat(c, http.StatusOK, fmt.Sprintf("Order status updated to %s", out.Status), fields)
}

// UpdateSoilTestStatus changes the state of a soil test booking.
func (h *AdminHandler) UpdateSoilTestStatus(c echo.Context) error {
	var req updateSoilTestStatusRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid data")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	status := entity.SoilTestStatus(req.Status)
	if err := h.uc.UpdateSoilTestStatus(c.Request().Context(), req.BookingID, status); err != nil {
		return errors.WithStack(err)
	}

	return response.Flat(c, http.StatusOK, fmt.Sprintf("Soil test booking status updated to %s", status), nil)
}

// Notifications returns the field admin inbox.
func (h *AdminHandler) Notifications(c echo.Context) error {
	notifications, err := h.uc.Notifications(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Flat(c, http.StatusOK, "", response.Fields{
		"notifications": emptyIfNil(notifications),
		"count":         len(notifications),
	})
}

func emptyIfNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}

	return items
}
