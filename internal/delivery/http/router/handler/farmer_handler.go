package handler

import (
	"net/http"

	"agriconnect/internal/delivery/http/response"
	"agriconnect/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type productRequest struct {
	Name        *string     `json:"name"`
	Category    *string     `json:"category"`
	Price       *flexNumber `json:"price"`
	Stock       *flexNumber `json:"stock"`
	Unit        *string     `json:"unit"`
	Image       *string     `json:"image"`
	Description *string     `json:"description"`
}

func (r *productRequest) price() *float64 {
	if r.Price == nil {
		return nil
	}
	v := float64(*r.Price)

	return &v
}

func (r *productRequest) stock() *int {
	if r.Stock == nil {
		return nil
	}
	v := int(*r.Stock)

	return &v
}

func deref(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}

// FarmerHandler serves the seller dashboard.
type FarmerHandler struct {
	uc usecase.FarmerUsecase
}

// NewFarmerHandler is the constructor for FarmerHandler, injected by Fx.
func NewFarmerHandler(uc usecase.FarmerUsecase) *FarmerHandler {
	return &FarmerHandler{uc: uc}
}

// AddProduct lists a new product in the home catalog.
func (h *FarmerHandler) AddProduct(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}

	var req productRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid product input")
	}

	product, err := h.uc.AddProduct(c.Request().Context(), principal.Username, &usecase.AddProductInput{
		Name:        deref(req.Name),
		Category:    deref(req.Category),
		Price:       req.price(),
		Stock:       req.stock(),
		Unit:        deref(req.Unit),
		Image:       deref(req.Image),
		Description: deref(req.Description),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Flat(c, http.StatusOK, "Product added successfully", response.Fields{"product_id": product.ID})
}

// ListProducts returns the caller's own products.
func (h *FarmerHandler) ListProducts(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}

	products, err := h.uc.ListProducts(c.Request().Context(), principal.Username)
	if err != nil {
		return errors.WithStack(err)
	}

	views := make([]farmerProductView, 0, len(products))
	for _, p := range products {
		views = append(views, newFarmerProductView(p))
	}

	return response.Flat(c, http.StatusOK, "", response.Fields{"products": views})
}

// UpdateProduct changes the provided fields of one of the caller's products.
func (h *FarmerHandler) UpdateProduct(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}

	var req productRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid product input")
	}

	if err := h.uc.UpdateProduct(c.Request().Context(), principal.Username, c.Param("id"), &usecase.UpdateProductInput{
		Name:        req.Name,
		Category:    req.Category,
		Price:       req.price(),
		Stock:       req.stock(),
		Unit:        req.Unit,
		Image:       req.Image,
		Description: req.Description,
	}); err != nil {
		return errors.WithStack(err)
	}

	return response.Flat(c, http.StatusOK, "Product updated successfully", nil)
}

// DeleteProduct removes one of the caller's products.
func (h *FarmerHandler) DeleteProduct(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}

	if err := h.uc.DeleteProduct(c.Request().Context(), principal.Username, c.Param("id")); err != nil {
		return errors.WithStack(err)
	}

	return response.Flat(c, http.StatusOK, "Product deleted successfully", nil)
}

// Notifications returns order notifications for the caller, newest first.
func (h *FarmerHandler) Notifications(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}

	notifications, err := h.uc.Notifications(c.Request().Context(), principal.Username)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Flat(c, http.StatusOK, "", response.Fields{"notifications": newFarmerNotificationViews(notifications)})
}

// MarkNotificationRead flags one notification as read.
func (h *FarmerHandler) MarkNotificationRead(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.MarkNotificationRead(c.Request().Context(), principal.Username, id); err != nil {
		return errors.WithStack(err)
	}

	return response.Flat(c, http.StatusOK, "", nil)
}

// ClearNotifications deletes every notification of the caller.
func (h *FarmerHandler) ClearNotifications(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}

	deleted, err := h.uc.ClearNotifications(c.Request().Context(), principal.Username)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Flat(c, http.StatusOK, "", response.Fields{"deleted": deleted})
}
