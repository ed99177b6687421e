// Package handler contains the HTTP handlers for the marketplace.
package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	deliverycontext "agriconnect/internal/delivery/context"
	"agriconnect/internal/delivery/http/response"
	"agriconnect/internal/domain/entity"
	domainerrors "agriconnect/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// HeaderIdempotencyKey lets clients retry order creation safely.
const HeaderIdempotencyKey = "Idempotency-Key"

// HealthCheck reports that the process is serving.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "")
}

// principalFrom returns the caller set by the auth middleware.
func principalFrom(c echo.Context) (*entity.Principal, error) {
	principal, ok := deliverycontext.GetPrincipal(c)
	if !ok {
		return nil, domainerrors.ErrUnauthorized
	}

	return principal, nil
}

// viewerName is the logged-in username or empty for anonymous callers.
func viewerName(c echo.Context) string {
	if principal, ok := deliverycontext.GetPrincipal(c); ok {
		return principal.Username
	}

	return ""
}

func paramID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 0)
	if err != nil || id == 0 {
		return 0, domainerrors.ErrInvalidRequest.WithDetails(name + " must be a positive integer")
	}

	return uint(id), nil
}

// flexString accepts a JSON string or number. Cart ids come as either.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = flexString(s)

		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return errors.Wrap(err, "expected a string or number")
	}
	*f = flexString(n.String())

	return nil
}

// flexNumber accepts a JSON number or a numeric string.
type flexNumber float64

func (f *flexNumber) UnmarshalJSON(data []byte) error {
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*f = flexNumber(n)

		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return errors.Wrap(err, "expected a number")
	}
	s = strings.TrimSpace(s)
	if s == "" {
		*f = 0

		return nil
	}
	parsed, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return errors.Wrap(err, "expected a number")
	}
	*f = flexNumber(parsed)

	return nil
}

type cartItemRequest struct {
	ID    flexString `json:"id"`
	Name  string     `json:"name"`
	Price flexNumber `json:"price"`
	Qty   flexNumber `json:"qty"`
}

func toCart(items []cartItemRequest) []entity.CartItem {
	cart := make([]entity.CartItem, 0, len(items))
	for _, item := range items {
		cart = append(cart, entity.CartItem{
			ID:       string(item.ID),
			Name:     item.Name,
			Price:    float64(item.Price),
			Quantity: int(item.Qty),
		})
	}

	return cart
}
