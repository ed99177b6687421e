package handler

import (
	"net/http"

	"agriconnect/internal/delivery/http/response"
	"agriconnect/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type bookSoilTestRequest struct {
	FarmLocation  string     `json:"farm_location"`
	FarmSize      flexString `json:"farm_size"`
	ContactNumber string     `json:"contact_number"`
	PreferredDate string     `json:"preferred_date"`
	TestType      string     `json:"test_type"`
}

// SoilTestHandler books field soil tests.
type SoilTestHandler struct {
	uc usecase.SoilTestUsecase
}

// NewSoilTestHandler is the constructor for SoilTestHandler, injected by Fx.
func NewSoilTestHandler(uc usecase.SoilTestUsecase) *SoilTestHandler {
	return &SoilTestHandler{uc: uc}
}

// Book records a soil test request for the caller.
func (h *SoilTestHandler) Book(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}

	var req bookSoilTestRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid booking input")
	}

	booking, err := h.uc.Book(c.Request().Context(), principal.Username, &usecase.BookSoilTestInput{
		FarmLocation:  req.FarmLocation,
		FarmSize:      string(req.FarmSize),
		ContactNumber: req.ContactNumber,
		PreferredDate: req.PreferredDate,
		TestType:      req.TestType,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Flat(c, http.StatusOK, "Soil test booked successfully", response.Fields{"booking_id": booking.BookingID})
}
