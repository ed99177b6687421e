package handler

import (
	"net/http"

	"agriconnect/internal/delivery/http/response"
	"agriconnect/internal/usecase"
	"agriconnect/internal/util"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type productRatingRequest struct {
	ProductID flexString `json:"product_id"`
	Rating    flexNumber `json:"rating"`
	Comment   string     `json:"comment"`
}

type farmerRatingRequest struct {
	Rating  flexNumber `json:"rating"`
	Comment string     `json:"comment"`
}

// RatingHandler serves product and farmer reviews.
type RatingHandler struct {
	uc usecase.RatingUsecase
}

// NewRatingHandler is the constructor for RatingHandler, injected by Fx.
func NewRatingHandler(uc usecase.RatingUsecase) *RatingHandler {
	return &RatingHandler{uc: uc}
}

// SubmitProductRating reviews a purchased product.
func (h *RatingHandler) SubmitProductRating(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}

	var req productRatingRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid rating input")
	}

	if err := h.uc.SubmitProductRating(c.Request().Context(), principal.Username, &usecase.SubmitProductRatingInput{
		ProductID: string(req.ProductID),
		Rating:    int(req.Rating),
		Comment:   req.Comment,
	}); err != nil {
		return errors.WithStack(err)
	}

	return response.Flat(c, http.StatusOK, "Rating submitted successfully", nil)
}

// SubmitFarmerRating reviews the farmer named in the path.
func (h *RatingHandler) SubmitFarmerRating(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}

	var req farmerRatingRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid rating input")
	}

	if err := h.uc.SubmitFarmerRating(c.Request().Context(), principal.Username, &usecase.SubmitFarmerRatingInput{
		FarmerUsername: c.Param("username"),
		Rating:         int(req.Rating),
		Comment:        req.Comment,
	}); err != nil {
		return errors.WithStack(err)
	}

	return response.Flat(c, http.StatusOK, "Rating submitted successfully", nil)
}

// FarmerRating returns the average and the reviews of a farmer.
func (h *RatingHandler) FarmerRating(c echo.Context) error {
	out, err := h.uc.FarmerRating(c.Request().Context(), c.Param("username"))
	if err != nil {
		return errors.WithStack(err)
	}

	ratings := make([]farmerRatingView, 0, len(out.Ratings))
	for _, r := range out.Ratings {
		ratings = append(ratings, farmerRatingView{
			CustomerUsername: r.CustomerUsername,
			Rating:           r.Rating,
			Comment:          r.Comment,
			CreatedAt:        util.FormatDisplayTime(r.CreatedAt),
		})
	}

	return response.Flat(c, http.StatusOK, "", response.Fields{
		"farmer":        c.Param("username"),
		"avg_rating":    out.Summary.Average,
		"total_ratings": out.Summary.Count,
		"ratings":       ratings,
	})
}
