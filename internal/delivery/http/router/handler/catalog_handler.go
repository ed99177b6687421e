package handler

import (
	"net/http"

	"agriconnect/internal/delivery/http/response"
	"agriconnect/internal/usecase"
	"agriconnect/internal/util"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// CatalogHandler serves the product catalogs.
type CatalogHandler struct {
	uc usecase.CatalogUsecase
}

// NewCatalogHandler is the constructor for CatalogHandler, injected by Fx.
func NewCatalogHandler(uc usecase.CatalogUsecase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// FarmProducts returns the farm catalog as a bare array.
func (h *CatalogHandler) FarmProducts(c echo.Context) error {
	products, err := h.uc.FarmProducts(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, products)
}

// FarmProduct returns one farm catalog entry.
func (h *CatalogHandler) FarmProduct(c echo.Context) error {
	product, err := h.uc.FarmProduct(c.Request().Context(), c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, product)
}

// HomeProducts returns the home catalog enriched with seller details.
func (h *CatalogHandler) HomeProducts(c echo.Context) error {
	products, err := h.uc.HomeProducts(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, products)
}

// ProductPage returns a product with its reviews for the current viewer.
func (h *CatalogHandler) ProductPage(c echo.Context) error {
	page, err := h.uc.ProductPage(c.Request().Context(), c.Param("id"), viewerName(c))
	if err != nil {
		return errors.WithStack(err)
	}

	ratings := make([]productRatingView, 0, len(page.Ratings))
	for _, r := range page.Ratings {
		ratings = append(ratings, productRatingView{
			Username:  r.Username,
			Rating:    r.Rating,
			Comment:   r.Comment,
			CreatedAt: util.FormatDisplayTime(r.CreatedAt),
		})
	}

	var userRating any
	if page.UserRating != nil {
		userRating = map[string]any{"rating": page.UserRating.Rating, "comment": page.UserRating.Comment}
	}

	return response.Flat(c, http.StatusOK, "", response.Fields{
		"product":       page.Product,
		"avg_rating":    page.Summary.Average,
		"total_ratings": page.Summary.Count,
		"ratings":       ratings,
		"has_purchased": page.HasPurchased,
		"user_rating":   userRating,
	})
}

// ProductsByCategory groups in-stock farmer products by category.
func (h *CatalogHandler) ProductsByCategory(c echo.Context) error {
	grouped, err := h.uc.ProductsByCategory(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Flat(c, http.StatusOK, "", response.Fields{"products_by_category": newCategoryViews(grouped)})
}

// Dealers returns the dealers document unchanged.
func (h *CatalogHandler) Dealers(c echo.Context) error {
	dealers, err := h.uc.Dealers(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSONBlob(http.StatusOK, dealers)
}
