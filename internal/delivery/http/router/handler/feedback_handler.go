package handler

import (
	"net/http"

	"agriconnect/internal/delivery/http/response"
	"agriconnect/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type feedbackRequest struct {
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	Phone      string     `json:"phone"`
	Rating     flexNumber `json:"rating"`
	Message    string     `json:"message"`
	PageSource string     `json:"page_source"`
}

// FeedbackHandler stores site reviews.
type FeedbackHandler struct {
	uc usecase.FeedbackUsecase
}

// NewFeedbackHandler is the constructor for FeedbackHandler, injected by Fx.
func NewFeedbackHandler(uc usecase.FeedbackUsecase) *FeedbackHandler {
	return &FeedbackHandler{uc: uc}
}

// Submit records feedback. No login is needed.
func (h *FeedbackHandler) Submit(c echo.Context) error {
	var req feedbackRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid feedback input")
	}

	feedback, err := h.uc.Submit(c.Request().Context(), &usecase.SubmitFeedbackInput{
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Rating:     int(req.Rating),
		Message:    req.Message,
		PageSource: req.PageSource,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Flat(c, http.StatusOK, "Thank you for your feedback!", response.Fields{"feedback_id": feedback.ID})
}
