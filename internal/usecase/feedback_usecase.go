package usecase

import (
	"context"

	"agriconnect/internal/domain/entity"
)

// SubmitFeedbackInput is a site review. Phone, message and page source are optional.
type SubmitFeedbackInput struct {
	Name       string
	Email      string
	Phone      string
	Rating     int
	Message    string
	PageSource string
}

// FeedbackUsecase stores site feedback.
type FeedbackUsecase interface {
	Submit(ctx context.Context, input *SubmitFeedbackInput) (*entity.Feedback, error)
}
