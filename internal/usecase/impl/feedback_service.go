package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	deliverycontext "agriconnect/internal/delivery/context"
	"agriconnect/internal/domain/entity"
	domainerrors "agriconnect/internal/domain/errors"
	"agriconnect/internal/domain/repository"
	"agriconnect/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type feedbackService struct {
	feedbackRepo repository.FeedbackRepository
	logger       *slog.Logger
}

// FeedbackServiceParams holds dependencies for FeedbackService, injected by Fx.
type FeedbackServiceParams struct {
	fx.In

	FeedbackRepo repository.FeedbackRepository
	Logger       *slog.Logger
}

// NewFeedbackService is the constructor for feedbackService.
func NewFeedbackService(params FeedbackServiceParams) usecase.FeedbackUsecase {
	return &feedbackService{
		feedbackRepo: params.FeedbackRepo,
		logger:       params.Logger,
	}
}

func (srv *feedbackService) Submit(ctx context.Context, input *usecase.SubmitFeedbackInput) (*entity.Feedback, error) {
	feedback := &entity.Feedback{
		Name:       strings.TrimSpace(input.Name),
		Email:      strings.TrimSpace(input.Email),
		Phone:      strings.TrimSpace(input.Phone),
		Rating:     input.Rating,
		Message:    strings.TrimSpace(input.Message),
		PageSource: strings.TrimSpace(input.PageSource),
		CreatedAt:  time.Now().UTC(),
	}
	if feedback.Name == "" || feedback.Email == "" || !entity.IsValidRating(feedback.Rating) {
		return nil, errors.Wrap(domainerrors.ErrInvalidFeedback, "submit feedback")
	}

	if err := srv.feedbackRepo.Create(ctx, feedback); err != nil {
		deliverycontext.GetLoggerOrDefault(ctx, srv.logger).Error("Failed to save feedback", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to save feedback")
	}

	return feedback, nil
}
