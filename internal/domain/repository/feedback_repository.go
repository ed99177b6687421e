package repository

import (
	"context"

	"agriconnect/internal/domain/entity"
)

// FeedbackRepository persists site feedback.
type FeedbackRepository interface {
	Create(ctx context.Context, feedback *entity.Feedback) error
}
