package database

import (
	"context"

	"agriconnect/internal/domain/entity"
	domainerrors "agriconnect/internal/domain/errors"
	"agriconnect/internal/domain/repository"
	"agriconnect/internal/infra/persistence/model"

	"gorm.io/gorm"
)

type feedbackRepository struct {
	db *gorm.DB
}

// NewFeedbackRepository creates the GORM backed feedback repository.
func NewFeedbackRepository(db *gorm.DB) repository.FeedbackRepository {
	return &feedbackRepository{db: db}
}

func (repo *feedbackRepository) Create(ctx context.Context, feedback *entity.Feedback) error {
	source := feedback.PageSource
	if source == "" {
		source = entity.DefaultPageSource
	}

	row := &model.CustomerFeedbackModel{
		Name:       feedback.Name,
		Email:      feedback.Email,
		Phone:      feedback.Phone,
		Rating:     feedback.Rating,
		Message:    feedback.Message,
		PageSource: source,
		CreatedAt:  feedback.CreatedAt,
	}

	if err := repo.db.WithContext(ctx).Create(row).Error; err != nil {
		if isCheckConstraintViolation(err) {
			return domainerrors.ErrInvalidRating
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to save feedback")
	}

	feedback.ID = row.ID
	feedback.PageSource = source
	feedback.CreatedAt = row.CreatedAt

	return nil
}
