package database

import (
	"context"

	"agriconnect/internal/domain/entity"
	domainerrors "agriconnect/internal/domain/errors"
	"agriconnect/internal/domain/repository"
	"agriconnect/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type communityRepository struct {
	db *gorm.DB
}

// NewCommunityRepository creates the GORM backed forum repository.
func NewCommunityRepository(db *gorm.DB) repository.CommunityRepository {
	return &communityRepository{db: db}
}

func (repo *communityRepository) CreatePost(ctx context.Context, post *entity.CommunityPost) error {
	row := &model.CommunityPostModel{
		Username:  post.Username,
		Title:     post.Title,
		Content:   post.Content,
		ImagePath: post.ImagePath,
		CreatedAt: post.CreatedAt,
	}

	if err := repo.db.WithContext(ctx).Create(row).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create community post")
	}

	post.ID = row.ID
	post.CreatedAt = row.CreatedAt

	return nil
}

func (repo *communityRepository) FindPostByID(ctx context.Context, id uint) (*entity.CommunityPost, error) {
	var row model.CommunityPostModel
	if err := repo.db.WithContext(ctx).First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrPostNotFound
		}

		return nil, errors.Wrap(err, "failed to find community post")
	}

	return toPostDomain(&row), nil
}

func (repo *communityRepository) ListPosts(ctx context.Context) ([]*entity.CommunityPost, error) {
	var rows []*model.CommunityPostModel
	err := repo.db.WithContext(ctx).
		Preload("Replies", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC, id ASC") }).
		Order(newestFirst).
		Find(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list community posts")
	}

	posts := make([]*entity.CommunityPost, 0, len(rows))
	for _, row := range rows {
		posts = append(posts, toPostDomain(row))
	}

	return posts, nil
}

func (repo *communityRepository) CreateReply(ctx context.Context, reply *entity.CommunityReply) error {
	row := &model.CommunityReplyModel{
		PostID:    reply.PostID,
		Username:  reply.Username,
		Content:   reply.Content,
		CreatedAt: reply.CreatedAt,
	}

	if err := repo.db.WithContext(ctx).Create(row).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrPostNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create community reply")
	}

	reply.ID = row.ID
	reply.CreatedAt = row.CreatedAt

	return nil
}

func (repo *communityRepository) DeletePost(ctx context.Context, id uint) error {
	if err := repo.db.WithContext(ctx).Where("post_id = ?", id).Delete(&model.CommunityReplyModel{}).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete community replies")
	}

	result := repo.db.WithContext(ctx).Delete(&model.CommunityPostModel{}, id)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete community post")
	}
	if result.RowsAffected == 0 {
		return repository.ErrPostNotFound
	}

	return nil
}

func toPostDomain(row *model.CommunityPostModel) *entity.CommunityPost {
	replies := make([]*entity.CommunityReply, 0, len(row.Replies))
	for _, r := range row.Replies {
		replies = append(replies, &entity.CommunityReply{
			ID:        r.ID,
			PostID:    r.PostID,
			Username:  r.Username,
			Content:   r.Content,
			CreatedAt: r.CreatedAt,
		})
	}

	return &entity.CommunityPost{
		ID:        row.ID,
		Username:  row.Username,
		Title:     row.Title,
		Content:   row.Content,
		ImagePath: row.ImagePath,
		CreatedAt: row.CreatedAt,
		Replies:   replies,
	}
}
