package repository

import (
	"context"
	"errors"

	"agriconnect/internal/domain/entity"
)

// ErrPostNotFound is returned when a post id does not exist.
var ErrPostNotFound = errors.New("community post not found")

// CommunityRepository persists forum posts and replies.
type CommunityRepository interface {
	CreatePost(ctx context.Context, post *entity.CommunityPost) error

	// FindPostByID retrieves a post without replies.
	FindPostByID(ctx context.Context, id uint) (*entity.CommunityPost, error)

	// ListPosts returns posts newest first, each with replies oldest first.
	ListPosts(ctx context.Context) ([]*entity.CommunityPost, error)

	CreateReply(ctx context.Context, reply *entity.CommunityReply) error

	// DeletePost removes a post together with its replies.
	DeletePost(ctx context.Context, id uint) error
}
