package usecase

import (
	"context"
	"io"

	"agriconnect/internal/domain/entity"
)

// ImageUpload is an optional file attached to a post.
type ImageUpload struct {
	Filename string
	Content  io.Reader
}

// CreatePostInput opens a forum thread.
type CreatePostInput struct {
	Username string
	Title    string
	Content  string
	Image    *ImageUpload
}

// CommunityUsecase defines forum operations.
type CommunityUsecase interface {
	ListPosts(ctx context.Context) ([]*entity.CommunityPost, error)
	CreatePost(ctx context.Context, input *CreatePostInput) (*entity.CommunityPost, error)
	Reply(ctx context.Context, username string, postID uint, content string) (*entity.CommunityReply, error)
	// DeletePost removes a post, its replies and its image. Only the author may delete.
	DeletePost(ctx context.Context, username string, postID uint) error
}
