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
	"agriconnect/internal/domain/service"
	"agriconnect/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type communityService struct {
	txManager     repository.TransactionManager
	communityRepo repository.CommunityRepository
	userRepo      repository.UserRepository
	imageStore    service.ImageStore
	logger        *slog.Logger
}

// CommunityServiceParams holds dependencies for CommunityService, injected by Fx.
type CommunityServiceParams struct {
	fx.In

	TxManager     repository.TransactionManager
	CommunityRepo repository.CommunityRepository
	UserRepo      repository.UserRepository
	ImageStore    service.ImageStore
	Logger        *slog.Logger
}

// NewCommunityService is the constructor for communityService.
func NewCommunityService(params CommunityServiceParams) usecase.CommunityUsecase {
	return &communityService{
		txManager:     params.TxManager,
		communityRepo: params.CommunityRepo,
		userRepo:      params.UserRepo,
		imageStore:    params.ImageStore,
		logger:        params.Logger,
	}
}

func (srv *communityService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListPosts returns every thread with author names resolved in one lookup.
func (srv *communityService) ListPosts(ctx context.Context) ([]*entity.CommunityPost, error) {
	posts, err := srv.communityRepo.ListPosts(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list community posts")
	}

	var usernames []string
	for _, post := range posts {
		usernames = append(usernames, post.Username)
		for _, reply := range post.Replies {
			usernames = append(usernames, reply.Username)
		}
	}

	names, err := srv.authorNames(ctx, usernames)
	if err != nil {
		return nil, err
	}

	for _, post := range posts {
		post.AuthorName = names.name(post.Username)
		for _, reply := range post.Replies {
			reply.AuthorName = names.name(reply.Username)
		}
	}

	return posts, nil
}

type authorNames map[string]*entity.UserDetails

func (n authorNames) name(username string) string {
	if d, ok := n[username]; ok && d.Name != "" {
		return d.Name
	}

	return username
}

func (srv *communityService) authorNames(ctx context.Context, usernames []string) (authorNames, error) {
	if len(usernames) == 0 {
		return authorNames{}, nil
	}

	details, err := srv.userRepo.FindDetailsByUsernames(ctx, usernames)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load author names")
	}

	return details, nil
}

// CreatePost stores the thread; an attached image with an unknown extension is ignored.
func (srv *communityService) CreatePost(ctx context.Context, input *usecase.CreatePostInput) (*entity.CommunityPost, error) {
	post := &entity.CommunityPost{
		Username:  input.Username,
		Title:     strings.TrimSpace(input.Title),
		Content:   strings.TrimSpace(input.Content),
		CreatedAt: time.Now().UTC(),
	}
	if post.Title == "" || post.Content == "" {
		return nil, errors.Wrap(domainerrors.ErrPostFieldsRequired, "create post")
	}

	if input.Image != nil && entity.IsAllowedImage(input.Image.Filename) {
		path, err := srv.imageStore.Save(ctx, input.Image.Filename, input.Image.Content)
		switch {
		case errors.Is(err, service.ErrImageTooLarge), errors.Is(err, service.ErrUnsupportedImage):
			return nil, domainerrors.ErrValidationFailed.WithDetails(err.Error())
		case err != nil:
			srv.log(ctx).Error("Failed to store post image", slog.Any("error", err))

			return nil, errors.Wrap(domainerrors.ErrImageUploadFailed, err.Error())
		}
		post.ImagePath = path
	}

	if err := srv.communityRepo.CreatePost(ctx, post); err != nil {
		srv.deleteImage(ctx, post.ImagePath)

		return nil, errors.Wrap(err, "failed to create community post")
	}

	names, err := srv.authorNames(ctx, []string{post.Username})
	if err != nil {
		return nil, err
	}
	post.AuthorName = names.name(post.Username)

	return post, nil
}

// Reply answers an existing thread.
func (srv *communityService) Reply(ctx context.Context, username string, postID uint, content string) (*entity.CommunityReply, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, errors.Wrap(domainerrors.ErrReplyContentRequired, "reply")
	}

	if _, err := srv.findPost(ctx, postID); err != nil {
		return nil, err
	}

	reply := &entity.CommunityReply{
		PostID:    postID,
		Username:  username,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	err := srv.communityRepo.CreateReply(ctx, reply)
	if errors.Is(err, repository.ErrPostNotFound) {
		return nil, errors.Wrap(domainerrors.ErrPostNotFound, "reply")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to create community reply")
	}

	names, err := srv.authorNames(ctx, []string{username})
	if err != nil {
		return nil, err
	}
	reply.AuthorName = names.name(username)

	return reply, nil
}

// DeletePost removes a thread owned by username, then its image.
func (srv *communityService) DeletePost(ctx context.Context, username string, postID uint) error {
	var imagePath string
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		communityRepo := repoFactory.NewCommunityRepository()

		post, err := communityRepo.FindPostByID(ctx, postID)
		if errors.Is(err, repository.ErrPostNotFound) {
			return errors.Wrap(domainerrors.ErrPostNotFound, "delete post")
		}
		if err != nil {
			return errors.Wrap(err, "failed to load community post")
		}
		if post.Username != username {
			return errors.Wrap(domainerrors.ErrNotPostAuthor, "delete post")
		}

		imagePath = post.ImagePath

		return errors.Wrap(communityRepo.DeletePost(ctx, postID), "failed to delete community post")
	})
	if err != nil {
		return errors.Wrap(err, "failed to execute delete post transaction")
	}

	srv.deleteImage(ctx, imagePath)

	return nil
}

func (srv *communityService) findPost(ctx context.Context, postID uint) (*entity.CommunityPost, error) {
	post, err := srv.communityRepo.FindPostByID(ctx, postID)
	if errors.Is(err, repository.ErrPostNotFound) {
		return nil, errors.Wrap(domainerrors.ErrPostNotFound, "find post")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load community post")
	}

	return post, nil
}

func (srv *communityService) deleteImage(ctx context.Context, path string) {
	if path == "" {
		return
	}
	if err := srv.imageStore.Delete(ctx, path); err != nil {
		srv.log(ctx).Warn("Failed to delete post image", slog.String("path", path), slog.Any("error", err))
	}
}
