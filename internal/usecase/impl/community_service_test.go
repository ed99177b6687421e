package impl

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"strings"
	"testing"

	"agriconnect/internal/domain/entity"
	domainerrors "agriconnect/internal/domain/errors"
	"agriconnect/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPNG(t *testing.T) []byte {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 8, 8))))

	return buf.Bytes()
}

func TestCommunityService_PostLifecycle(t *testing.T) {
	env := newTestEnv(t)
	srv := env.communityService()
	ctx := context.Background()
	env.seedUser(t, "ravi", entity.LoginTypeFarmer)

	post, err := srv.CreatePost(ctx, &usecase.CreatePostInput{
		Username: "ravi",
		Title:    " Leaf curl ",
		Content:  "Any remedy?",
		Image:    &usecase.ImageUpload{Filename: "leaf.png", Content: bytes.NewReader(testPNG(t))},
	})
	require.NoError(t, err)
	assert.NotZero(t, post.ID)
	assert.Equal(t, "Leaf curl", post.Title)
	assert.Equal(t, "Name of ravi", post.AuthorName)
	require.True(t, strings.HasPrefix(post.ImagePath, "/static/uploads/"))

	key := strings.TrimPrefix(post.ImagePath, "/static/uploads/")
	exists, err := env.bucket.Exists(ctx, key)
	require.NoError(t, err)
	assert.True(t, exists)

	reply, err := srv.Reply(ctx, "asha", post.ID, " Try neem oil ")
	require.NoError(t, err)
	assert.Equal(t, "Try neem oil", reply.Content)
	assert.Equal(t, "asha", reply.AuthorName, "unknown authors fall back to the username")

	posts, err := srv.ListPosts(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "Name of ravi", posts[0].AuthorName)
	require.Len(t, posts[0].Replies, 1)
	assert.Equal(t, "asha", posts[0].Replies[0].AuthorName)

	assert.ErrorIs(t, srv.DeletePost(ctx, "asha", post.ID), domainerrors.ErrNotPostAuthor)
	require.NoError(t, srv.DeletePost(ctx, "ravi", post.ID))

	exists, err = env.bucket.Exists(ctx, key)
	require.NoError(t, err)
	assert.False(t, exists)

	posts, err = srv.ListPosts(ctx)
	require.NoError(t, err)
	assert.Empty(t, posts)

	assert.ErrorIs(t, srv.DeletePost(ctx, "ravi", post.ID), domainerrors.ErrPostNotFound)
}

func TestCommunityService_Validation(t *testing.T) {
	env := newTestEnv(t)
	srv := env.communityService()
	ctx := context.Background()

	_, err := srv.CreatePost(ctx, &usecase.CreatePostInput{Username: "ravi", Title: "Only title"})
	assert.ErrorIs(t, err, domainerrors.ErrPostFieldsRequired)

	_, err = srv.Reply(ctx, "asha", 1, "   ")
	assert.ErrorIs(t, err, domainerrors.ErrReplyContentRequired)

	_, err = srv.Reply(ctx, "asha", 42, "hello")
	assert.ErrorIs(t, err, domainerrors.ErrPostNotFound)

	big := bytes.Repeat([]byte{0}, 2<<20)
	_, err = srv.CreatePost(ctx, &usecase.CreatePostInput{
		Username: "ravi", Title: "t", Content: "c",
		Image: &usecase.ImageUpload{Filename: "huge.gif", Content: bytes.NewReader(big)},
	})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestCommunityService_IgnoresNonImageAttachment(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	post, err := env.communityService().CreatePost(ctx, &usecase.CreatePostInput{
		Username: "ravi", Title: "t", Content: "c",
		Image: &usecase.ImageUpload{Filename: "notes.txt", Content: strings.NewReader("plain text")},
	})
	require.NoError(t, err)
	assert.Empty(t, post.ImagePath)
}
