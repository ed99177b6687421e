package handler

import (
	"net/http"

	"agriconnect/internal/delivery/http/response"
	"agriconnect/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const imageFormField = "image"

type replyRequest struct {
	Content string `json:"content"`
}

// CommunityHandler serves the farmer forum.
type CommunityHandler struct {
	uc usecase.CommunityUsecase
}

// NewCommunityHandler is the constructor for CommunityHandler, injected by Fx.
func NewCommunityHandler(uc usecase.CommunityUsecase) *CommunityHandler {
	return &CommunityHandler{uc: uc}
}

// ListPosts returns every thread with its replies.
func (h *CommunityHandler) ListPosts(c echo.Context) error {
	posts, err := h.uc.ListPosts(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	views := make([]postView, 0, len(posts))
	for _, p := range posts {
		views = append(views, newPostView(p))
	}

	return response.Flat(c, http.StatusOK, "", response.Fields{"posts": views})
}

// CreatePost opens a thread from a multipart form with an optional image.
func (h *CommunityHandler) CreatePost(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}

	input := &usecase.CreatePostInput{
		Username: principal.Username,
		Title:    c.FormValue("title"),
		Content:  c.FormValue("content"),
	}

	// a missing file part is not an error
	if header, err := c.FormFile(imageFormField); err == nil && header.Filename != "" {
		file, err := header.Open()
		if err != nil {
			return errors.Wrap(err, "open uploaded image")
		}
		defer file.Close()

		input.Image = &usecase.ImageUpload{Filename: header.Filename, Content: file}
	}

	post, err := h.uc.CreatePost(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Flat(c, http.StatusOK, "Post created successfully!", response.Fields{"post_id": post.ID})
}

// Reply answers a thread.
func (h *CommunityHandler) Reply(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}
	postID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var req replyRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid reply input")
	}

	reply, err := h.uc.Reply(c.Request().Context(), principal.Username, postID, req.Content)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Flat(c, http.StatusOK, "Reply added successfully!", response.Fields{"reply": newReplyView(reply)})
}

// DeletePost removes a thread written by the caller.
func (h *CommunityHandler) DeletePost(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}
	postID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.DeletePost(c.Request().Context(), principal.Username, postID); err != nil {
		return errors.WithStack(err)
	}

	return response.Flat(c, http.StatusOK, "Post deleted successfully", nil)
}
