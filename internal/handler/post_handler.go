package handler

import (
	stderrors "errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"blogapi/internal/errors"
	"blogapi/internal/hateoas"
	"blogapi/internal/middleware"
	"blogapi/internal/model"
	"blogapi/internal/service"
)

const createdAtLayout = "2006-01-02 15:04:05"

// PostHandler handles blog post endpoints.
type PostHandler struct {
	posts       service.PostService
	credentials service.CredentialService
}

// NewPostHandler creates a new blog post handler.
func NewPostHandler(posts service.PostService, credentials service.CredentialService) *PostHandler {
	return &PostHandler{posts: posts, credentials: credentials}
}

// CreatePostRequest represents a new blog post.
type CreatePostRequest struct {
	Content string `json:"content"`
}

// UpdatePostRequest represents a partial update. A missing or empty
// content leaves the post unchanged.
type UpdatePostRequest struct {
	Content *string `json:"content"`
}

// CreatePostResponse is returned after a post was stored.
type CreatePostResponse struct {
	ID      uint   `json:"id"`
	Message string `json:"message"`
}

// PostResponse is the representation of a single post.
type PostResponse struct {
	ID        uint           `json:"id"`
	Author    string         `json:"author"`
	Content   string         `json:"content"`
	CreatedAt string         `json:"created_at"`
	Links     []hateoas.Link `json:"links"`
}

// PostListResponse is the representation of the post collection.
type PostListResponse struct {
	Posts []PostResponse `json:"posts"`
	Links []hateoas.Link `json:"links"`
}

func toPostResponse(post *model.BlogPost, viewerID uint) PostResponse {
	return PostResponse{
		ID:        post.ID,
		Author:    post.Author,
		Content:   post.Content,
		CreatedAt: post.CreatedAt.UTC().Format(createdAtLayout),
		Links:     hateoas.ForPost(post.ID, post.IsOwnedBy(viewerID)),
	}
}

// parsePostID treats any id that is not a positive integer as unknown.
func parsePostID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.ErrPostNotFound
	}
	return uint(id), nil
}

// Create godoc
// @Summary Create a blog post
// @Tags blog
// @Accept json
// @Produce json
// @Param request body CreatePostRequest true "Post content"
// @Success 200 {object} CreatePostResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /blog [post]
func (h *PostHandler) Create(c echo.Context) error {
	sess := middleware.CurrentSession(c)

	var req CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return errors.ErrInvalidRequest
	}

	ctx := c.Request().Context()
	user, err := h.credentials.GetUser(ctx, sess.UserID)
	if err != nil {
		if stderrors.Is(err, service.ErrUserNotFound) {
			return errors.ErrLoginRequired
		}
		return err
	}

	id, err := h.posts.Create(ctx, user.ID, user.Username, req.Content)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, CreatePostResponse{ID: id, Message: "blog post created successfully"})
}

// List godoc
// @Summary List blog posts
// @Tags blog
// @Produce json
// @Success 200 {object} PostListResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /blog [get]
func (h *PostHandler) List(c echo.Context) error {
	sess := middleware.CurrentSession(c)

	posts, err := h.posts.List(c.Request().Context())
	if err != nil {
		return err
	}

	resp := PostListResponse{
		Posts: make([]PostResponse, 0, len(posts)),
		Links: hateoas.ForCollection(sess.Authenticated()),
	}
	for i := range posts {
		resp.Posts = append(resp.Posts, toPostResponse(&posts[i], sess.UserID))
	}
	return c.JSON(http.StatusOK, resp)
}

// Get godoc
// @Summary Get a blog post
// @Tags blog
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} PostResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /blog/{id} [get]
func (h *PostHandler) Get(c echo.Context) error {
	id, err := parsePostID(c)
	if err != nil {
		return err
	}

	post, err := h.posts.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toPostResponse(post, middleware.CurrentSession(c).UserID))
}

// Update godoc
// @Summary Partially update a blog post
// @Tags blog
// @Accept json
// @Produce json
// @Param id path int true "Post ID"
// @Param request body UpdatePostRequest false "New content"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /blog/{id} [patch]
func (h *PostHandler) Update(c echo.Context) error {
	sess := middleware.CurrentSession(c)

	id, err := parsePostID(c)
	if err != nil {
		return err
	}

	var req UpdatePostRequest
	if err := c.Bind(&req); err != nil {
		return errors.ErrInvalidRequest
	}

	if err := h.posts.UpdateContent(c.Request().Context(), id, sess.UserID, req.Content); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "blog post updated successfully"})
}

// Delete godoc
// @Summary Delete a blog post
// @Tags blog
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} MessageResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /blog/{id} [delete]
func (h *PostHandler) Delete(c echo.Context) error {
	id, err := parsePostID(c)
	if err != nil {
		return err
	}

	if err := h.posts.Delete(c.Request().Context(), id, middleware.CurrentSession(c).UserID); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "blog post deleted successfully"})
}
