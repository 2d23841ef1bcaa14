package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/blogify/blogify/cmd/blogify/middleware"
	"github.com/blogify/blogify/cmd/blogify/service"
	"github.com/blogify/blogify/common/logger"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// maxCoverBytes caps the in-memory cover buffer (10 MiB)
const maxCoverBytes = 10 << 20

// BlogHandler handles post and comment requests
type BlogHandler struct {
	posts    *service.PostService
	comments *service.CommentService
	log      *logger.Logger
}

// NewBlogHandler creates a new blog handler
func NewBlogHandler(posts *service.PostService, comments *service.CommentService, log *logger.Logger) *BlogHandler {
	return &BlogHandler{
		posts:    posts,
		comments: comments,
		log:      log,
	}
}

// AddNew renders the post composer
// GET /blog/add-new
func (h *BlogHandler) AddNew(c echo.Context) error {
	if _, ok := middleware.GetIdentity(c); !ok {
		return respondError(c, service.ErrUnauthenticated)
	}
	return c.Render(http.StatusOK, "addBlog", withIdentity(c))
}

// GetBlog renders a post's detail view with its comments.
// Anonymous requests are allowed.
// GET /blog/:id
func (h *BlogHandler) GetBlog(c echo.Context) error {
	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondError(c, service.ErrNotFound)
	}

	post, err := h.posts.Get(c.Request().Context(), postID)
	if err != nil {
		return respondError(c, err)
	}

	comments, err := h.comments.ListByPost(c.Request().Context(), postID)
	if err != nil {
		return respondError(c, err)
	}

	data := withIdentity(c)
	data.Blog = post
	data.Comments = comments
	return c.Render(http.StatusOK, "blog", data)
}

// CreateBlog runs the ingestion pipeline for a multipart submission and
// redirects to the new post's detail view
// POST /blog
func (h *BlogHandler) CreateBlog(c echo.Context) error {
	author, _ := middleware.GetIdentity(c)

	input := service.CreatePostInput{
		Title:  c.FormValue("title"),
		Body:   c.FormValue("body"),
		Author: author,
	}

	image, mimeType, err := readCoverImage(c)
	if err != nil {
		h.log.Warn("cover image read failed", "error", err)
		return renderError(c, http.StatusBadRequest, "Could not read the uploaded cover image.")
	}
	input.Image = image
	input.ImageMIME = mimeType

	post, err := h.posts.Create(c.Request().Context(), input)
	if err != nil {
		return respondError(c, err)
	}

	return c.Redirect(http.StatusSeeOther, fmt.Sprintf("/blog/%s", post.PostID))
}

// CreateComment attaches a comment to a post and redirects back to it
// POST /blog/comment/:blogId
func (h *BlogHandler) CreateComment(c echo.Context) error {
	postID, err := uuid.Parse(c.Param("blogId"))
	if err != nil {
		return respondError(c, service.ErrNotFound)
	}

	author, _ := middleware.GetIdentity(c)

	if _, err := h.comments.Create(c.Request().Context(), postID, c.FormValue("content"), author); err != nil {
		return respondError(c, err)
	}

	return c.Redirect(http.StatusSeeOther, fmt.Sprintf("/blog/%s", postID))
}

// readCoverImage pulls the optional coverImage file out of the
// multipart form. Returns nil data when no file was submitted.
func readCoverImage(c echo.Context) ([]byte, string, error) {
	fileHeader, err := c.FormFile("coverImage")
	if err != nil {
		// Only a truly absent file means "no cover". A malformed part that
		// declared one must fail the submission, not silently drop the cover.
		if errors.Is(err, http.ErrMissingFile) {
			return nil, "", nil
		}
		return nil, "", fmt.Errorf("read multipart form: %w", err)
	}

	if fileHeader.Size == 0 {
		return nil, "", nil
	}
	if fileHeader.Size > maxCoverBytes {
		return nil, "", fmt.Errorf("cover image exceeds %d bytes", maxCoverBytes)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, "", fmt.Errorf("open cover image: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxCoverBytes+1))
	if err != nil {
		return nil, "", fmt.Errorf("read cover image: %w", err)
	}

	return data, fileHeader.Header.Get("Content-Type"), nil
}
