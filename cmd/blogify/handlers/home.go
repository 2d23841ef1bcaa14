package handlers

import (
	"net/http"

	"github.com/blogify/blogify/cmd/blogify/service"
	"github.com/labstack/echo/v4"
)

// HomeHandler renders the landing page
type HomeHandler struct {
	posts *service.PostService
}

// NewHomeHandler creates a new home handler
func NewHomeHandler(posts *service.PostService) *HomeHandler {
	return &HomeHandler{posts: posts}
}

// Home lists all posts, newest first
// GET /
func (h *HomeHandler) Home(c echo.Context) error {
	posts, err := h.posts.List(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}

	data := withIdentity(c)
	data.Blogs = posts
	return c.Render(http.StatusOK, "home", data)
}
