package handlers

import (
	"errors"
	"net/http"

	"github.com/blogify/blogify/cmd/blogify/middleware"
	"github.com/blogify/blogify/cmd/blogify/models"
	"github.com/blogify/blogify/cmd/blogify/service"
	"github.com/labstack/echo/v4"
)

// viewData is the payload every template receives
type viewData struct {
	User     *models.User
	Blogs    []*models.Post
	Blog     *models.Post
	Comments []*models.Comment
	Error    string
}

// withIdentity returns a viewData pre-filled with the request identity
// (nil for anonymous requests; templates branch on it)
func withIdentity(c echo.Context) viewData {
	user, _ := middleware.GetIdentity(c)
	return viewData{User: user}
}

// respondError is the single boundary adapter between pipeline error
// kinds and HTTP. The pipeline itself never sees a status code or a
// view name; everything it returns lands here.
func respondError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrUnauthenticated):
		// Browser-form service: a bare 401 dead-ends a human, so send
		// them to the sign-in page instead
		return c.Redirect(http.StatusSeeOther, "/user/signin")

	case errors.Is(err, service.ErrNotFound):
		return renderError(c, http.StatusNotFound, "That post does not exist.")

	case errors.Is(err, service.ErrInvalidInput):
		return renderError(c, http.StatusBadRequest, "Please fill in all required fields.")

	case errors.Is(err, service.ErrAssetStagingFailed):
		return renderError(c, http.StatusInternalServerError, "Error uploading the cover image. The post was not created.")

	case errors.Is(err, service.ErrPersistenceFailed):
		return renderError(c, http.StatusInternalServerError, "Error saving your changes. Please try again.")

	default:
		return renderError(c, http.StatusInternalServerError, "Something went wrong.")
	}
}

// renderError renders the error view; the underlying error never
// reaches the client
func renderError(c echo.Context, status int, message string) error {
	data := withIdentity(c)
	data.Error = message
	return c.Render(status, "error", data)
}
