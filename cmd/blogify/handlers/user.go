package handlers

import (
	"errors"
	"net/http"

	"github.com/blogify/blogify/cmd/blogify/middleware"
	"github.com/blogify/blogify/cmd/blogify/service"
	"github.com/blogify/blogify/common/config"
	"github.com/blogify/blogify/common/logger"
	"github.com/labstack/echo/v4"
)

// UserHandler handles the account flow that issues the credential cookie
type UserHandler struct {
	users *service.UserService
	auth  config.AuthConfig
	log   *logger.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(users *service.UserService, auth config.AuthConfig, log *logger.Logger) *UserHandler {
	return &UserHandler{
		users: users,
		auth:  auth,
		log:   log,
	}
}

// SignInForm renders the sign-in page
// GET /user/signin
func (h *UserHandler) SignInForm(c echo.Context) error {
	return c.Render(http.StatusOK, "signin", withIdentity(c))
}

// SignUpForm renders the sign-up page
// GET /user/signup
func (h *UserHandler) SignUpForm(c echo.Context) error {
	return c.Render(http.StatusOK, "signup", withIdentity(c))
}

// SignUp creates an account, sets the credential cookie and redirects home
// POST /user/signup
func (h *UserHandler) SignUp(c echo.Context) error {
	_, token, err := h.users.SignUp(
		c.Request().Context(),
		c.FormValue("fullName"),
		c.FormValue("email"),
		c.FormValue("password"),
	)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) || errors.Is(err, service.ErrInvalidInput) {
			data := withIdentity(c)
			data.Error = err.Error()
			return c.Render(http.StatusBadRequest, "signup", data)
		}
		return respondError(c, err)
	}

	middleware.SetAuthCookie(c, h.auth.CookieName, token, int(h.auth.TokenTTL.Seconds()))
	return c.Redirect(http.StatusSeeOther, "/")
}

// SignIn verifies credentials, sets the credential cookie and redirects home
// POST /user/signin
func (h *UserHandler) SignIn(c echo.Context) error {
	_, token, err := h.users.SignIn(
		c.Request().Context(),
		c.FormValue("email"),
		c.FormValue("password"),
	)
	if err != nil {
		if errors.Is(err, service.ErrBadCredentials) {
			data := withIdentity(c)
			data.Error = "Incorrect email or password"
			return c.Render(http.StatusUnauthorized, "signin", data)
		}
		return respondError(c, err)
	}

	middleware.SetAuthCookie(c, h.auth.CookieName, token, int(h.auth.TokenTTL.Seconds()))
	return c.Redirect(http.StatusSeeOther, "/")
}

// Logout clears the credential cookie and redirects home
// GET /user/logout
func (h *UserHandler) Logout(c echo.Context) error {
	middleware.ClearAuthCookie(c, h.auth.CookieName)
	return c.Redirect(http.StatusSeeOther, "/")
}
