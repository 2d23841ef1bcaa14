package routes

import (
	"github.com/blogify/blogify/cmd/blogify/container"
	"github.com/blogify/blogify/cmd/blogify/handlers"
	"github.com/labstack/echo/v4"
)

// RegisterUserRoutes registers the account routes that issue and clear
// the credential cookie
func RegisterUserRoutes(e *echo.Echo, c *container.Container) {
	h := handlers.NewUserHandler(c.UserService, c.Components.Config.Auth, c.Components.Logger)

	user := e.Group("/user")
	{
		user.GET("/signin", h.SignInForm)
		user.GET("/signup", h.SignUpForm)
		user.POST("/signin", h.SignIn)
		user.POST("/signup", h.SignUp)
		user.GET("/logout", h.Logout)
	}
}
