package routes

import (
	"github.com/blogify/blogify/cmd/blogify/container"
	"github.com/blogify/blogify/cmd/blogify/handlers"
	"github.com/blogify/blogify/cmd/blogify/middleware"
	"github.com/labstack/echo/v4"
)

// RegisterBlogRoutes registers the home page and all post/comment routes
func RegisterBlogRoutes(e *echo.Echo, c *container.Container) {
	home := handlers.NewHomeHandler(c.PostService)
	h := handlers.NewBlogHandler(c.PostService, c.CommentService, c.Components.Logger)

	e.GET("/", home.Home)

	blog := e.Group("/blog")
	{
		blog.GET("/add-new", h.AddNew)
		blog.GET("/:id", h.GetBlog) // anonymous allowed

		// Writes carry the per-user rate limit
		rl := middleware.RateLimitWrites(c.RateLimiter, c.Components.Config.RateLimit, c.Components.Logger)
		blog.POST("", h.CreateBlog, rl)
		blog.POST("/comment/:blogId", h.CreateComment, rl)
	}
}
