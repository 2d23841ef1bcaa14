package main

import (
	"context"
	"fmt"
	"os"

	"github.com/blogify/blogify/cmd/blogify/container"
	appmiddleware "github.com/blogify/blogify/cmd/blogify/middleware"
	"github.com/blogify/blogify/cmd/blogify/routes"
	"github.com/blogify/blogify/cmd/blogify/web"
	"github.com/blogify/blogify/common/bootstrap"
	"github.com/blogify/blogify/common/db"
	"github.com/blogify/blogify/common/server"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

func main() {
	ctx := context.Background()

	// Load .env if present; real deployments use the environment directly
	_ = godotenv.Load()

	// Bootstrap common components (config, logger, DB, cache, telemetry)
	components, err := bootstrap.Setup(ctx, "blogify",
		bootstrap.WithDBInitHook(func(database *db.DB) error {
			return database.InitSchema(ctx)
		}),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to bootstrap blogify: %v\n", err)
		os.Exit(1)
	}
	defer components.Shutdown(ctx)

	// Initialize service container (singleton pattern - all services created once)
	serviceContainer, err := container.NewContainer(components)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize service container: %v\n", err)
		os.Exit(1)
	}

	// Initialize Echo server
	e, err := setupEcho()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize server: %v\n", err)
		os.Exit(1)
	}

	// Setup middleware; the identity resolver must run before any route
	setupMiddleware(e, serviceContainer)

	// Setup health check
	setupHealthCheck(e)

	// Register all routes
	registerRoutes(e, serviceContainer)

	// Start server
	startServer(e, components)
}

// setupEcho initializes the Echo server with the embedded view renderer
func setupEcho() (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true

	renderer, err := web.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	e.Renderer = renderer

	return e, nil
}

// setupMiddleware configures all middleware for the Echo server
func setupMiddleware(e *echo.Echo, c *container.Container) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestID())

	// Identity resolution runs on every request, before all handlers
	e.Use(appmiddleware.ResolveIdentity(
		c.Codec,
		c.UserService,
		c.Components.Config.Auth.CookieName,
		c.Components.Logger,
	))
}

// setupHealthCheck registers the health check endpoint
func setupHealthCheck(e *echo.Echo) {
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{
			"status":  "ok",
			"service": "blogify",
		})
	})
}

// registerRoutes registers all application routes using the service container
func registerRoutes(e *echo.Echo, serviceContainer *container.Container) {
	routes.RegisterBlogRoutes(e, serviceContainer)
	routes.RegisterUserRoutes(e, serviceContainer)
}

// startServer runs echo behind the graceful-shutdown wrapper; it blocks
// until a fatal error or a shutdown signal. On SIGINT/SIGTERM it returns
// nil so the deferred component cleanup in main still runs.
func startServer(e *echo.Echo, components *bootstrap.Components) {
	srv := server.New(
		components.Config.Service.Name,
		components.Config.Service.Port,
		e,
		components.Logger,
	)

	components.Logger.Info("Starting blogify", "port", components.Config.Service.Port)

	if err := srv.Start(); err != nil {
		components.Logger.Error("Server error", "error", err)
		os.Exit(1)
	}
}
