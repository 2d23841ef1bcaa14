package container

import (
	"github.com/blogify/blogify/cmd/blogify/repository"
	"github.com/blogify/blogify/cmd/blogify/service"
	"github.com/blogify/blogify/common/auth"
	"github.com/blogify/blogify/common/bootstrap"
	"github.com/blogify/blogify/common/cache"
	"github.com/blogify/blogify/common/clients"
	"github.com/blogify/blogify/common/ratelimit"
	rediscommon "github.com/blogify/blogify/common/redis"
	"github.com/redis/go-redis/v9"
)

// Container holds all initialized services and repositories (singleton pattern)
type Container struct {
	// Components
	Components  *bootstrap.Components
	Redis       *rediscommon.Client
	RateLimiter *ratelimit.Limiter
	Codec       *auth.Codec
	Stager      clients.AssetStager

	// Repositories
	UserRepo    *repository.UserRepository
	PostRepo    *repository.PostRepository
	CommentRepo *repository.CommentRepository

	// Services
	UserService    *service.UserService
	PostService    *service.PostService
	CommentService *service.CommentService
}

// NewContainer initializes all services and repositories once
func NewContainer(components *bootstrap.Components) (*Container, error) {
	cfg := components.Config

	// Create Redis client and wrap it for instrumentation
	redisRaw := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	redisClient := rediscommon.NewClient(redisRaw, components.Logger)

	// Prefer the Redis-backed post cache over the bootstrap default
	var postCache cache.Cache = components.Cache
	if cfg.Cache.Enabled {
		postCache = cache.NewRedisCache(redisClient, components.Logger)
	}

	// Credential codec: the process-wide secret, read-only after startup
	codec := auth.NewCodec(cfg.Auth.Secret, cfg.Auth.TokenTTL)

	// Remote object-store client
	stager := clients.NewCloudinaryClient(cfg.Storage, components.Logger)

	// Write rate limiter
	limiter := ratelimit.NewLimiter(redisRaw, components.Logger)

	// Initialize repositories
	userRepo := repository.NewUserRepository(components.DB)
	postRepo := repository.NewPostRepository(components.DB)
	commentRepo := repository.NewCommentRepository(components.DB)

	// Initialize services (bottom-up: dependencies first)
	userService := service.NewUserService(userRepo, codec, components.Logger)
	postService := service.NewPostService(
		postRepo,
		stager,
		postCache,
		cfg.Storage.Folder,
		cfg.Cache.DefaultTTL,
		components.Logger,
	)
	commentService := service.NewCommentService(commentRepo, components.Logger)

	return &Container{
		Components:     components,
		Redis:          redisClient,
		RateLimiter:    limiter,
		Codec:          codec,
		Stager:         stager,
		UserRepo:       userRepo,
		PostRepo:       postRepo,
		CommentRepo:    commentRepo,
		UserService:    userService,
		PostService:    postService,
		CommentService: commentService,
	}, nil
}
