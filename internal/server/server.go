// Package server wires the HTTP layer: routing, middleware, and handlers.
package server

import (
	"context"
	"time"

	"plume/internal/config"
	"plume/internal/middleware"
	"plume/internal/repository"
	"plume/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"gorm.io/gorm"
)

// Server holds the application's HTTP server and its dependencies.
type Server struct {
	app *fiber.App
	cfg *config.Config
	db  *gorm.DB

	userService   *service.UserService
	postService   *service.PostService
	followService *service.FollowService
	feedService   *service.FeedService
	searchService *service.SearchService
}

// NewServer builds a server with repositories and services wired over the
// given database.
func NewServer(cfg *config.Config, db *gorm.DB) *Server {
	users := repository.NewUserRepository(db)
	posts := repository.NewPostRepository(db)
	follows := repository.NewFollowRepository(db)

	s := &Server{
		app: fiber.New(fiber.Config{
			AppName:               "plume",
			DisableStartupMessage: cfg.Env == "production",
		}),
		cfg:           cfg,
		db:            db,
		userService:   service.NewUserService(users, posts, follows),
		postService:   service.NewPostService(posts, users),
		followService: service.NewFollowService(follows, users),
		feedService:   service.NewFeedService(follows, posts),
		searchService: service.NewSearchService(posts),
	}

	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// App exposes the underlying Fiber app, mainly for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) setupMiddleware() {
	s.app.Use(recover.New())
	s.app.Use(requestid.New())
	s.app.Use(middleware.ContextMiddleware())
	s.app.Use(helmet.New())
	s.app.Use(middleware.StructuredLogger())
	s.app.Use(cors.New(cors.Config{
		AllowOrigins: s.cfg.AllowedOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))

	prom := middleware.InitMetrics("plume")
	prom.RegisterAt(s.app, "/metrics")
	s.app.Use(middleware.MetricsMiddleware(prom))
}

func (s *Server) setupRoutes() {
	s.app.Get("/health", s.handleHealth)
	s.app.Get("/health/ready", s.handleReady)

	api := s.app.Group("/api")

	// Brute-force protection on the credential endpoints only.
	authLimiter := limiter.New(limiter.Config{
		Max:        20,
		Expiration: time.Minute,
	})

	api.Post("/register", authLimiter, s.handleRegister)
	api.Post("/login", authLimiter, s.handleLogin)
	api.Get("/check-username", s.handleCheckUsername)
	api.Get("/check-email", s.handleCheckEmail)

	api.Get("/posts/search", middleware.OptionalAuth, s.handleSearchPosts)
	api.Post("/posts", middleware.AuthRequired, s.handleCreatePost)
	api.Get("/posts/:id", middleware.OptionalAuth, s.handleGetPost)
	api.Put("/posts/:id", middleware.AuthRequired, s.handleUpdatePost)
	api.Delete("/posts/:id", middleware.AuthRequired, s.handleDeletePost)

	api.Get("/feed", middleware.AuthRequired, s.handleFeed)

	api.Get("/profile/:username", middleware.OptionalAuth, s.handleGetProfile)
	api.Get("/profile/:username/posts", middleware.OptionalAuth, s.handleGetProfilePosts)
	api.Get("/profile/:username/followers", s.handleGetFollowers)
	api.Get("/profile/:username/following", s.handleGetFollowing)

	api.Post("/follow/:username", middleware.AuthRequired, s.handleFollow)
	api.Delete("/follow/:username", middleware.AuthRequired, s.handleUnfollow)
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (s *Server) handleReady(c *fiber.Ctx) error {
	sqlDB, err := s.db.DB()
	if err != nil || sqlDB.PingContext(c.UserContext()) != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable"})
	}
	return c.JSON(fiber.Map{"status": "ready"})
}

// Start begins listening on the configured port.
func (s *Server) Start() error {
	middleware.Logger.Info("Starting server", "port", s.cfg.Port)
	return s.app.Listen(":" + s.cfg.Port)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}
