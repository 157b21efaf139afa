// Package server contains the HTTP handlers and route wiring for the API.
package server

import (
	"context"
	"fmt"
	"time"

	"pinboard/internal/cache"
	"pinboard/internal/config"
	"pinboard/internal/database"
	"pinboard/internal/middleware"
	"pinboard/internal/repository"
	"pinboard/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	promMiddleware *fiberprometheus.FiberPrometheus
	userRepo       repository.UserRepository
	ticketRepo     repository.TicketRepository
	newsRepo       repository.NewsRepository
	mediaRepo      repository.MediaRepository
	ticketService  *service.TicketService
	newsService    *service.NewsService
	mediaService   *service.MediaService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)

	return NewServerWithDeps(cfg, db, cache.GetClient())
}

// NewServerWithDeps creates a Server using already-initialized
// dependencies. Use this in tests or when a bootstrap layer
// establishes DB/Redis itself.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	userRepo := repository.NewUserRepository(db)
	ticketRepo := repository.NewTicketRepository(db)
	newsRepo := repository.NewNewsRepository(db)
	mediaRepo := repository.NewMediaRepository(db)

	prom := middleware.InitMetrics("pinboard-api")

	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: prom,
		userRepo:       userRepo,
		ticketRepo:     ticketRepo,
		newsRepo:       newsRepo,
		mediaRepo:      mediaRepo,
	}
	server.ticketService = service.NewTicketService(ticketRepo, userRepo)
	server.newsService = service.NewNewsService(newsRepo, userRepo)
	server.mediaService = service.NewMediaService(
		mediaRepo, newsRepo, userRepo,
		service.DiskStore{Dir: cfg.UploadDir},
		cfg.PublicBaseURL,
	)

	return server, nil
}

// Shutdown releases server-held resources after the HTTP listener has
// stopped.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			return err
		}
	}
	if s.db != nil {
		sqlDB, err := s.db.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
	return nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Context middleware to propagate request ID and user ID
	app.Use(middleware.ContextMiddleware())

	// Prometheus metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	// Structured logging (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	if s.config.TracingEnabled {
		app.Use(middleware.TracingMiddleware())
	}

	// CORS runs before middlewares that can short-circuit (e.g. the
	// limiter) so browser clients still get headers on error responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}
	app.Get("/metrics/dashboard", monitor.New(monitor.Config{
		Title: "Pinboard Metrics Dashboard",
	}))

	// Uploaded images are served straight off the upload root.
	app.Static("/uploads", s.config.UploadDir)

	authRequired := middleware.AuthRequired(s.config.JWTSecret)

	tickets := app.Group("/tickets", authRequired)
	tickets.Post("/", middleware.RateLimit(
		s.redis, 20, time.Minute, "create_ticket"), s.CreateTicket)
	// Specific routes before the generic patch
	tickets.Patch("/markAsResolved", s.BulkResolveTickets)
	tickets.Patch("/", s.PatchTicket)
	tickets.Get("/:userId", s.GetUserTickets)

	news := app.Group("/news", authRequired)
	news.Post("/upload/latestNewsImage", middleware.RateLimit(
		s.redis, 10, time.Minute, "upload_image"), s.UploadNewsImage)
	// Specific routes before the generic ones
	news.Get("/myPosts/:userId", s.GetMyNewsPosts)
	news.Get("/likeandfavnews", s.GetLikedAndFavNews)
	news.Post("/like/:newsId", s.ToggleLike)
	news.Post("/fav/:newsId", s.ToggleFav)
	news.Post("/", middleware.RateLimit(
		s.redis, 10, time.Minute, "create_news"), s.CreateNewsPost)
	news.Get("/", s.GetNewsFeed)
	news.Delete("/:newsId", s.DeleteNewsPost)

	// Full-wipe escape hatches for local development only.
	if s.config.MaintenanceRoutes && !s.config.IsProduction() {
		tickets.Delete("/", s.DeleteAllTickets)
		news.Delete("/", s.DeleteAllNewsPosts)
	}
}
