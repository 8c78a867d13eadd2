// Package server contains the HTTP handlers for the application's API
// endpoints.
package server

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"cinelog/internal/cache"
	"cinelog/internal/catalog"
	"cinelog/internal/config"
	"cinelog/internal/database"
	"cinelog/internal/media"
	"cinelog/internal/middleware"
	"cinelog/internal/models"
	"cinelog/internal/repository"
	"cinelog/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus
	userRepo       repository.UserRepository
	blogRepo       repository.BlogRepository
	reviewRepo     repository.ReviewRepository
	commentRepo    repository.CommentRepository
	relationRepo   repository.RelationRepository
	movieRepo      repository.MovieRepository
	statsRepo      repository.StatsRepository
	contentService *service.ContentService
	userService    *service.UserService
	catalogClient  *catalog.Client
	posterStorage  media.Storage
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	redisClient := cache.GetClient()

	server, err := NewServerWithDeps(cfg, db, redisClient)
	if err != nil {
		return nil, err
	}

	storage, err := media.NewStorage(context.Background(), cfg)
	if err != nil {
		return nil, fmt.Errorf("object storage setup failed: %w", err)
	}
	server.posterStorage = storage

	return server, nil
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	prom := middleware.InitMetrics("cinelog-api")

	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: prom,
		userRepo:       repository.NewUserRepository(db),
		blogRepo:       repository.NewBlogRepository(db),
		reviewRepo:     repository.NewReviewRepository(db),
		commentRepo:    repository.NewCommentRepository(db),
		relationRepo:   repository.NewRelationRepository(db),
		movieRepo:      repository.NewMovieRepository(db),
		statsRepo:      repository.NewStatsRepository(db),
		catalogClient:  catalog.NewClient(cfg.MovieAPIURL),
	}

	server.contentService = service.NewContentService(
		server.blogRepo,
		server.reviewRepo,
		server.commentRepo,
		server.relationRepo,
		server.isAdminByUserID,
	)
	server.userService = service.NewUserService(
		server.userRepo,
		server.relationRepo,
		cfg.ProtectedAdminEmail,
	)

	return server, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Context Middleware to propagate Request ID and User ID
	app.Use(middleware.ContextMiddleware())

	// Prometheus Metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	// Structured Logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// CORS middleware should run before middlewares that can short-circuit
	// (e.g. limiter) so browser clients still receive CORS headers on error
	// responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173"
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
		// Never rate-limit preflight requests; they are handled by CORS.
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
	api := app.Group("/api")

	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	// Unauthenticated catalog browse
	app.Get("/free", s.GetFreeCatalog)

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/register", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "register"), s.Register)
	auth.Post("/login", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "login"), s.Login)
	auth.Post("/logout", s.AuthRequired(), s.Logout)

	// Public blog routes (browse/search)
	publicBlogs := api.Group("/blogs")
	publicBlogs.Get("/", s.GetBlogs)
	publicBlogs.Get("/search", middleware.RateLimit(
		s.redis, 10, time.Minute, "search"), s.SearchBlogs)
	publicBlogs.Get("/:id/comments", s.GetBlogComments)
	publicBlogs.Get("/:id", s.GetBlog)

	// Public review routes
	publicReviews := api.Group("/reviews")
	publicReviews.Get("/", s.GetReviews)
	publicReviews.Get("/:id/comments", s.GetReviewComments)
	publicReviews.Get("/:id", s.GetReview)

	// Protected routes
	protected := api.Group("", s.AuthRequired())

	// User routes
	users := protected.Group("/users")
	users.Get("/me", s.GetMyProfile)
	users.Put("/me", s.UpdateMyProfile)
	users.Get("/me/watchlist", s.GetMyWatchlist)
	users.Put("/me/watchlist/:movieId", s.ToggleWatchlist)
	users.Get("/:id/blogs", s.GetUserBlogs)
	users.Get("/:id/reviews", s.GetUserReviews)
	users.Get("/:id", s.GetUserProfile)

	// Protected blog routes
	blogs := protected.Group("/blogs")
	blogs.Post("/", middleware.RateLimit(
		s.redis, 5, 5*time.Minute, "create_blog"), s.CreateBlog)
	// Specific /:id/:resource routes BEFORE generic /:id route
	blogs.Put("/:id/like", s.ToggleBlogLike)
	blogs.Post("/:id/comments", middleware.RateLimit(
		s.redis, 10, time.Minute, "create_comment"), s.CreateBlogComment)
	blogs.Delete("/:id/comments/:commentId", s.DeleteBlogComment)
	blogs.Put("/:id", s.UpdateBlog)
	blogs.Delete("/:id", s.DeleteBlog)

	// Protected review routes
	reviews := protected.Group("/reviews")
	reviews.Post("/", middleware.RateLimit(
		s.redis, 5, 5*time.Minute, "create_review"), s.CreateReview)
	reviews.Put("/:id/like", s.ToggleReviewLike)
	reviews.Post("/:id/comments", middleware.RateLimit(
		s.redis, 10, time.Minute, "create_comment"), s.CreateReviewComment)
	reviews.Delete("/:id/comments/:commentId", s.DeleteReviewComment)
	reviews.Put("/:id", s.UpdateReview)
	reviews.Delete("/:id", s.DeleteReview)

	// External catalog proxy
	catalogGroup := protected.Group("/catalog")
	catalogGroup.Get("/", s.GetCatalog)
	catalogGroup.Get("/:movieId", s.GetCatalogMovie)

	// Local movie records
	movies := protected.Group("/movies")
	movies.Get("/", s.GetMovies)
	movies.Get("/:id", s.GetMovie)
	movies.Post("/", s.AdminRequired(), s.CreateMovie)
	movies.Post("/:id/poster", s.AdminRequired(), s.UploadMoviePoster)
	movies.Put("/:id", s.AdminRequired(), s.UpdateMovie)
	movies.Delete("/:id", s.AdminRequired(), s.DeleteMovie)

	// Admin routes
	admin := protected.Group("/admin", s.AdminRequired())
	admin.Get("/requests", s.GetAccessRequests)
	admin.Patch("/requests/:id/approve", s.ApproveAccessRequest)
	admin.Delete("/requests/:id/reject", s.RejectAccessRequest)
	admin.Get("/stats", s.GetAdminStats)
	admin.Get("/users", s.GetAdminUsers)
	admin.Put("/users/:id/admin", s.ToggleUserAdmin)
	admin.Delete("/users/:id", s.DeleteUser)
	admin.Post("/create-admin", s.CreateAdmin)
	admin.Get("/comments", s.GetAllComments)
	admin.Delete("/comments/:id", s.AdminDeleteComment)
	admin.Delete("/blogs/:id", s.AdminDeleteBlog)
	admin.Delete("/reviews/:id", s.AdminDeleteReview)
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		// Redis is optional: the app degrades to uncached operation.
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// AdminRequired returns middleware that rejects non-admin users with 403.
// Must be placed after AuthRequired so that userID is available in locals.
func (s *Server) AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Locals("userID").(uint)

		admin, err := s.isAdminByUserID(c.Context(), userID)
		if err != nil {
			return models.RespondWithAppError(c, models.NewInternalError(err))
		}
		if !admin {
			return models.RespondWithError(c, fiber.StatusForbidden,
				models.NewForbiddenError("Admin access required"))
		}

		return c.Next()
	}
}

// blacklistKeyPrefix namespaces revoked token IDs in redis.
const blacklistKeyPrefix = "blacklist:"

// AuthRequired returns the authentication middleware
func (s *Server) AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		tokenString := ""
		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				tokenString = parts[1]
			}
		}
		if tokenString == "" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Authorization required"))
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
			}
			return []byte(s.config.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid or expired token"))
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid token claims"))
		}

		if issuer, issuerOk := claims["iss"].(string); !issuerOk || issuer != "cinelog-api" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid token issuer"))
		}
		if audience, audienceOk := claims["aud"].(string); !audienceOk || audience != "cinelog-client" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid token audience"))
		}

		sub, ok := claims["sub"].(string)
		if !ok {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid subject claim"))
		}
		userID, err := strconv.ParseUint(sub, 10, 32)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid user ID in token"))
		}

		// Check JTI for revocation
		if jti, exists := claims["jti"].(string); exists && jti != "" {
			if s.redis != nil {
				isBlacklisted, err := s.redis.Exists(c.Context(), blacklistKeyPrefix+jti).Result()
				if err == nil && isBlacklisted > 0 {
					return models.RespondWithError(c, fiber.StatusUnauthorized,
						models.NewUnauthorizedError("Token has been revoked"))
				}
			}
			// Logout needs the jti and expiry to revoke this token.
			c.Locals("tokenJTI", jti)
		}
		if exp, expOk := claims["exp"].(float64); expOk {
			c.Locals("tokenExp", int64(exp))
		}

		// Store user ID in context
		c.Locals("userID", uint(userID))
		// Sync to UserContext for logging and downstream services
		ctx := context.WithValue(c.UserContext(), middleware.UserIDKey, uint(userID))
		c.SetUserContext(ctx)

		return c.Next()
	}
}

// optionalUserID attempts to extract userID from the Authorization header
// but does not enforce it. Public browse endpoints use it so the "liked"
// flag reflects the caller when a valid token happens to be present.
func (s *Server) optionalUserID(c *fiber.Ctx) (uint, bool) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return 0, false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return 0, false
	}

	token, err := jwt.Parse(parts[1], func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
		}
		return []byte(s.config.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return 0, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, false
	}
	sub, ok := claims["sub"].(string)
	if !ok {
		return 0, false
	}
	userID, err := strconv.ParseUint(sub, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(userID), true
}

// Start starts the server
func (s *Server) Start() error {
	app := fiber.New(fiber.Config{
		AppName: "Cinelog API",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})
	s.app = app

	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	log.Printf("Server starting on port %s...", s.config.Port)
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			log.Printf("error shutting down HTTP server: %v", err)
		}
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Printf("error closing sql DB: %v", cerr)
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			log.Printf("error closing redis: %v", rerr)
		}
	}

	log.Println("Server shutdown complete")
	return nil
}
