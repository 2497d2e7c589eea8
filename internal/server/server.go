// Package server contains HTTP handlers for the application's API endpoints.
package server

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"wisdomwell/internal/auth"
	"wisdomwell/internal/cache"
	"wisdomwell/internal/config"
	"wisdomwell/internal/database"
	"wisdomwell/internal/middleware"
	"wisdomwell/internal/models"
	"wisdomwell/internal/repository"
	"wisdomwell/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
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
	wisdomRepo     repository.WisdomRepository
	hasher         *auth.PasswordHasher
	tokens         *auth.TokenService
	profileService *service.ProfileService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	redisClient := cache.GetClient()

	return NewServerWithDeps(cfg, db, redisClient)
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	userRepo := repository.NewUserRepository(db)
	wisdomRepo := repository.NewWisdomRepository(db)

	prom := middleware.InitMetrics("wisdomwell-api")

	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: prom,
		userRepo:       userRepo,
		wisdomRepo:     wisdomRepo,
		hasher:         auth.NewPasswordHasher(cfg.BcryptCost),
		tokens:         auth.NewTokenService(cfg.JWTSecret, time.Duration(cfg.JWTExpireMinutes)*time.Minute),
	}
	server.profileService = service.NewProfileService(server.userRepo)

	return server, nil
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

	// Structured logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	app.Use(cors.New(cors.Config{
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
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

	// Public auth routes
	app.Post("/register", s.Register)
	app.Post("/login", s.Login)

	// Protected routes
	app.Get("/profile", s.AuthRequired(), s.GetMyProfile)
	app.Put("/profile", s.AuthRequired(), s.UpdateMyProfile)
	app.Get("/wisdom", s.AuthRequired(), s.GetWisdom)

	// Everything else serves the SPA bundle with an index.html fallback.
	if s.config.StaticDir != "" {
		app.Static("/", s.config.StaticDir)
		index := filepath.Join(s.config.StaticDir, "index.html")
		app.Use(func(c *fiber.Ctx) error {
			if err := c.SendFile(index); err != nil {
				return c.SendStatus(fiber.StatusNotFound)
			}
			return nil
		})
	}
}

// AuthRequired enforces a valid bearer token on protected routes.
// A missing or malformed Authorization header is unauthenticated (401);
// a present token that fails verification is forbidden (403).
func (s *Server) AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Authorization required"))
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid authorization header format"))
		}

		claims, err := s.tokens.Verify(parts[1])
		if err != nil {
			return models.RespondWithError(c, fiber.StatusForbidden,
				models.NewForbiddenError("Invalid or expired token"))
		}

		userID, err := claims.UserID()
		if err != nil {
			return models.RespondWithError(c, fiber.StatusForbidden,
				models.NewForbiddenError("Invalid token subject"))
		}

		// Store the verified identity for downstream handlers
		c.Locals("userID", userID)
		c.Locals("username", claims.Username)

		// Sync to UserContext for logging and downstream services
		ctx := context.WithValue(c.UserContext(), middleware.UserIDKey, userID)
		c.SetUserContext(ctx)

		return c.Next()
	}
}
