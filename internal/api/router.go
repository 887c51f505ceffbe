package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/forohub/forum-api/internal/api/handler"
	"github.com/forohub/forum-api/internal/api/middleware"
	"github.com/forohub/forum-api/internal/core/service"
	"github.com/forohub/forum-api/internal/infrastructure/config"
	mongodb "github.com/forohub/forum-api/internal/infrastructure/db/mongo"
	redisdb "github.com/forohub/forum-api/internal/infrastructure/db/redis"
	"github.com/forohub/forum-api/internal/infrastructure/http/handlers"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("forum"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	topicRepo := mongodb.NewTopicRepository(db)
	throttle := redisdb.NewLoginLimiter(rdb, cfg.Throttle.MaxFailures, cfg.Throttle.Window)

	tokenService := service.NewTokenService(cfg.JWT.Secret, cfg.JWT.TTL)
	authService := service.NewAuthService(userRepo, tokenService, throttle, log)
	topicService := service.NewTopicService(topicRepo, userRepo, log)

	authHandler := handler.NewAuthHandler(authService)
	topicHandler := handler.NewTopicHandler(topicService)

	// The authentication gate runs on every request and fails open to
	// anonymous; protected routes add RequireIdentity on top.
	e.Use(middleware.Authenticate(tokenService, userRepo))
	requireIdentity := middleware.RequireIdentity()

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Topic routes ---
	e.GET("/topics", topicHandler.List)
	e.GET("/topics/:id", topicHandler.Get)
	e.POST("/topics", topicHandler.Create, requireIdentity)
	e.PUT("/topics/:id", topicHandler.Update, requireIdentity)
	e.DELETE("/topics/:id", topicHandler.Delete, requireIdentity)

	// --- Operational endpoints ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
