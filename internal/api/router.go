package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shopstack/accounts-api/internal/api/handler"
	"github.com/shopstack/accounts-api/internal/api/middleware"
	"github.com/shopstack/accounts-api/internal/core/service"
	"github.com/shopstack/accounts-api/internal/infrastructure/config"
	mongodb "github.com/shopstack/accounts-api/internal/infrastructure/db/mongo"
	redisdb "github.com/shopstack/accounts-api/internal/infrastructure/db/redis"
	"github.com/shopstack/accounts-api/internal/security"
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
	e.Use(echoprometheus.NewMiddleware("accounts"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	shopRepo := mongodb.NewShopRepository(db)
	userCache := redisdb.NewUserCache(rdb)
	issuer := security.NewJWTIssuer(cfg.JWTSecret, cfg.TokenTTL)

	accountService := service.NewAccountService(userRepo, shopRepo, issuer, userCache, log)
	shopService := service.NewShopService(shopRepo, log)

	accountHandler := handler.NewAccountHandler(accountService)
	shopHandler := handler.NewShopHandler(shopService)

	authMiddleware := middleware.Auth(accountService)
	adminOnly := middleware.RequireAdmin()

	// --- Auth routes ---
	e.POST("/auth/register", accountHandler.Register)
	e.POST("/auth/login", accountHandler.Login)
	e.POST("/auth/add_user", accountHandler.AddUser, authMiddleware, adminOnly)
	e.PUT("/auth/suspend_user/:id", accountHandler.SuspendUser, authMiddleware, adminOnly)
	e.POST("/auth/change_password/admin", accountHandler.ChangePasswordAdmin, authMiddleware)
	e.POST("/auth/change_password/user", accountHandler.ChangePasswordUser, authMiddleware)

	// --- Shop routes (admin only) ---
	e.POST("/shops", shopHandler.CreateShop, authMiddleware, adminOnly)
	e.GET("/shops", shopHandler.ListShops, authMiddleware, adminOnly)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
