package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/onlineshop/order-system/internal/api/handler"
	"github.com/onlineshop/order-system/internal/api/middleware"
	"github.com/onlineshop/order-system/internal/core/domain"
	"github.com/onlineshop/order-system/internal/core/service"
	"github.com/onlineshop/order-system/internal/core/token"
	"github.com/onlineshop/order-system/internal/infrastructure/config"
	mongodb "github.com/onlineshop/order-system/internal/infrastructure/db/mongo"
	redisdb "github.com/onlineshop/order-system/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger, audit service.AuditSink) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("shop"))

	// --- Dependencies ---
	codec := token.NewCodec(cfg.JWTSecret, cfg.AccessTokenTTL)

	userRepo := mongodb.NewUserRepository(db)
	roleRepo := mongodb.NewRoleRepository(db)
	customerRepo := mongodb.NewCustomerRepository(db)
	productRepo := mongodb.NewProductRepository(db)
	orderRepo := mongodb.NewOrderRepository(db)
	cartRepo := mongodb.NewCartRepository(db)
	tokenRepo := mongodb.NewRefreshTokenRepository(db, cfg.RefreshTokenTTL)
	limiter := redisdb.NewLoginLimiter(rdb, cfg.LoginMaxAttempts)

	authService := service.NewAuthService(userRepo, roleRepo, customerRepo, tokenRepo, codec, limiter, audit, log)
	customerService := service.NewCustomerService(customerRepo)
	productService := service.NewProductService(productRepo)
	orderService := service.NewOrderService(orderRepo, customerRepo, productRepo, log)
	cartService := service.NewCartService(cartRepo, customerRepo, productRepo, orderRepo, log)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userRepo, customerService)
	customerHandler := handler.NewCustomerHandler(customerService)
	productHandler := handler.NewProductHandler(productService)
	orderHandler := handler.NewOrderHandler(orderService)
	cartHandler := handler.NewCartHandler(cartService)

	authMW := middleware.Auth(codec)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Auth routes ---
	e.POST("/api/auth/register", authHandler.Register)
	e.POST("/api/auth/login", authHandler.Login)
	e.POST("/api/auth/refresh", authHandler.Refresh)
	e.POST("/api/auth/logout", authHandler.Logout, authMW)

	// --- User routes ---
	e.GET("/api/users/me", userHandler.Me, authMW)

	// --- Customer routes (admin only) ---
	customers := e.Group("/api/customers", authMW, adminOnly)
	customers.POST("", customerHandler.Create)
	customers.GET("", customerHandler.List)
	customers.GET("/:id", customerHandler.Get)
	customers.PUT("/:id", customerHandler.Update)
	customers.DELETE("/:id", customerHandler.Delete)

	// --- Product routes (reads authenticated, writes admin only) ---
	products := e.Group("/api/products", authMW)
	products.GET("", productHandler.List)
	products.GET("/:id", productHandler.Get)
	products.POST("", productHandler.Create, adminOnly)
	products.PUT("/:id", productHandler.Update, adminOnly)
	products.DELETE("/:id", productHandler.Delete, adminOnly)

	// --- Order routes ---
	orders := e.Group("/api/orders", authMW)
	orders.POST("", orderHandler.Create)
	orders.GET("", orderHandler.List, adminOnly)
	orders.GET("/:id", orderHandler.Get)
	orders.GET("/customer/:customerId", orderHandler.ListByCustomer)
	orders.PATCH("/:id/status", orderHandler.UpdateStatus, adminOnly)

	// --- Cart routes ---
	cart := e.Group("/api/cart", authMW)
	cart.GET("/:customerId", cartHandler.Get)
	cart.POST("/:customerId/items", cartHandler.AddItem)
	cart.PUT("/:customerId/items/:productId", cartHandler.UpdateItem)
	cart.DELETE("/:customerId/items/:productId", cartHandler.RemoveItem)
	cart.POST("/:cartId/checkout", cartHandler.Checkout)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
