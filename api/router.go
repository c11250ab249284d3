package api

import (
	"net/http"

	"foodorder/api/cart"
	"foodorder/api/health"
	"foodorder/api/menu"
	"foodorder/api/middleware"
	"foodorder/api/order"
	"foodorder/api/user"
	"foodorder/config"

	"github.com/gin-gonic/gin"
)

// Router Route configuration
type Router struct {
	engine           *gin.Engine
	config           *config.Config
	auth             gin.HandlerFunc
	healthController *health.Controller
	userController   *user.Controller
	menuController   *menu.Controller
	cartController   *cart.Controller
	orderController  *order.Controller
}

// NewRouter Create route configuration
func NewRouter(
	cfg *config.Config,
	authenticator middleware.Authenticator,
	healthController *health.Controller,
	userController *user.Controller,
	menuController *menu.Controller,
	cartController *cart.Controller,
	orderController *order.Controller,
) *Router {
	// Set Gin mode based on environment
	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	// Add middleware (order is important)
	engine.Use(middleware.RequestIDMiddleware())                      // 1. Generate request ID first
	engine.Use(middleware.RecoveryMiddleware())                       // 2. Recovery middleware
	engine.Use(middleware.LoggingMiddleware())                        // 3. Logging middleware
	engine.Use(middleware.CORSMiddleware(&cfg.CORS))                  // 4. CORS
	engine.Use(middleware.RateLimitMiddleware(&cfg.Server.RateLimit)) // 5. Rate limiting

	return &Router{
		engine:           engine,
		config:           cfg,
		auth:             middleware.AuthMiddleware(authenticator),
		healthController: healthController,
		userController:   userController,
		menuController:   menuController,
		cartController:   cartController,
		orderController:  orderController,
	}
}

// SetupRoutes Set up all routes
func (r *Router) SetupRoutes() {
	apiGroup := r.engine.Group("/api/v1")
	{
		r.healthController.RegisterRoutes(apiGroup)
		r.userController.RegisterRoutes(apiGroup, r.auth)
		r.menuController.RegisterRoutes(apiGroup, r.auth)
		r.cartController.RegisterRoutes(apiGroup, r.auth)
		r.orderController.RegisterRoutes(apiGroup, r.auth)
	}

	r.engine.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"name":    r.config.App.Name,
			"version": r.config.App.Version,
			"env":     r.config.App.Env,
			"health":  "/api/v1/health",
		})
	})
}

// GetEngine Get Gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
