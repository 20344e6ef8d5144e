package api

import (
	"storefront/api/cart"
	"storefront/api/catalog"
	"storefront/api/coupon"
	"storefront/api/health"
	"storefront/api/middleware"
	"storefront/api/notification"
	"storefront/api/order"
	"storefront/api/review"
	"storefront/config"
	"storefront/pkg/auth"

	"github.com/gin-gonic/gin"
)

// Controllers bundles every API controller for route registration
type Controllers struct {
	Health       *health.Controller
	Catalog      *catalog.Controller
	Cart         *cart.Controller
	Coupon       *coupon.Controller
	Order        *order.Controller
	Review       *review.Controller
	Notification *notification.Controller
}

// Router Route configuration
type Router struct {
	engine      *gin.Engine
	config      *config.Config
	authManager *auth.Manager
	controllers Controllers
}

// NewRouter Create route configuration
func NewRouter(cfg *config.Config, authManager *auth.Manager, controllers Controllers) *Router {
	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	// Middleware order matters: the request ID must exist before anything logs.
	engine.Use(middleware.RequestIDMiddleware())
	engine.Use(middleware.RecoveryMiddleware())
	engine.Use(middleware.LoggingMiddleware())
	engine.Use(middleware.CORSMiddleware(&cfg.CORS))
	engine.Use(middleware.RateLimitMiddleware(&cfg.Server.RateLimit))

	return &Router{
		engine:      engine,
		config:      cfg,
		authManager: authManager,
		controllers: controllers,
	}
}

// SetupRoutes sets up the public, authenticated and admin route groups
func (r *Router) SetupRoutes() {
	apiGroup := r.engine.Group("/api/v1")

	// Public surface: browsing, guest checkout, tracking, coupon validation.
	// OptionalAuth attaches the caller identity when a token is sent, so
	// coupon validation can apply per-user limits to members.
	public := apiGroup.Group("", middleware.OptionalAuth(r.authManager))
	{
		r.controllers.Health.RegisterRoutes(public)
		r.controllers.Catalog.RegisterRoutes(public)
		r.controllers.Coupon.RegisterPublicRoutes(public)
		r.controllers.Order.RegisterPublicRoutes(public)
		r.controllers.Review.RegisterPublicRoutes(public)
	}

	// Member surface: everything addressed by the caller's token.
	authed := apiGroup.Group("", middleware.RequireAuth(r.authManager))
	{
		r.controllers.Cart.RegisterRoutes(authed)
		r.controllers.Order.RegisterRoutes(authed)
		r.controllers.Review.RegisterRoutes(authed)
		r.controllers.Notification.RegisterRoutes(authed)
	}

	// Admin surface.
	admin := apiGroup.Group("/admin", middleware.RequireAuth(r.authManager), middleware.RequireAdmin())
	{
		r.controllers.Catalog.RegisterAdminRoutes(admin)
		r.controllers.Coupon.RegisterAdminRoutes(admin)
		r.controllers.Order.RegisterAdminRoutes(admin)
		r.controllers.Review.RegisterAdminRoutes(admin)
	}

	r.engine.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
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
