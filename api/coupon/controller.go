// Package coupon - coupon API controllers. The active list and validation are
// public so guests can apply codes before checkout; everything else is admin
// surface.
package coupon

import (
	"net/http"
	"strconv"

	"storefront/api/ctxutil"
	"storefront/api/middleware"
	"storefront/api/response"
	couponapp "storefront/application/coupon"

	"github.com/gin-gonic/gin"
)

// Controller handles coupon requests
type Controller struct {
	couponService *couponapp.ApplicationService
}

// NewController Create coupon controller
func NewController(couponService *couponapp.ApplicationService) *Controller {
	return &Controller{couponService: couponService}
}

// RegisterPublicRoutes registers the active list and validation routes.
// Validation uses the caller identity when a token is present, so per-user
// limits apply to members and guests are treated as new customers.
func (c *Controller) RegisterPublicRoutes(router *gin.RouterGroup) {
	router.GET("/coupons/active", c.ListActive)
	router.GET("/coupons/validate", c.Validate)
}

// RegisterAdminRoutes registers the coupon management routes
func (c *Controller) RegisterAdminRoutes(router *gin.RouterGroup) {
	coupons := router.Group("/coupons")
	{
		coupons.GET("", c.List)
		coupons.POST("", c.Create)
		coupons.GET("/:id", c.Get)
		coupons.PUT("/:id", c.Update)
		coupons.PUT("/:id/active", c.SetActive)
		coupons.DELETE("/:id", c.Delete)
	}
}

// Validate checks a code against the caller and amount without consuming it
// GET /api/v1/coupons/validate?code=SAVE10&amount=59.90
func (c *Controller) Validate(ctx *gin.Context) {
	code := ctx.Query("code")
	if code == "" {
		response.HandleError(ctx, nil, "code is required", http.StatusBadRequest)
		return
	}
	amount, _ := strconv.ParseFloat(ctx.Query("amount"), 64)

	result, err := c.couponService.Validate(ctxutil.WithRequestID(ctx),
		middleware.CurrentUserID(ctx), code, amount)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, result, "coupon validated")
}

// ListActive lists the currently active coupons
// GET /api/v1/coupons/active
func (c *Controller) ListActive(ctx *gin.Context) {
	coupons, err := c.couponService.List(ctxutil.WithRequestID(ctx), true)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, coupons, "coupons retrieved")
}

// List lists coupons
// GET /api/v1/admin/coupons?active=true
func (c *Controller) List(ctx *gin.Context) {
	activeOnly, _ := strconv.ParseBool(ctx.Query("active"))
	coupons, err := c.couponService.List(ctxutil.WithRequestID(ctx), activeOnly)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, coupons, "coupons retrieved")
}

// Create creates a coupon
// POST /api/v1/admin/coupons
func (c *Controller) Create(ctx *gin.Context) {
	var req couponapp.CouponRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	coupon, err := c.couponService.Create(ctxutil.WithRequestID(ctx), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleCreated(ctx, coupon, "coupon created")
}

// Get gets a coupon by ID
// GET /api/v1/admin/coupons/:id
func (c *Controller) Get(ctx *gin.Context) {
	coupon, err := c.couponService.Get(ctxutil.WithRequestID(ctx), ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, coupon, "coupon retrieved")
}

// Update updates a coupon
// PUT /api/v1/admin/coupons/:id
func (c *Controller) Update(ctx *gin.Context) {
	var req couponapp.CouponRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	coupon, err := c.couponService.Update(ctxutil.WithRequestID(ctx), ctx.Param("id"), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, coupon, "coupon updated")
}

type setActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

// SetActive toggles a coupon
// PUT /api/v1/admin/coupons/:id/active
func (c *Controller) SetActive(ctx *gin.Context) {
	var req setActiveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	coupon, err := c.couponService.SetActive(ctxutil.WithRequestID(ctx), ctx.Param("id"), *req.Active)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, coupon, "coupon updated")
}

// Delete deletes a coupon and its usage ledger
// DELETE /api/v1/admin/coupons/:id
func (c *Controller) Delete(ctx *gin.Context) {
	if err := c.couponService.Delete(ctxutil.WithRequestID(ctx), ctx.Param("id")); err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleNoContent(ctx)
}
