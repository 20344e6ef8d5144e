/*
Package order - order API controllers.

Route surfaces:
1. Public: guest checkout plus tracking and cancellation by number and email
2. Authenticated: checkout, own order history, own order detail, cancellation
3. Admin: listing across users and status transitions
*/
package order

import (
	"net/http"
	"strconv"

	"storefront/api/ctxutil"
	"storefront/api/middleware"
	"storefront/api/response"
	orderapp "storefront/application/order"
	"storefront/domain/order"

	"github.com/gin-gonic/gin"
)

// Controller handles order requests
type Controller struct {
	orderService *orderapp.ApplicationService
}

// NewController Create order controller
func NewController(orderService *orderapp.ApplicationService) *Controller {
	return &Controller{orderService: orderService}
}

// RegisterPublicRoutes registers guest checkout and tracking
func (c *Controller) RegisterPublicRoutes(router *gin.RouterGroup) {
	router.POST("/orders/guest", c.GuestCheckout)
	router.GET("/orders/track", c.Track)
	router.GET("/orders/guest/track", c.Track)
	router.POST("/orders/guest/cancel", c.GuestCancel)
}

// RegisterRoutes registers routes on the authenticated group
func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	orders := router.Group("/orders")
	{
		orders.POST("", c.Checkout)
		orders.GET("", c.ListMine)
		orders.GET("/:id", c.Get)
		orders.POST("/:id/cancel", c.Cancel)
	}
}

// RegisterAdminRoutes registers the order management routes
func (c *Controller) RegisterAdminRoutes(router *gin.RouterGroup) {
	orders := router.Group("/orders")
	{
		orders.GET("", c.AdminList)
		orders.GET("/:id", c.AdminGet)
		orders.PUT("/:id/status", c.UpdateStatus)
	}
}

// Checkout places an order for the authenticated user
// POST /api/v1/orders
func (c *Controller) Checkout(ctx *gin.Context) {
	var req orderapp.CheckoutRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}
	if req.IdempotencyKey == "" {
		req.IdempotencyKey = ctx.GetHeader("Idempotency-Key")
	}

	placed, err := c.orderService.Checkout(ctxutil.WithRequestID(ctx), middleware.CurrentUserID(ctx), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleCreated(ctx, placed, "order placed")
}

// GuestCheckout places an order without an account
// POST /api/v1/orders/guest
func (c *Controller) GuestCheckout(ctx *gin.Context) {
	var req orderapp.CheckoutRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}
	if req.IdempotencyKey == "" {
		req.IdempotencyKey = ctx.GetHeader("Idempotency-Key")
	}

	placed, err := c.orderService.Checkout(ctxutil.WithRequestID(ctx), "", req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleCreated(ctx, placed, "order placed")
}

// Track returns the public tracking projection
// GET /api/v1/orders/track?order_number=2608-00042&email=jane@example.com
func (c *Controller) Track(ctx *gin.Context) {
	orderNumber := ctx.Query("order_number")
	email := ctx.Query("email")
	if orderNumber == "" || email == "" {
		response.HandleError(ctx, nil, "order_number and email are required", http.StatusBadRequest)
		return
	}

	tracked, err := c.orderService.Track(ctxutil.WithRequestID(ctx), orderNumber, email)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, tracked, "order tracked")
}

// ListMine lists the caller's orders
// GET /api/v1/orders
func (c *Controller) ListMine(ctx *gin.Context) {
	orders, err := c.orderService.ListMine(ctxutil.WithRequestID(ctx), middleware.CurrentUserID(ctx))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, orders, "orders retrieved")
}

// Get gets one of the caller's orders
// GET /api/v1/orders/:id
func (c *Controller) Get(ctx *gin.Context) {
	placed, err := c.orderService.Get(ctxutil.WithRequestID(ctx), middleware.CurrentActor(ctx), ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, placed, "order retrieved")
}

// Cancel cancels one of the caller's orders
// POST /api/v1/orders/:id/cancel
func (c *Controller) Cancel(ctx *gin.Context) {
	var req orderapp.CancelRequest
	if err := ctx.ShouldBindJSON(&req); err != nil && ctx.Request.ContentLength > 0 {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	cancelled, err := c.orderService.Cancel(ctxutil.WithRequestID(ctx), ctx.Param("id"), req, middleware.CurrentActor(ctx))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, cancelled, "order cancelled")
}

// GuestCancel cancels a guest order identified by number plus email
// POST /api/v1/orders/guest/cancel
func (c *Controller) GuestCancel(ctx *gin.Context) {
	var req orderapp.GuestCancelRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	cancelled, err := c.orderService.CancelGuest(ctxutil.WithRequestID(ctx), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, cancelled, "order cancelled")
}

// AdminList lists orders across users
// GET /api/v1/admin/orders?status=pending&user_id=...&page=1
func (c *Controller) AdminList(ctx *gin.Context) {
	filter := order.ListFilter{
		Status: order.Status(ctx.Query("status")),
		UserID: ctx.Query("user_id"),
	}
	filter.Page, _ = strconv.Atoi(ctx.DefaultQuery("page", "1"))
	filter.PageSize, _ = strconv.Atoi(ctx.DefaultQuery("page_size", "20"))

	page, err := c.orderService.List(ctxutil.WithRequestID(ctx), filter)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandlePaginated(ctx, page.Orders,
		response.NewPagination(page.Page, page.PageSize, page.Total), "orders retrieved")
}

// AdminGet gets any order
// GET /api/v1/admin/orders/:id
func (c *Controller) AdminGet(ctx *gin.Context) {
	placed, err := c.orderService.Get(ctxutil.WithRequestID(ctx), middleware.CurrentActor(ctx), ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, placed, "order retrieved")
}

// UpdateStatus transitions an order
// PUT /api/v1/admin/orders/:id/status
func (c *Controller) UpdateStatus(ctx *gin.Context) {
	var req orderapp.UpdateStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	updated, err := c.orderService.UpdateStatus(ctxutil.WithRequestID(ctx), ctx.Param("id"), req, middleware.CurrentActor(ctx))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, updated, "order status updated")
}
