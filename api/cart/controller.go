// Package cart - shopping cart API controller. All routes require an
// authenticated user; the cart is addressed implicitly by the token.
package cart

import (
	"net/http"

	"storefront/api/ctxutil"
	"storefront/api/middleware"
	"storefront/api/response"
	cartapp "storefront/application/cart"

	"github.com/gin-gonic/gin"
)

// Controller handles cart requests
type Controller struct {
	cartService *cartapp.ApplicationService
}

// NewController Create cart controller
func NewController(cartService *cartapp.ApplicationService) *Controller {
	return &Controller{cartService: cartService}
}

// RegisterRoutes registers routes on the authenticated group
func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	cartGroup := router.Group("/cart")
	{
		cartGroup.GET("", c.GetCart)
		cartGroup.POST("/items", c.AddItem)
		cartGroup.PUT("/items/:productId", c.UpdateItem)
		cartGroup.DELETE("/items/:productId", c.RemoveItem)
		cartGroup.DELETE("", c.Clear)
		cartGroup.POST("/coupon", c.ApplyCoupon)
		cartGroup.DELETE("/coupon", c.RemoveCoupon)
	}
}

// GetCart returns the caller's cart, creating it on first access
// GET /api/v1/cart
func (c *Controller) GetCart(ctx *gin.Context) {
	cart, err := c.cartService.GetCart(ctxutil.WithRequestID(ctx), middleware.CurrentUserID(ctx))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, cart, "cart retrieved")
}

// AddItem adds a product to the cart
// POST /api/v1/cart/items
func (c *Controller) AddItem(ctx *gin.Context) {
	var req cartapp.AddItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	cart, err := c.cartService.AddItem(ctxutil.WithRequestID(ctx), middleware.CurrentUserID(ctx), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, cart, "item added")
}

// UpdateItem changes a line item quantity
// PUT /api/v1/cart/items/:productId
func (c *Controller) UpdateItem(ctx *gin.Context) {
	var req cartapp.UpdateItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	cart, err := c.cartService.UpdateItemQuantity(ctxutil.WithRequestID(ctx),
		middleware.CurrentUserID(ctx), ctx.Param("productId"), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, cart, "item updated")
}

// RemoveItem drops a line item
// DELETE /api/v1/cart/items/:productId
func (c *Controller) RemoveItem(ctx *gin.Context) {
	cart, err := c.cartService.RemoveItem(ctxutil.WithRequestID(ctx),
		middleware.CurrentUserID(ctx), ctx.Param("productId"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, cart, "item removed")
}

// Clear empties the cart
// DELETE /api/v1/cart
func (c *Controller) Clear(ctx *gin.Context) {
	cart, err := c.cartService.Clear(ctxutil.WithRequestID(ctx), middleware.CurrentUserID(ctx))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, cart, "cart cleared")
}

// ApplyCoupon attaches a coupon code to the cart
// POST /api/v1/cart/coupon
func (c *Controller) ApplyCoupon(ctx *gin.Context) {
	var req cartapp.ApplyCouponRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	cart, err := c.cartService.ApplyCoupon(ctxutil.WithRequestID(ctx), middleware.CurrentUserID(ctx), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, cart, "coupon applied")
}

// RemoveCoupon detaches the coupon from the cart
// DELETE /api/v1/cart/coupon
func (c *Controller) RemoveCoupon(ctx *gin.Context) {
	cart, err := c.cartService.RemoveCoupon(ctxutil.WithRequestID(ctx), middleware.CurrentUserID(ctx))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, cart, "coupon removed")
}
