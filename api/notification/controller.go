// Package notification - notification API controller. Every route is scoped
// to the authenticated caller's own message log.
package notification

import (
	"strconv"

	"storefront/api/ctxutil"
	"storefront/api/middleware"
	"storefront/api/response"
	notificationapp "storefront/application/notification"

	"github.com/gin-gonic/gin"
)

// Controller handles notification requests
type Controller struct {
	notificationService *notificationapp.ApplicationService
}

// NewController Create notification controller
func NewController(notificationService *notificationapp.ApplicationService) *Controller {
	return &Controller{notificationService: notificationService}
}

// RegisterRoutes registers routes on the authenticated group
func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	notifications := router.Group("/notifications")
	{
		notifications.GET("", c.List)
		notifications.GET("/unread-count", c.CountUnread)
		notifications.PUT("/:id/read", c.MarkRead)
		notifications.PUT("/read-all", c.MarkAllRead)
		notifications.DELETE("/:id", c.Delete)
	}
}

// List lists the caller's notifications
// GET /api/v1/notifications?unread=true
func (c *Controller) List(ctx *gin.Context) {
	unreadOnly, _ := strconv.ParseBool(ctx.Query("unread"))
	notifications, err := c.notificationService.List(ctxutil.WithRequestID(ctx),
		middleware.CurrentActor(ctx), unreadOnly)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, notifications, "notifications retrieved")
}

// CountUnread returns the unread badge count
// GET /api/v1/notifications/unread-count
func (c *Controller) CountUnread(ctx *gin.Context) {
	count, err := c.notificationService.CountUnread(ctxutil.WithRequestID(ctx), middleware.CurrentActor(ctx))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, gin.H{"unread": count}, "unread count retrieved")
}

// MarkRead marks one notification read
// PUT /api/v1/notifications/:id/read
func (c *Controller) MarkRead(ctx *gin.Context) {
	marked, err := c.notificationService.MarkRead(ctxutil.WithRequestID(ctx),
		middleware.CurrentActor(ctx), ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, marked, "notification marked read")
}

// MarkAllRead marks the caller's whole log read
// PUT /api/v1/notifications/read-all
func (c *Controller) MarkAllRead(ctx *gin.Context) {
	if err := c.notificationService.MarkAllRead(ctxutil.WithRequestID(ctx), middleware.CurrentActor(ctx)); err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, nil, "notifications marked read")
}

// Delete removes one notification
// DELETE /api/v1/notifications/:id
func (c *Controller) Delete(ctx *gin.Context) {
	err := c.notificationService.Delete(ctxutil.WithRequestID(ctx),
		middleware.CurrentActor(ctx), ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleNoContent(ctx)
}
