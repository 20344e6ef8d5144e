// Package review - review API controllers: public product reviews, member
// review writing and voting, admin moderation.
package review

import (
	"net/http"
	"strconv"

	"storefront/api/ctxutil"
	"storefront/api/middleware"
	"storefront/api/response"
	reviewapp "storefront/application/review"

	"github.com/gin-gonic/gin"
)

// Controller handles review requests
type Controller struct {
	reviewService *reviewapp.ApplicationService
}

// NewController Create review controller
func NewController(reviewService *reviewapp.ApplicationService) *Controller {
	return &Controller{reviewService: reviewService}
}

// RegisterPublicRoutes registers the public read-only routes
func (c *Controller) RegisterPublicRoutes(router *gin.RouterGroup) {
	router.GET("/products/:id/reviews", c.ListByProduct)
}

// RegisterRoutes registers routes on the authenticated group
func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	reviews := router.Group("/reviews")
	{
		reviews.POST("", c.Create)
		reviews.PUT("/:id", c.Update)
		reviews.DELETE("/:id", c.Delete)
		reviews.POST("/:id/helpful", c.VoteHelpful)
		reviews.POST("/:id/not-helpful", c.VoteNotHelpful)
		reviews.POST("/:id/report", c.Report)
	}
}

// RegisterAdminRoutes registers the moderation routes
func (c *Controller) RegisterAdminRoutes(router *gin.RouterGroup) {
	reviews := router.Group("/reviews")
	{
		reviews.GET("", c.ListForModeration)
		reviews.PUT("/:id/approve", c.Approve)
	}
}

// ListByProduct lists a product's approved reviews
// GET /api/v1/products/:id/reviews
func (c *Controller) ListByProduct(ctx *gin.Context) {
	reviews, err := c.reviewService.ListByProduct(ctxutil.WithRequestID(ctx), ctx.Param("id"), true)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, reviews, "reviews retrieved")
}

// Create creates a review
// POST /api/v1/reviews
func (c *Controller) Create(ctx *gin.Context) {
	var req reviewapp.CreateReviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	created, err := c.reviewService.Create(ctxutil.WithRequestID(ctx), middleware.CurrentUserID(ctx), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleCreated(ctx, created, "review created")
}

// Update edits the caller's review
// PUT /api/v1/reviews/:id
func (c *Controller) Update(ctx *gin.Context) {
	var req reviewapp.UpdateReviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	updated, err := c.reviewService.Update(ctxutil.WithRequestID(ctx),
		middleware.CurrentUserID(ctx), ctx.Param("id"), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, updated, "review updated")
}

// Delete removes a review, author or admin
// DELETE /api/v1/reviews/:id
func (c *Controller) Delete(ctx *gin.Context) {
	err := c.reviewService.Delete(ctxutil.WithRequestID(ctx), middleware.CurrentActor(ctx), ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleNoContent(ctx)
}

// VoteHelpful records a helpful vote
// POST /api/v1/reviews/:id/helpful
func (c *Controller) VoteHelpful(ctx *gin.Context) {
	voted, err := c.reviewService.VoteHelpful(ctxutil.WithRequestID(ctx),
		middleware.CurrentUserID(ctx), ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, voted, "vote recorded")
}

// VoteNotHelpful records a not-helpful vote
// POST /api/v1/reviews/:id/not-helpful
func (c *Controller) VoteNotHelpful(ctx *gin.Context) {
	voted, err := c.reviewService.VoteNotHelpful(ctxutil.WithRequestID(ctx),
		middleware.CurrentUserID(ctx), ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, voted, "vote recorded")
}

// Report flags a review for moderation
// POST /api/v1/reviews/:id/report
func (c *Controller) Report(ctx *gin.Context) {
	var req reviewapp.ReportRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	if err := c.reviewService.Report(ctxutil.WithRequestID(ctx), ctx.Param("id"), req); err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, nil, "review reported")
}

// ListForModeration lists reviews for the moderation queue
// GET /api/v1/admin/reviews?reported=true
func (c *Controller) ListForModeration(ctx *gin.Context) {
	reportedOnly, _ := strconv.ParseBool(ctx.Query("reported"))
	reviews, err := c.reviewService.ListForModeration(ctxutil.WithRequestID(ctx), reportedOnly)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, reviews, "reviews retrieved")
}

// Approve approves a review and folds it into the product rating
// PUT /api/v1/admin/reviews/:id/approve
func (c *Controller) Approve(ctx *gin.Context) {
	approved, err := c.reviewService.Approve(ctxutil.WithRequestID(ctx), ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, approved, "review approved")
}
