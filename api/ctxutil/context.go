// Package ctxutil bridges gin request state into the plain context the lower
// layers see.
package ctxutil

import (
	"context"

	"storefront/api/response"
	"storefront/infrastructure/persistence"

	"github.com/gin-gonic/gin"
)

// WithRequestID returns the request context carrying the request ID, so
// repository logging can correlate SQL with the HTTP request
func WithRequestID(ctx *gin.Context) context.Context {
	requestID := response.GetRequestID(ctx)
	return persistence.ContextWithRequestID(ctx.Request.Context(), requestID)
}

// RequestIDFromContext reads the request ID back out of a plain context
func RequestIDFromContext(ctx context.Context) string {
	return persistence.RequestIDFromContext(ctx)
}
