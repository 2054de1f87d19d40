package middleware

import (
	"hr-portal/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ContextLogger copies the caller identity from gin keys onto the request
// context and attaches a logger carrying it. Mount after RequestID and
// OptionalAuth.
func ContextLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		if contextutil.GetRequestID(ctx) == "" {
			ctx = contextutil.WithRequestID(ctx, c.GetString(ContextRequestID))
		}
		if uid, ok := c.Get(ContextUserID); ok {
			if id, ok := uid.(uint); ok {
				ctx = contextutil.WithActor(ctx, contextutil.Actor{UserID: id, Role: c.GetString(ContextRole)})
			}
		}

		ctx = contextutil.WithLogger(ctx, logger.With(contextutil.LogFields(ctx)...))
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
