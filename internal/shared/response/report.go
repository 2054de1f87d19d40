package response

import (
	"hr-portal/internal/shared/apperror"
	"hr-portal/internal/shared/contextutil"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ServiceError renders err through apperror.ToHTTP. Client errors are
// logged at warn level; 5xx errors are logged with their cause and sent to
// Sentry when a hub is attached to the request.
func ServiceError(c *gin.Context, logger *zap.Logger, err error) {
	httpErr := apperror.ToHTTP(err)
	fields := append(contextutil.LogFields(c.Request.Context()),
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)

	if apperror.IsInternal(err) {
		logger.Error("request failed", append(fields, zap.Error(err))...)
		if hub := sentrygin.GetHubFromContext(c); hub != nil {
			hub.WithScope(func(scope *sentry.Scope) {
				scope.SetTag("request_id", contextutil.GetRequestID(c.Request.Context()))
				scope.SetTag("route", c.FullPath())
				hub.CaptureException(err)
			})
		}
	} else {
		logger.Warn("request rejected", append(fields, zap.String("message", httpErr.Message))...)
	}

	Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}
