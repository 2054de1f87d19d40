package timesheet

import (
	"hr-portal/internal/domain"
	"hr-portal/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, authz middleware.Authorizer, idempotency gin.HandlerFunc) {
	timesheets := r.Group("/timesheets")
	{
		timesheets.POST("/submit", middleware.RateLimitByUser(1, 5), idempotency, handler.Submit)
		timesheets.GET("/user/:user_id", handler.GetByUser)
		timesheets.GET("/:id", handler.GetByID)
		timesheets.DELETE("/:id", handler.Delete)

		timesheets.GET("", append(authz.Require(domain.ResourceTimesheet, domain.ActionRead), handler.GetAll)...)
		timesheets.GET("/range/query", append(authz.Require(domain.ResourceTimesheet, domain.ActionRead), handler.GetByRange)...)
		timesheets.PUT("/:id/status", append(authz.Require(domain.ResourceTimesheet, domain.ActionApprove), handler.UpdateStatus)...)
	}
}
