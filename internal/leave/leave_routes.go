package leave

import (
	"hr-portal/internal/domain"
	"hr-portal/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, authz middleware.Authorizer, idempotency gin.HandlerFunc) {
	leaves := r.Group("/leaves")
	{
		leaves.POST("/apply", middleware.RateLimitByUser(1, 5), idempotency, handler.Apply)
		leaves.GET("/user/:user_id", handler.GetByUser)
		leaves.GET("/:id", handler.GetByID)
		leaves.DELETE("/:id", handler.Delete)

		leaves.GET("", append(authz.Require(domain.ResourceLeave, domain.ActionRead), handler.GetAll)...)
		leaves.PUT("/:id/status", append(authz.Require(domain.ResourceLeave, domain.ActionApprove), handler.UpdateStatus)...)
	}
}
