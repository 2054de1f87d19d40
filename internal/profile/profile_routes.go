package profile

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	profiles := r.Group("/profile")
	{
		profiles.GET("/user/:id", handler.GetByUser)
		profiles.POST("", handler.Upsert)
	}
}
