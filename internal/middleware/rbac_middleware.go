package middleware

import (
	autherrors "hr-portal/internal/auth/errors"
	"hr-portal/internal/domain"
	"hr-portal/internal/shared/apperror"
	"hr-portal/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// RBACService is satisfied by any package exposing Enforce(domain.EnforceRequest).
type RBACService interface {
	Enforce(req domain.EnforceRequest) (bool, error)
}

// Authorizer hands out the handlers placed in front of admin-only routes.
type Authorizer interface {
	Require(resource, action string) gin.HandlersChain
}

func RBACAuthorize(service RBACService, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		req := domain.EnforceRequest{
			Role:     c.GetString(ContextRole),
			Resource: resource,
			Action:   action,
		}
		allowed, err := service.Enforce(req)
		if err != nil {
			internal := apperror.ErrInternal
			response.Error(c, internal.HTTPStatus, internal.Code, internal.Message, nil)
			c.Abort()
			return
		}

		if !allowed {
			forbidden := autherrors.ErrForbidden
			response.Error(c, forbidden.HTTPStatus, forbidden.Code, forbidden.Message, gin.H{
				"required": req.Permission(),
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// AdminGuard authenticates and authorizes admin routes. When disabled every
// route is open, matching a deployment without login enforcement.
type AdminGuard struct {
	enabled bool
	tokens  TokenParser
	rbac    RBACService
}

func NewAdminGuard(enabled bool, tokens TokenParser, rbacService RBACService) *AdminGuard {
	return &AdminGuard{enabled: enabled, tokens: tokens, rbac: rbacService}
}

// Require is empty when the guard is disabled.
func (g *AdminGuard) Require(resource, action string) gin.HandlersChain {
	if !g.enabled {
		return nil
	}
	return gin.HandlersChain{
		AuthMiddleware(g.tokens),
		RBACAuthorize(g.rbac, resource, action),
	}
}
