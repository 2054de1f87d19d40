package middleware

import (
	"errors"
	"strconv"
	"strings"

	"hr-portal/internal/auth"
	autherrors "hr-portal/internal/auth/errors"
	"hr-portal/internal/shared/apperror"
	"hr-portal/internal/shared/response"

	"github.com/gin-gonic/gin"
)

const (
	ContextUserID          = "user_id"
	ContextUserIDValidated = "user_id_validated"
	ContextEmail           = "email"
	ContextRole            = "role"
)

type TokenParser interface {
	Parse(token string) (*auth.Claims, error)
}

func bearerToken(c *gin.Context) string {
	tokenString, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
	if found && tokenString != "" {
		return tokenString
	}
	if cookie, err := c.Cookie(auth.AccessTokenCookie); err == nil {
		return cookie
	}
	return ""
}

func setClaims(c *gin.Context, claims *auth.Claims) {
	c.Set(ContextUserID, claims.UserID)
	c.Set(ContextUserIDValidated, strconv.FormatUint(uint64(claims.UserID), 10))
	c.Set(ContextEmail, claims.Email)
	c.Set(ContextRole, claims.Role)
}

func abortWithError(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		appErr = autherrors.ErrInvalidToken
	}
	response.Error(c, appErr.HTTPStatus, appErr.Code, appErr.Message, nil)
	c.Abort()
}

func AuthMiddleware(tokens TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			abortWithError(c, autherrors.ErrTokenNotFound)
			return
		}

		claims, err := tokens.Parse(tokenString)
		if err != nil {
			abortWithError(c, err)
			return
		}

		setClaims(c, claims)
		c.Next()
	}
}

// OptionalAuth attaches the caller's claims when a valid token is present and
// lets anonymous or badly authenticated requests through untouched.
func OptionalAuth(tokens TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokens != nil {
			if tokenString := bearerToken(c); tokenString != "" {
				if claims, err := tokens.Parse(tokenString); err == nil {
					setClaims(c, claims)
				}
			}
		}
		c.Next()
	}
}
