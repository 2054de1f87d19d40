package user

import (
	"net/http"

	"hr-portal/internal/auth"
	"hr-portal/internal/shared/apperror"
	"hr-portal/internal/shared/request"
	"hr-portal/internal/shared/response"
	usererrors "hr-portal/internal/user/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	svc          Service
	secureCookie bool
	logger       *zap.Logger
}

func NewHandler(service Service, secureCookie bool, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("user.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("user.handler")
	}
	return &Handler{svc: service, secureCookie: secureCookie, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	response.ServiceError(c, h.logger, err)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapBindError(err, usererrors.ErrCreateFieldsRequired))
		return
	}

	res, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, res)
}

func (h *Handler) GetAll(c *gin.Context) {
	res, err := h.svc.GetAll(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, res)
}

func (h *Handler) GetByID(c *gin.Context) {
	id, ok := request.ParseUintParam(c, "id")
	if !ok {
		h.writeServiceError(c, usererrors.ErrInvalidUserID)
		return
	}

	res, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, res)
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := request.ParseUintParam(c, "id")
	if !ok {
		h.writeServiceError(c, usererrors.ErrInvalidUserID)
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapBindError(err, usererrors.ErrUpdateFieldsRequired))
		return
	}

	res, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, res)
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := request.ParseUintParam(c, "id")
	if !ok {
		h.writeServiceError(c, usererrors.ErrInvalidUserID)
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, DeleteUserResponse{
		Message: "User deleted successfully",
		ID:      id,
	})
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapBindError(err, usererrors.ErrLoginFieldsRequired))
		return
	}

	res, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	if res.AccessToken != "" {
		http.SetCookie(c.Writer, &http.Cookie{
			Name:     auth.AccessTokenCookie,
			Value:    res.AccessToken,
			Path:     "/",
			Expires:  res.ExpiresAt,
			HttpOnly: true,
			Secure:   h.secureCookie,
			SameSite: http.SameSiteLaxMode,
		})
	}

	response.Success(c, http.StatusOK, res)
}
