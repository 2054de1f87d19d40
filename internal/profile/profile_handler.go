package profile

import (
	"net/http"

	profileerrors "hr-portal/internal/profile/errors"
	"hr-portal/internal/shared/apperror"
	"hr-portal/internal/shared/request"
	"hr-portal/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	svc    Service
	logger *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("profile.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("profile.handler")
	}
	return &Handler{svc: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	response.ServiceError(c, h.logger, err)
}

// GetByUser answers 200 with null when the user exists but has no profile.
func (h *Handler) GetByUser(c *gin.Context) {
	userID, ok := request.ParseUintParam(c, "id")
	if !ok {
		h.writeServiceError(c, profileerrors.ErrInvalidUserID)
		return
	}

	res, err := h.svc.GetByUser(c.Request.Context(), userID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, res)
}

func (h *Handler) Upsert(c *gin.Context) {
	var req UpsertProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapBindError(err, profileerrors.ErrUserIDRequired))
		return
	}

	res, err := h.svc.Upsert(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Message(c, http.StatusOK, "Profile saved successfully", "profile", res)
}
