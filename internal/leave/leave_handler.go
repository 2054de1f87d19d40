package leave

import (
	"net/http"

	"hr-portal/internal/domain"
	leaveerrors "hr-portal/internal/leave/errors"
	"hr-portal/internal/metrics"
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
	l := zap.L().Named("leave.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.handler")
	}
	return &Handler{svc: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	response.ServiceError(c, h.logger, err)
}

func (h *Handler) Apply(c *gin.Context) {
	var req ApplyLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapBindError(err, leaveerrors.ErrApplyFieldsRequired))
		return
	}

	res, err := h.svc.Apply(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	metrics.LeaveApplications.WithLabelValues(res.LeaveType).Inc()
	response.Message(c, http.StatusCreated, "Leave application submitted successfully", "leave", res)
}

func (h *Handler) GetByUser(c *gin.Context) {
	userID, ok := request.ParseUintParam(c, "user_id")
	if !ok {
		h.writeServiceError(c, leaveerrors.ErrInvalidUserID)
		return
	}

	res, err := h.svc.GetByUser(c.Request.Context(), userID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, res)
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
		h.writeServiceError(c, leaveerrors.ErrInvalidLeaveID)
		return
	}

	res, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, res)
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	id, ok := request.ParseUintParam(c, "id")
	if !ok {
		h.writeServiceError(c, leaveerrors.ErrInvalidLeaveID)
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapBindError(err, leaveerrors.ErrInvalidStatus))
		return
	}

	res, err := h.svc.UpdateStatus(c.Request.Context(), id, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	metrics.StatusDecisions.WithLabelValues(domain.ResourceLeave, res.Status).Inc()
	response.Message(c, http.StatusOK, "Leave status updated successfully", "leave", res)
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := request.ParseUintParam(c, "id")
	if !ok {
		h.writeServiceError(c, leaveerrors.ErrInvalidLeaveID)
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Message(c, http.StatusOK, "Leave application deleted successfully", "", nil)
}
