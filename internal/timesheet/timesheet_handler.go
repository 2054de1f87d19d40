package timesheet

import (
	"net/http"

	"hr-portal/internal/domain"
	"hr-portal/internal/metrics"
	"hr-portal/internal/shared/apperror"
	"hr-portal/internal/shared/request"
	"hr-portal/internal/shared/response"
	timesheeterrors "hr-portal/internal/timesheet/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	svc    Service
	logger *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("timesheet.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("timesheet.handler")
	}
	return &Handler{svc: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	response.ServiceError(c, h.logger, err)
}

func (h *Handler) Submit(c *gin.Context) {
	var req SubmitTimesheetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapBindError(err, timesheeterrors.ErrSubmitFieldsRequired))
		return
	}

	res, err := h.svc.Submit(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	metrics.TimesheetSubmissions.Inc()
	response.Message(c, http.StatusCreated, "Timesheet submitted successfully", "timesheet", res)
}

func (h *Handler) GetByUser(c *gin.Context) {
	userID, ok := request.ParseUintParam(c, "user_id")
	if !ok {
		h.writeServiceError(c, timesheeterrors.ErrInvalidUserID)
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
		h.writeServiceError(c, timesheeterrors.ErrInvalidTimesheetID)
		return
	}

	res, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, res)
}

func (h *Handler) GetByRange(c *gin.Context) {
	var q RangeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.writeServiceError(c, apperror.MapBindError(err, timesheeterrors.ErrRangeRequired))
		return
	}

	userID, ok := request.ParseUintQuery(c, "user_id")
	if !ok {
		h.writeServiceError(c, timesheeterrors.ErrInvalidUserID)
		return
	}
	q.UserID = userID

	res, err := h.svc.GetByRange(c.Request.Context(), q)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, res)
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	id, ok := request.ParseUintParam(c, "id")
	if !ok {
		h.writeServiceError(c, timesheeterrors.ErrInvalidTimesheetID)
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapBindError(err, timesheeterrors.ErrInvalidStatus))
		return
	}

	res, err := h.svc.UpdateStatus(c.Request.Context(), id, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	metrics.StatusDecisions.WithLabelValues(domain.ResourceTimesheet, res.Status).Inc()
	response.Message(c, http.StatusOK, "Timesheet status updated successfully", "timesheet", res)
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := request.ParseUintParam(c, "id")
	if !ok {
		h.writeServiceError(c, timesheeterrors.ErrInvalidTimesheetID)
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Message(c, http.StatusOK, "Timesheet deleted successfully", "", nil)
}
