package handler

import (
	"errors"
	"time"

	"github.com/amoylab/leavehub/internal/apiserver/database"
	"github.com/amoylab/leavehub/internal/apiserver/middleware"
	"github.com/amoylab/leavehub/internal/common/cnst"
	"github.com/amoylab/leavehub/internal/common/dto"
	"github.com/amoylab/leavehub/internal/i18n"
	"github.com/amoylab/leavehub/pkg/trace"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ApplyLeave handles a leave application by the caller
func (h *Handler) ApplyLeave(c *gin.Context) {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		i18n.Error(i18n.ErrUnauthorized).Send(c)
		return
	}

	var req dto.ApplyLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		i18n.Error(i18n.ErrorLeaveDatesRequired).Send(c)
		return
	}

	start, err := time.Parse(database.DateLayout, req.StartDate)
	if err != nil {
		i18n.Error(i18n.ErrorLeaveInvalidRange).Send(c)
		return
	}
	end, err := time.Parse(database.DateLayout, req.EndDate)
	if err != nil {
		i18n.Error(i18n.ErrorLeaveInvalidRange).Send(c)
		return
	}
	if end.Before(start) {
		i18n.Error(i18n.ErrorLeaveInvalidRange).Send(c)
		return
	}

	overlap, err := h.db.HasOverlappingLeave(c.Request.Context(), claims.UserID, start, end)
	if err != nil {
		h.logger.Error("failed to check overlapping leave", zap.Uint("user_id", claims.UserID), zap.Error(err))
		i18n.Error(i18n.ErrInternalServer).Send(c)
		return
	}
	if overlap {
		i18n.Error(i18n.ErrorLeaveOverlap).Send(c)
		return
	}

	leave := &database.LeaveRequest{
		UserID:    claims.UserID,
		StartDate: start,
		EndDate:   end,
		Reason:    req.Reason,
		Status:    database.LeavePending,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := h.db.CreateLeaveRequest(c.Request.Context(), leave); err != nil {
		h.logger.Error("failed to create leave request", zap.Uint("user_id", claims.UserID), zap.Error(err))
		i18n.Error(i18n.ErrInternalServer).Send(c)
		return
	}

	h.logger.Info("leave request created",
		zap.Uint("leave_id", leave.ID),
		zap.Uint("user_id", claims.UserID),
		zap.Int("days", leave.Days()))
	i18n.Success(i18n.MsgLeaveApplied).WithPayload(leave).Send(c)
}

// LeaveStatus handles listing the caller's leave requests
func (h *Handler) LeaveStatus(c *gin.Context) {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		i18n.Error(i18n.ErrUnauthorized).Send(c)
		return
	}

	requests, err := h.db.ListLeaveRequestsByUser(c.Request.Context(), claims.UserID)
	if err != nil {
		h.logger.Error("failed to list leave requests", zap.Uint("user_id", claims.UserID), zap.Error(err))
		i18n.Error(i18n.ErrInternalServer).Send(c)
		return
	}

	c.JSON(200, gin.H{"data": requests})
}

// LeaveBalance handles reading the caller's leave balance
func (h *Handler) LeaveBalance(c *gin.Context) {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		i18n.Error(i18n.ErrUnauthorized).Send(c)
		return
	}

	balance, err := h.db.GetUserLeave(c.Request.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			i18n.Error(i18n.ErrorLeaveBalanceNotFound).Send(c)
			return
		}
		h.logger.Error("failed to get leave balance", zap.Uint("user_id", claims.UserID), zap.Error(err))
		i18n.Error(i18n.ErrInternalServer).Send(c)
		return
	}

	c.JSON(200, gin.H{"data": balance})
}

// UpdateLeaveStatus handles the administrative pending -> approved/rejected
// transition. The transition and any balance mutation happen as one atomic
// unit; a request that already left the pending state is rejected whole.
func (h *Handler) UpdateLeaveStatus(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		i18n.Error(i18n.ErrBadRequest).Send(c)
		return
	}

	var req dto.UpdateLeaveStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		i18n.Error(i18n.ErrorLeaveInvalidStatus).Send(c)
		return
	}

	status := database.LeaveStatus(req.Status)
	if status != database.LeaveApproved && status != database.LeaveRejected {
		i18n.Error(i18n.ErrorLeaveInvalidStatus).Send(c)
		return
	}

	scope := trace.Tracer(cnst.TraceAPIServer).Start(c.Request.Context(), "leave.update_status").
		WithAttrs(
			attribute.Int(cnst.AttrLeaveID, int(id)),
			attribute.String(cnst.AttrLeaveStatus, string(status)),
		)
	defer scope.End()

	leave, err := h.db.UpdateLeaveRequestStatus(scope.Ctx, id, status)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			i18n.Error(i18n.ErrorLeaveRequestNotFound).Send(c)
		case errors.Is(err, database.ErrLeaveAlreadyFinalized):
			i18n.Error(i18n.ErrorLeaveAlreadyFinalized).Send(c)
		case errors.Is(err, database.ErrBalanceNotFound):
			i18n.Error(i18n.ErrorLeaveBalanceNotFound).Send(c)
		default:
			h.logger.Error("failed to update leave status",
				zap.Uint("leave_id", id),
				zap.String("status", string(status)),
				zap.Error(err))
			i18n.Error(i18n.ErrInternalServer).Send(c)
		}
		return
	}

	if h.metrics != nil {
		h.metrics.LeaveTransition(string(status))
	}
	h.logger.Info("leave status updated",
		zap.Uint("leave_id", leave.ID),
		zap.Uint("user_id", leave.UserID),
		zap.String("status", string(leave.Status)))
	i18n.Success(i18n.MsgLeaveUpdated).WithPayload(leave).Send(c)
}
