package handler

import (
	"strconv"

	"cokilo-admin/internal/adapter/http/dto"
	"cokilo-admin/internal/adapter/http/middleware"
	"cokilo-admin/internal/core/ports"
	"cokilo-admin/pkg/apperror"
	"cokilo-admin/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// WithdrawalHandler handles withdrawal request endpoints.
type WithdrawalHandler struct {
	withdrawalSvc ports.WithdrawalService
}

// NewWithdrawalHandler creates a new WithdrawalHandler.
func NewWithdrawalHandler(withdrawalSvc ports.WithdrawalService) *WithdrawalHandler {
	return &WithdrawalHandler{withdrawalSvc: withdrawalSvc}
}

// GetDetail handles GET /api/admin/wallet/withdrawal/:id.
func (h *WithdrawalHandler) GetDetail(c *gin.Context) {
	id, ok := parseWithdrawalID(c)
	if !ok {
		return
	}

	w, err := h.withdrawalSvc.GetDetail(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, w)
}

// ListForUser handles GET /api/admin/users/:userId/withdrawals.
func (h *WithdrawalHandler) ListForUser(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil {
		response.Error(c, apperror.Validation("invalid user id"))
		return
	}

	requests, err := h.withdrawalSvc.ListForUser(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.WithdrawalListResponse{Requests: requests})
}

// Approve handles POST /api/admin/wallet/withdrawal/:id/approve.
func (h *WithdrawalHandler) Approve(c *gin.Context) {
	id, ok := parseWithdrawalID(c)
	if !ok {
		return
	}
	adminID, ok := adminIDFromCtx(c)
	if !ok {
		return
	}

	w, err := h.withdrawalSvc.Approve(c.Request.Context(), ports.DecisionRequest{
		WithdrawalID: id,
		AdminID:      adminID,
	})
	if err != nil {
		middleware.CountDecision("approve", "error")
		response.Error(c, err)
		return
	}

	middleware.CountDecision("approve", "ok")
	response.OK(c, w)
}

// Reject handles POST /api/admin/wallet/withdrawal/:id/reject.
func (h *WithdrawalHandler) Reject(c *gin.Context) {
	id, ok := parseWithdrawalID(c)
	if !ok {
		return
	}
	adminID, ok := adminIDFromCtx(c)
	if !ok {
		return
	}

	var req dto.RejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.ErrEmptyReason())
		return
	}
	dto.SanitizeStruct(&req)

	w, err := h.withdrawalSvc.Reject(c.Request.Context(), ports.DecisionRequest{
		WithdrawalID: id,
		AdminID:      adminID,
		Reason:       req.Reason,
	})
	if err != nil {
		middleware.CountDecision("reject", "error")
		response.Error(c, err)
		return
	}

	middleware.CountDecision("reject", "ok")
	response.OK(c, w)
}

func parseWithdrawalID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		response.Error(c, apperror.ErrInvalidWithdrawalID())
		return 0, false
	}
	return id, true
}

func adminIDFromCtx(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(middleware.CtxAdminID)
	if !exists {
		response.Error(c, apperror.ErrInvalidToken())
		return uuid.UUID{}, false
	}
	id, ok := v.(uuid.UUID)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return uuid.UUID{}, false
	}
	return id, true
}
