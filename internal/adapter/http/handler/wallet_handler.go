package handler

import (
	"strconv"

	"cokilo-admin/internal/adapter/http/dto"
	"cokilo-admin/internal/core/ports"
	"cokilo-admin/pkg/apperror"
	"cokilo-admin/pkg/response"

	"github.com/gin-gonic/gin"
)

// WalletHandler handles wallet reporting endpoints.
type WalletHandler struct {
	walletSvc ports.WalletReportingService
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(walletSvc ports.WalletReportingService) *WalletHandler {
	return &WalletHandler{walletSvc: walletSvc}
}

// ListDZDWallets handles GET /api/admin/wallet/dzd?page=N.
func (h *WalletHandler) ListDZDWallets(c *gin.Context) {
	page := 1
	if raw := c.Query("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			response.Error(c, apperror.Validation("invalid page number"))
			return
		}
		page = parsed
	}

	result, err := h.walletSvc.ListDZDWallets(c.Request.Context(), page)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}

// UserHistory handles GET /api/admin/wallet/user/:userId/history.
func (h *WalletHandler) UserHistory(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil {
		response.Error(c, apperror.Validation("invalid user id"))
		return
	}

	history, err := h.walletSvc.UserHistory(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.HistoryResponse{History: history})
}

// Stats handles GET /api/admin/wallet/stats.
func (h *WalletHandler) Stats(c *gin.Context) {
	stats, err := h.walletSvc.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, stats)
}
