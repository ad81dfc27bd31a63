package middleware

import (
	"encoding/json"
	"strings"
	"time"

	"cokilo-admin/internal/core/domain"
	"cokilo-admin/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AuditLog creates an audit middleware that records successful write
// operations. It maps HTTP methods and paths to audit actions.
func AuditLog(auditSvc ports.AuditService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// Only audit successful write operations (status 2xx)
		if c.Writer.Status() < 200 || c.Writer.Status() >= 300 {
			return
		}
		if c.Request.Method == "GET" || c.Request.Method == "HEAD" || c.Request.Method == "OPTIONS" {
			return
		}

		action, resourceType, resourceID := mapPathToAction(c.Request.URL.Path, c.Request.Method)
		if action == "" {
			return
		}

		var adminID *uuid.UUID
		if aid, exists := c.Get(CtxAdminID); exists {
			if id, ok := aid.(uuid.UUID); ok {
				adminID = &id
			}
		}

		details, _ := json.Marshal(map[string]interface{}{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
			"status": c.Writer.Status(),
		})

		auditSvc.Log(c.Request.Context(), &domain.AuditLog{
			ID:           uuid.New(),
			AdminID:      adminID,
			Action:       action,
			ResourceType: resourceType,
			ResourceID:   resourceID,
			IPAddress:    c.ClientIP(),
			Details:      string(details),
			CreatedAt:    time.Now(),
		})
	}
}

func mapPathToAction(path, method string) (domain.AuditAction, string, string) {
	if path == "/api/admin/login" && method == "POST" {
		return domain.AuditActionLogin, "session", ""
	}

	// /api/admin/wallet/withdrawal/:id/approve|reject
	if method == "POST" && strings.HasPrefix(path, "/api/admin/wallet/withdrawal/") {
		rest := strings.TrimPrefix(path, "/api/admin/wallet/withdrawal/")
		parts := strings.Split(rest, "/")
		if len(parts) == 2 {
			switch parts[1] {
			case "approve":
				return domain.AuditActionApproveWithdrawal, "withdrawal_request", parts[0]
			case "reject":
				return domain.AuditActionRejectWithdrawal, "withdrawal_request", parts[0]
			}
		}
	}
	return "", "", ""
}
