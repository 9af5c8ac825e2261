package middleware

import (
	"encoding/json"
	"strings"
	"time"

	"hopechain/internal/core/domain"
	"hopechain/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AuditLog creates an audit middleware that logs successful write operations.
// It maps HTTP methods and paths to audit actions.
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

		action, resourceType := mapPathToAction(c.Request.URL.Path, c.Request.Method)
		if action == "" {
			return
		}

		entry := &domain.AuditLog{
			ID:           uuid.New(),
			Action:       action,
			ResourceType: resourceType,
			IPAddress:    c.ClientIP(),
			CreatedAt:    time.Now(),
		}
		if identity, ok := Identity(c); ok {
			actorID := identity.UserID
			entry.ActorID = &actorID
			entry.ActorWallet = identity.Wallet
			entry.ActorRole = string(identity.Role)
		}

		details, _ := json.Marshal(map[string]interface{}{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
			"status": c.Writer.Status(),
		})
		entry.Details = string(details)

		auditSvc.Log(c.Request.Context(), entry)
	}
}

func mapPathToAction(path, method string) (domain.AuditAction, string) {
	if method != "POST" {
		return "", ""
	}
	switch {
	case path == "/api/v1/campaigns":
		return domain.AuditActionCampaignCreate, "campaign"
	case path == "/api/v1/donations":
		return domain.AuditActionDonate, "donation"
	case path == "/api/v1/donations/confirmed":
		return domain.AuditActionDonationRecord, "donation"
	case strings.HasPrefix(path, "/api/v1/campaigns/") && strings.HasSuffix(path, "/comments"):
		return domain.AuditActionCommentPost, "comment"
	}
	return "", ""
}
