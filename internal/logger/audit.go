package logger

import (
	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
)

// Auth audit actions.
const (
	AuthLogin         = "login"
	AuthLogout        = "logout"
	AuthRefresh       = "refresh"
	AuthPasswordReset = "password_reset"
)

// LogAuth writes a session event to the audit log.
func LogAuth(action, userID string, success bool, reason string) {
	fields := logrus.Fields{
		"action":  "auth_" + action,
		"user_id": userID,
		"success": success,
	}
	if reason != "" {
		fields["reason"] = reason
	}
	entry := GetAuditLogger().WithFields(fields)
	if success {
		entry.Info("Audit log")
		return
	}
	entry.Warn("Audit log")
}

// LogResource records a mutation of an owned resource made by the caller of c.
func LogResource(c fiber.Ctx, action, resourceType, resourceID string, details map[string]interface{}) {
	fields := logrus.Fields{
		"action":        resourceType + "_" + action,
		"resource_type": resourceType,
		"resource_id":   resourceID,
		"ip":            c.IP(),
		"user_agent":    c.Get(fiber.HeaderUserAgent),
	}
	if userID, ok := c.Locals("user_id").(string); ok {
		fields["user_id"] = userID
	}
	if requestID, ok := c.Locals("requestid").(string); ok && requestID != "" {
		fields["request_id"] = requestID
	}
	if len(details) > 0 {
		fields["details"] = details
	}
	GetAuditLogger().WithFields(fields).Info("Audit log")
}
