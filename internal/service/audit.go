package service

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/noah-isme/portal-api/internal/models"
)

type auditRecorder interface {
	CreateAuditLog(ctx context.Context, log *models.AuditLog) error
}

// AuditMeta carries the request origin recorded with audit entries.
type AuditMeta struct {
	IP        string
	UserAgent string
}

type auditEntry struct {
	actorID    string
	action     string
	resource   string
	resourceID string
	oldValues  interface{}
	newValues  interface{}
	meta       AuditMeta
}

// recordAudit never fails the calling operation; write errors are logged.
func recordAudit(ctx context.Context, repo auditRecorder, logger *zap.Logger, entry auditEntry) {
	if repo == nil {
		return
	}
	log := &models.AuditLog{
		Action:    entry.action,
		Resource:  entry.resource,
		IPAddress: entry.meta.IP,
		UserAgent: entry.meta.UserAgent,
	}
	if entry.actorID != "" {
		actor := entry.actorID
		log.UserID = &actor
	}
	if entry.resourceID != "" {
		id := entry.resourceID
		log.ResourceID = &id
	}
	if entry.oldValues != nil {
		log.OldValues, _ = json.Marshal(entry.oldValues)
	}
	if entry.newValues != nil {
		log.NewValues, _ = json.Marshal(entry.newValues)
	}
	if err := repo.CreateAuditLog(ctx, log); err != nil {
		logger.Warn("failed to record audit log", zap.String("action", entry.action), zap.Error(err))
	}
}
