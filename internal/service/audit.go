package service

import (
	"context"
	"fmt"

	"github.com/worklane/hrms/internal/domain"
	"github.com/worklane/hrms/internal/logger"
)

// Audit actions recorded alongside writes to the audited resources.
const (
	auditActionCreate = "create"
	auditActionUpdate = "update"
	auditActionDelete = "delete"
)

// recordAudit appends one audit entry. Failures are logged but never abort
// the write they describe.
func recordAudit(ctx context.Context, repo domain.AuditLogRepository, table string, recordID int64, action string, actor *int64) {
	entry := &domain.AuditLog{
		TableName:    table,
		RecordID:     recordID,
		Action:       action,
		ActingUserID: actor,
	}
	if err := repo.Create(ctx, entry); err != nil {
		msg := fmt.Sprintf("failed to record audit entry for %s %s #%d", table, action, recordID)
		logger.ErrorLog(ctx, msg, err)
	}
}
