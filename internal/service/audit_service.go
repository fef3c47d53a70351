package service

import (
	"context"

	"github.com/worklane/hrms/internal/apperror"
	"github.com/worklane/hrms/internal/domain"
	"github.com/worklane/hrms/internal/query"
)

// RecordLookup resolves one audited row by id. Lookups must bypass
// soft-delete scoping so the trail stays inspectable after the row is
// deleted.
type RecordLookup func(ctx context.Context, id int64) (interface{}, error)

// AuditLogService exposes the append-only audit trail, read-only.
type AuditLogService struct {
	repo    domain.AuditLogRepository
	records map[string]RecordLookup
}

func NewAuditLogService(repo domain.AuditLogRepository, records map[string]RecordLookup) *AuditLogService {
	return &AuditLogService{repo: repo, records: records}
}

func (as *AuditLogService) List(ctx context.Context, desc query.Descriptor) (*domain.Page[domain.AuditLog], error) {
	return as.repo.List(ctx, desc)
}

func (as *AuditLogService) Get(ctx context.Context, id int64) (*domain.AuditLog, error) {
	return as.repo.GetByID(ctx, id)
}

// Record fetches the row an audit entry points at. Tables without a
// registered lookup and hard-deleted rows resolve to nil rather than an
// error; the entry itself is still valid history.
func (as *AuditLogService) Record(ctx context.Context, l *domain.AuditLog) (interface{}, error) {
	lookup, ok := as.records[l.TableName]
	if !ok {
		return nil, nil
	}
	rec, err := lookup(ctx, l.RecordID)
	if err != nil {
		if apperror.GetCode(err) == apperror.CodeNotFound {
			return nil, nil
		}
		return nil, err
	}
	return rec, nil
}
