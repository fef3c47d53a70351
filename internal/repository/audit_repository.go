package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/worklane/hrms/internal/database"
	"github.com/worklane/hrms/internal/domain"
	"github.com/worklane/hrms/internal/query"
	"github.com/worklane/hrms/internal/repository/builder"
)

var auditQuery = query.Definition{
	Table:      "audit_logs",
	SoftDelete: false,
	Filters: []query.Filter{
		{Key: "table_name", Kind: query.Exact, Column: "audit_logs.table_name"},
		{Key: "record_id", Kind: query.Exact, Column: "audit_logs.record_id"},
		{Key: "action", Kind: query.Exact, Column: "audit_logs.action"},
		{Key: "date_range", Kind: query.Scoped, Scope: query.DateRange("audit_logs.created_at")},
	},
	Sorts: map[string]string{
		"created_at": "audit_logs.created_at",
		"table_name": "audit_logs.table_name",
	},
}

var auditColumns = []string{
	"audit_logs.id", "audit_logs.table_name", "audit_logs.record_id",
	"audit_logs.action", "audit_logs.acting_user_id", "audit_logs.created_at",
}

type auditLogRepository struct {
	db *sql.DB
}

// NewAuditLogRepository creates a new instance of AuditLogRepository. Audit
// logs are append-only and read-only over the API.
func NewAuditLogRepository(db *sql.DB) domain.AuditLogRepository {
	return &auditLogRepository{db: db}
}

func scanAuditLog(s rowScanner) (domain.AuditLog, error) {
	var a domain.AuditLog
	err := s.Scan(&a.ID, &a.TableName, &a.RecordID, &a.Action, &a.ActingUserID, &a.CreatedAt)
	return a, err
}

func (r *auditLogRepository) List(ctx context.Context, desc query.Descriptor) (*domain.Page[domain.AuditLog], error) {
	page, err := fetchPage(ctx, r.db, auditQuery, desc, auditColumns, scanAuditLog)
	if err != nil {
		return nil, err
	}

	items := make([]*domain.AuditLog, len(page.Items))
	for i := range page.Items {
		items[i] = &page.Items[i]
	}
	if err := r.attachRelations(ctx, items); err != nil {
		return nil, err
	}
	return page, nil
}

func (r *auditLogRepository) GetByID(ctx context.Context, id int64) (*domain.AuditLog, error) {
	stmt, args := builder.NewSQLBuilder().
		Select(auditColumns...).
		From("audit_logs").
		Where("audit_logs.id = ?", id).
		Build()

	a, err := scanAuditLog(r.db.QueryRowContext(ctx, stmt, args...))
	if err != nil {
		return nil, database.TranslateError(err, "audit log")
	}
	if err := r.attachRelations(ctx, []*domain.AuditLog{&a}); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *auditLogRepository) attachRelations(ctx context.Context, items []*domain.AuditLog) error {
	var userIDs []int64
	for _, a := range items {
		userIDs = collectIDs(userIDs, a.ActingUserID)
	}

	users, err := loadUsersByID(ctx, r.db, userIDs)
	if err != nil {
		return err
	}
	for _, a := range items {
		if a.ActingUserID != nil {
			a.ActingUser = users[*a.ActingUserID]
		}
	}
	return nil
}

func (r *auditLogRepository) Create(ctx context.Context, entry *domain.AuditLog) error {
	entry.CreatedAt = time.Now().UTC()

	stmt, args := builder.NewSQLBuilder().
		Insert("audit_logs",
			"table_name", "record_id", "action", "acting_user_id", "created_at").
		Values(entry.TableName, entry.RecordID, entry.Action,
			entry.ActingUserID, entry.CreatedAt).
		Returning("id").
		Build()

	if err := r.db.QueryRowContext(ctx, stmt, args...).Scan(&entry.ID); err != nil {
		return database.TranslateError(err, "audit log")
	}
	return nil
}
