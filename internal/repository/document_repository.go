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

var documentQuery = query.Definition{
	Table:      "employee_documents",
	SoftDelete: true,
	Filters: []query.Filter{
		{Key: "for_employee", Kind: query.Scoped, Scope: query.EqualsID("employee_documents.employee_id")},
		{Key: "title", Kind: query.Partial, Column: "employee_documents.title"},
		{Key: "mime_type", Kind: query.Exact, Column: "employee_documents.mime_type"},
		{Key: "employee.first_name", Kind: query.Partial, Column: "employees.first_name"},
	},
	Sorts: map[string]string{
		"title":               "employee_documents.title",
		"size_bytes":          "employee_documents.size_bytes",
		"created_at":          "employee_documents.created_at",
		"employee.first_name": "employees.first_name",
	},
	Joins: map[string]query.Join{
		"employee": {Table: "employees", On: "employees.id = employee_documents.employee_id"},
	},
}

var documentColumns = []string{
	"employee_documents.id", "employee_documents.employee_id",
	"employee_documents.title", "employee_documents.file_path",
	"employee_documents.mime_type", "employee_documents.size_bytes",
	"employee_documents.created_at", "employee_documents.updated_at",
	"employee_documents.deleted_at",
	"employee_documents.created_by", "employee_documents.updated_by",
	"employee_documents.deleted_by",
}

type documentRepository struct {
	db *sql.DB
}

// NewDocumentRepository creates a new instance of DocumentRepository.
func NewDocumentRepository(db *sql.DB) domain.DocumentRepository {
	return &documentRepository{db: db}
}

func scanDocument(s rowScanner) (domain.EmployeeDocument, error) {
	var d domain.EmployeeDocument
	err := s.Scan(
		&d.ID, &d.EmployeeID, &d.Title, &d.FilePath, &d.MimeType, &d.SizeBytes,
		&d.CreatedAt, &d.UpdatedAt, &d.DeletedAt,
		&d.CreatedBy, &d.UpdatedBy, &d.DeletedBy,
	)
	return d, err
}

func (r *documentRepository) List(ctx context.Context, desc query.Descriptor) (*domain.Page[domain.EmployeeDocument], error) {
	page, err := fetchPage(ctx, r.db, documentQuery, desc, documentColumns, scanDocument)
	if err != nil {
		return nil, err
	}

	items := make([]*domain.EmployeeDocument, len(page.Items))
	for i := range page.Items {
		items[i] = &page.Items[i]
	}
	if err := r.attachRelations(ctx, items); err != nil {
		return nil, err
	}
	return page, nil
}

func (r *documentRepository) GetByID(ctx context.Context, id int64) (*domain.EmployeeDocument, error) {
	return r.get(ctx, id, true)
}

func (r *documentRepository) GetAnyByID(ctx context.Context, id int64) (*domain.EmployeeDocument, error) {
	return r.get(ctx, id, false)
}

func (r *documentRepository) get(ctx context.Context, id int64, scoped bool) (*domain.EmployeeDocument, error) {
	b := builder.NewSQLBuilder().
		Select(documentColumns...).
		From("employee_documents").
		Where("employee_documents.id = ?", id)
	if scoped {
		b.Where("employee_documents.deleted_at IS NULL")
	}
	stmt, args := b.Build()

	d, err := scanDocument(r.db.QueryRowContext(ctx, stmt, args...))
	if err != nil {
		return nil, database.TranslateError(err, "document")
	}
	if err := r.attachRelations(ctx, []*domain.EmployeeDocument{&d}); err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *documentRepository) attachRelations(ctx context.Context, items []*domain.EmployeeDocument) error {
	var userIDs, employeeIDs []int64
	for _, d := range items {
		userIDs = collectIDs(userIDs, d.CreatedBy, d.UpdatedBy, d.DeletedBy)
		employeeIDs = collectIDs(employeeIDs, &d.EmployeeID)
	}

	users, err := loadUsersByID(ctx, r.db, userIDs)
	if err != nil {
		return err
	}
	employees, err := loadEmployeesByID(ctx, r.db, employeeIDs)
	if err != nil {
		return err
	}

	for _, d := range items {
		d.Employee = employees[d.EmployeeID]
		if d.CreatedBy != nil {
			d.CreatedByUser = users[*d.CreatedBy]
		}
		if d.UpdatedBy != nil {
			d.UpdatedByUser = users[*d.UpdatedBy]
		}
		if d.DeletedBy != nil {
			d.DeletedByUser = users[*d.DeletedBy]
		}
	}
	return nil
}

func (r *documentRepository) Create(ctx context.Context, d *domain.EmployeeDocument) error {
	now := time.Now().UTC()
	d.CreatedAt = now
	d.UpdatedAt = now

	stmt, args := builder.NewSQLBuilder().
		Insert("employee_documents",
			"employee_id", "title", "file_path", "mime_type", "size_bytes",
			"created_at", "updated_at", "created_by", "updated_by").
		Values(d.EmployeeID, d.Title, d.FilePath, d.MimeType, d.SizeBytes,
			d.CreatedAt, d.UpdatedAt, d.CreatedBy, d.UpdatedBy).
		Returning("id").
		Build()

	if err := r.db.QueryRowContext(ctx, stmt, args...).Scan(&d.ID); err != nil {
		return database.TranslateError(err, "document")
	}
	return nil
}

// Update writes the document row inside one transaction so a file-reference
// swap is atomic with the metadata change. The previous file path is
// returned to the caller, which deletes the stored file only after the
// transaction has committed.
func (r *documentRepository) Update(ctx context.Context, d *domain.EmployeeDocument) error {
	d.UpdatedAt = time.Now().UTC()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, args := builder.NewSQLBuilder().
		Update("employee_documents").
		Set("title", d.Title).
		Set("file_path", d.FilePath).
		Set("mime_type", d.MimeType).
		Set("size_bytes", d.SizeBytes).
		Set("updated_at", d.UpdatedAt).
		Set("updated_by", d.UpdatedBy).
		Where("id = ?", d.ID).
		Where("deleted_at IS NULL").
		Build()

	res, err := tx.ExecContext(ctx, stmt, args...)
	if err != nil {
		return database.TranslateError(err, "document")
	}
	if err := requireAffected(res); err != nil {
		return database.TranslateError(err, "document")
	}
	return tx.Commit()
}

func (r *documentRepository) SoftDelete(ctx context.Context, id int64, actor *int64) error {
	now := time.Now().UTC()
	stmt, args := builder.NewSQLBuilder().
		Update("employee_documents").
		Set("deleted_at", now).
		Set("deleted_by", actor).
		Set("updated_at", now).
		Where("id = ?", id).
		Where("deleted_at IS NULL").
		Build()

	res, err := r.db.ExecContext(ctx, stmt, args...)
	if err != nil {
		return database.TranslateError(err, "document")
	}
	return database.TranslateError(requireAffected(res), "document")
}
