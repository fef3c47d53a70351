package service

import (
	"context"
	"io"

	"github.com/worklane/hrms/internal/apperror"
	"github.com/worklane/hrms/internal/domain"
	"github.com/worklane/hrms/internal/logger"
	"github.com/worklane/hrms/internal/query"
	"github.com/worklane/hrms/internal/storage"
	"github.com/worklane/hrms/internal/validate"
)

// DocumentService handles business logic for employee documents. Files live
// in the external store; the database row carries the reference. Replacement
// stores the new file first, swaps the reference, and only then removes the
// old file so a failed write never strands the row without its artifact.
type DocumentService struct {
	repo      domain.DocumentRepository
	employees domain.EmployeeRepository
	store     storage.Store
	audit     domain.AuditLogRepository
}

func NewDocumentService(
	repo domain.DocumentRepository,
	employees domain.EmployeeRepository,
	store storage.Store,
	audit domain.AuditLogRepository,
) *DocumentService {
	return &DocumentService{repo: repo, employees: employees, store: store, audit: audit}
}

type CreateDocumentInput struct {
	EmployeeID int64
	Title      string
	FileName   string
	MimeType   string
	File       io.Reader
}

type UpdateDocumentInput struct {
	Title *string

	// FileName/MimeType/File describe a replacement artifact; all three are
	// set together or not at all.
	FileName string
	MimeType string
	File     io.Reader
}

func (ds *DocumentService) List(ctx context.Context, desc query.Descriptor) (*domain.Page[domain.EmployeeDocument], error) {
	return ds.repo.List(ctx, desc)
}

func (ds *DocumentService) Get(ctx context.Context, id int64) (*domain.EmployeeDocument, error) {
	return ds.repo.GetByID(ctx, id)
}

func (ds *DocumentService) Create(ctx context.Context, in CreateDocumentInput, actor *int64) (*domain.EmployeeDocument, error) {
	errs := validate.Errors{}
	validate.RequiredID(errs, "employee_id", in.EmployeeID)
	validate.RequiredString(errs, "title", in.Title)
	validate.MaxLen(errs, "title", in.Title, 200)
	if in.File == nil {
		errs.Add("file", "the file field is required")
	}
	if !errs.Empty() {
		return nil, apperror.Validation(errs)
	}

	if _, err := ds.employees.GetByID(ctx, in.EmployeeID); err != nil {
		if apperror.GetCode(err) != apperror.CodeNotFound {
			return nil, err
		}
		return nil, apperror.ValidationField("employee_id", "the selected employee does not exist")
	}

	path, size, err := ds.store.Save(ctx, in.File, in.FileName)
	if err != nil {
		return nil, apperror.Storage(err)
	}

	d := &domain.EmployeeDocument{
		EmployeeID: in.EmployeeID,
		Title:      in.Title,
		FilePath:   path,
		MimeType:   in.MimeType,
		SizeBytes:  size,
	}
	d.CreatedBy = actor
	d.UpdatedBy = actor

	if err := ds.repo.Create(ctx, d); err != nil {
		if derr := ds.store.Delete(ctx, path); derr != nil {
			logger.ErrorLog(ctx, "failed to remove orphaned document file", derr)
		}
		return nil, err
	}
	recordAudit(ctx, ds.audit, "employee_documents", d.ID, auditActionCreate, actor)

	return ds.repo.GetByID(ctx, d.ID)
}

func (ds *DocumentService) Update(ctx context.Context, id int64, in UpdateDocumentInput, actor *int64) (*domain.EmployeeDocument, error) {
	d, err := ds.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	errs := validate.Errors{}
	if in.Title != nil {
		d.Title = *in.Title
		validate.RequiredString(errs, "title", d.Title)
		validate.MaxLen(errs, "title", d.Title, 200)
	}
	if !errs.Empty() {
		return nil, apperror.Validation(errs)
	}

	oldPath := ""
	if in.File != nil {
		path, size, err := ds.store.Save(ctx, in.File, in.FileName)
		if err != nil {
			return nil, apperror.Storage(err)
		}
		oldPath = d.FilePath
		d.FilePath = path
		d.MimeType = in.MimeType
		d.SizeBytes = size
	}

	d.UpdatedBy = actor
	if err := ds.repo.Update(ctx, d); err != nil {
		if in.File != nil {
			if derr := ds.store.Delete(ctx, d.FilePath); derr != nil {
				logger.ErrorLog(ctx, "failed to remove orphaned document file", derr)
			}
		}
		return nil, err
	}
	recordAudit(ctx, ds.audit, "employee_documents", d.ID, auditActionUpdate, actor)

	// The row now points at the new file; the old artifact is unreferenced
	// and safe to drop.
	if oldPath != "" {
		if err := ds.store.Delete(ctx, oldPath); err != nil {
			logger.ErrorLog(ctx, "failed to remove replaced document file", err)
		}
	}

	return ds.repo.GetByID(ctx, d.ID)
}

// Delete soft-deletes the row and keeps the stored file so the document can
// still be produced for audit purposes.
func (ds *DocumentService) Delete(ctx context.Context, id int64, actor *int64) error {
	if err := ds.repo.SoftDelete(ctx, id, actor); err != nil {
		return err
	}
	recordAudit(ctx, ds.audit, "employee_documents", id, auditActionDelete, actor)
	return nil
}

// Open returns the stored artifact metadata after verifying the file still
// exists in the store.
func (ds *DocumentService) Open(ctx context.Context, id int64) (*domain.EmployeeDocument, error) {
	d, err := ds.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	ok, err := ds.store.Exists(ctx, d.FilePath)
	if err != nil {
		return nil, apperror.Storage(err)
	}
	if !ok {
		return nil, apperror.NotFound("document file")
	}
	return d, nil
}
