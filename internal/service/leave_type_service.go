package service

import (
	"context"

	"github.com/worklane/hrms/internal/apperror"
	"github.com/worklane/hrms/internal/domain"
	"github.com/worklane/hrms/internal/query"
	"github.com/worklane/hrms/internal/validate"
)

// LeaveTypeService handles business logic for leave types.
type LeaveTypeService struct {
	repo  domain.LeaveTypeRepository
	audit domain.AuditLogRepository
}

func NewLeaveTypeService(repo domain.LeaveTypeRepository, audit domain.AuditLogRepository) *LeaveTypeService {
	return &LeaveTypeService{repo: repo, audit: audit}
}

type CreateLeaveTypeInput struct {
	Name        string `json:"name"`
	AnnualQuota int    `json:"annual_quota"`
}

type UpdateLeaveTypeInput struct {
	Name        *string `json:"name"`
	AnnualQuota *int    `json:"annual_quota"`
}

func (ls *LeaveTypeService) List(ctx context.Context, desc query.Descriptor) (*domain.Page[domain.LeaveType], error) {
	return ls.repo.List(ctx, desc)
}

func (ls *LeaveTypeService) Get(ctx context.Context, id int64) (*domain.LeaveType, error) {
	return ls.repo.GetByID(ctx, id)
}

func (ls *LeaveTypeService) Create(ctx context.Context, in CreateLeaveTypeInput, actor *int64) (*domain.LeaveType, error) {
	errs := validate.Errors{}
	validate.RequiredString(errs, "name", in.Name)
	validate.MaxLen(errs, "name", in.Name, 100)
	if in.AnnualQuota < 0 {
		errs.Add("annual_quota", "the annual_quota field must not be negative")
	}
	if !errs.Empty() {
		return nil, apperror.Validation(errs)
	}

	lt := &domain.LeaveType{
		Name:        in.Name,
		AnnualQuota: in.AnnualQuota,
	}
	lt.CreatedBy = actor
	lt.UpdatedBy = actor

	if err := ls.repo.Create(ctx, lt); err != nil {
		return nil, err
	}
	recordAudit(ctx, ls.audit, "leave_types", lt.ID, auditActionCreate, actor)

	return ls.repo.GetByID(ctx, lt.ID)
}

func (ls *LeaveTypeService) Update(ctx context.Context, id int64, in UpdateLeaveTypeInput, actor *int64) (*domain.LeaveType, error) {
	lt, err := ls.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	errs := validate.Errors{}
	if in.Name != nil {
		lt.Name = *in.Name
		validate.RequiredString(errs, "name", lt.Name)
		validate.MaxLen(errs, "name", lt.Name, 100)
	}
	if in.AnnualQuota != nil {
		lt.AnnualQuota = *in.AnnualQuota
		if lt.AnnualQuota < 0 {
			errs.Add("annual_quota", "the annual_quota field must not be negative")
		}
	}
	if !errs.Empty() {
		return nil, apperror.Validation(errs)
	}

	lt.UpdatedBy = actor
	if err := ls.repo.Update(ctx, lt); err != nil {
		return nil, err
	}
	recordAudit(ctx, ls.audit, "leave_types", lt.ID, auditActionUpdate, actor)

	return ls.repo.GetByID(ctx, lt.ID)
}

func (ls *LeaveTypeService) Delete(ctx context.Context, id int64, actor *int64) error {
	if err := ls.repo.SoftDelete(ctx, id, actor); err != nil {
		return err
	}
	recordAudit(ctx, ls.audit, "leave_types", id, auditActionDelete, actor)
	return nil
}

func (ls *LeaveTypeService) Options(ctx context.Context) ([]domain.Option, error) {
	return ls.repo.Options(ctx)
}
