package service

import (
	"context"
	"time"

	"github.com/worklane/hrms/internal/apperror"
	"github.com/worklane/hrms/internal/domain"
	"github.com/worklane/hrms/internal/query"
	"github.com/worklane/hrms/internal/validate"
)

// LeaveService handles business logic for leave requests. Requests start
// pending and transition exactly once into approved, rejected or cancelled.
type LeaveService struct {
	repo       domain.LeaveRepository
	employees  domain.EmployeeRepository
	leaveTypes domain.LeaveTypeRepository
	audit      domain.AuditLogRepository
}

func NewLeaveService(
	repo domain.LeaveRepository,
	employees domain.EmployeeRepository,
	leaveTypes domain.LeaveTypeRepository,
	audit domain.AuditLogRepository,
) *LeaveService {
	return &LeaveService{repo: repo, employees: employees, leaveTypes: leaveTypes, audit: audit}
}

type CreateLeaveInput struct {
	EmployeeID  int64  `json:"employee_id"`
	LeaveTypeID int64  `json:"leave_type_id"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Reason      string `json:"reason"`
}

type UpdateLeaveInput struct {
	LeaveTypeID *int64  `json:"leave_type_id"`
	StartDate   *string `json:"start_date"`
	EndDate     *string `json:"end_date"`
	Reason      *string `json:"reason"`
}

func (ls *LeaveService) List(ctx context.Context, desc query.Descriptor) (*domain.Page[domain.Leave], error) {
	return ls.repo.List(ctx, desc)
}

func (ls *LeaveService) Get(ctx context.Context, id int64) (*domain.Leave, error) {
	return ls.repo.GetByID(ctx, id)
}

func (ls *LeaveService) Create(ctx context.Context, in CreateLeaveInput, actor *int64) (*domain.Leave, error) {
	errs := validate.Errors{}
	validate.RequiredID(errs, "employee_id", in.EmployeeID)
	validate.RequiredID(errs, "leave_type_id", in.LeaveTypeID)
	start := validate.Date(errs, "start_date", in.StartDate)
	end := validate.Date(errs, "end_date", in.EndDate)
	validate.MaxLen(errs, "reason", in.Reason, 500)
	if errs.Empty() && end.Before(start) {
		errs.Add("end_date", "the end_date field must not be before start_date")
	}
	if !errs.Empty() {
		return nil, apperror.Validation(errs)
	}

	if _, err := ls.employees.GetByID(ctx, in.EmployeeID); err != nil {
		if apperror.GetCode(err) != apperror.CodeNotFound {
			return nil, err
		}
		return nil, apperror.ValidationField("employee_id", "the selected employee does not exist")
	}
	if _, err := ls.leaveTypes.GetByID(ctx, in.LeaveTypeID); err != nil {
		if apperror.GetCode(err) != apperror.CodeNotFound {
			return nil, err
		}
		return nil, apperror.ValidationField("leave_type_id", "the selected leave type does not exist")
	}

	l := &domain.Leave{
		EmployeeID:  in.EmployeeID,
		LeaveTypeID: in.LeaveTypeID,
		StartDate:   start,
		EndDate:     end,
		TotalDays:   totalLeaveDays(start, end),
		Reason:      in.Reason,
		Status:      domain.LeaveStatusPending,
	}
	l.CreatedBy = actor
	l.UpdatedBy = actor

	if err := ls.repo.Create(ctx, l); err != nil {
		return nil, err
	}
	recordAudit(ctx, ls.audit, "leaves", l.ID, auditActionCreate, actor)

	return ls.repo.GetByID(ctx, l.ID)
}

// Update edits the details of a pending request. Decided requests are
// immutable apart from the decision itself.
func (ls *LeaveService) Update(ctx context.Context, id int64, in UpdateLeaveInput, actor *int64) (*domain.Leave, error) {
	l, err := ls.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if l.Status != domain.LeaveStatusPending {
		return nil, apperror.Conflict("only pending leave requests can be edited")
	}

	errs := validate.Errors{}
	if in.StartDate != nil {
		l.StartDate = validate.Date(errs, "start_date", *in.StartDate)
	}
	if in.EndDate != nil {
		l.EndDate = validate.Date(errs, "end_date", *in.EndDate)
	}
	if in.Reason != nil {
		l.Reason = *in.Reason
		validate.MaxLen(errs, "reason", l.Reason, 500)
	}
	if in.LeaveTypeID != nil {
		l.LeaveTypeID = *in.LeaveTypeID
		validate.RequiredID(errs, "leave_type_id", l.LeaveTypeID)
	}
	if errs.Empty() && l.EndDate.Before(l.StartDate) {
		errs.Add("end_date", "the end_date field must not be before start_date")
	}
	if !errs.Empty() {
		return nil, apperror.Validation(errs)
	}

	if in.LeaveTypeID != nil {
		if _, err := ls.leaveTypes.GetByID(ctx, l.LeaveTypeID); err != nil {
			if apperror.GetCode(err) != apperror.CodeNotFound {
				return nil, err
			}
			return nil, apperror.ValidationField("leave_type_id", "the selected leave type does not exist")
		}
	}

	l.TotalDays = totalLeaveDays(l.StartDate, l.EndDate)
	l.UpdatedBy = actor
	if err := ls.repo.Update(ctx, l); err != nil {
		return nil, err
	}
	recordAudit(ctx, ls.audit, "leaves", l.ID, auditActionUpdate, actor)

	return ls.repo.GetByID(ctx, l.ID)
}

// Decide moves a pending request into one of the terminal states.
func (ls *LeaveService) Decide(ctx context.Context, id int64, status string, actor *int64) (*domain.Leave, error) {
	switch status {
	case domain.LeaveStatusApproved, domain.LeaveStatusRejected, domain.LeaveStatusCancelled:
	default:
		return nil, apperror.ValidationField("status", "the selected status is invalid")
	}

	l, err := ls.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if l.Status != domain.LeaveStatusPending {
		return nil, apperror.Conflict("leave request has already been " + l.Status)
	}

	l.Status = status
	l.UpdatedBy = actor
	if err := ls.repo.Update(ctx, l); err != nil {
		return nil, err
	}
	recordAudit(ctx, ls.audit, "leaves", l.ID, auditActionUpdate, actor)

	return ls.repo.GetByID(ctx, l.ID)
}

func (ls *LeaveService) Delete(ctx context.Context, id int64, actor *int64) error {
	if err := ls.repo.SoftDelete(ctx, id, actor); err != nil {
		return err
	}
	recordAudit(ctx, ls.audit, "leaves", id, auditActionDelete, actor)
	return nil
}

// totalLeaveDays counts calendar days inclusive of both endpoints.
func totalLeaveDays(start, end time.Time) int {
	return int(end.Sub(start).Hours()/24) + 1
}
