package service

import (
	"context"

	"github.com/worklane/hrms/internal/apperror"
	"github.com/worklane/hrms/internal/domain"
	"github.com/worklane/hrms/internal/query"
	"github.com/worklane/hrms/internal/validate"
)

// SalaryService handles business logic for salary records. Net pay is always
// derived as basic + allowances - deductions and never accepted from clients.
type SalaryService struct {
	repo       domain.SalaryRepository
	employees  domain.EmployeeRepository
	currencies domain.CurrencyRepository
	audit      domain.AuditLogRepository
}

func NewSalaryService(
	repo domain.SalaryRepository,
	employees domain.EmployeeRepository,
	currencies domain.CurrencyRepository,
	audit domain.AuditLogRepository,
) *SalaryService {
	return &SalaryService{repo: repo, employees: employees, currencies: currencies, audit: audit}
}

type CreateSalaryInput struct {
	EmployeeID    int64   `json:"employee_id"`
	CurrencyCode  string  `json:"currency_code"`
	Basic         float64 `json:"basic"`
	Allowances    float64 `json:"allowances"`
	Deductions    float64 `json:"deductions"`
	EffectiveDate string  `json:"effective_date"`
}

type UpdateSalaryInput struct {
	CurrencyCode  *string  `json:"currency_code"`
	Basic         *float64 `json:"basic"`
	Allowances    *float64 `json:"allowances"`
	Deductions    *float64 `json:"deductions"`
	EffectiveDate *string  `json:"effective_date"`
}

func (ss *SalaryService) List(ctx context.Context, desc query.Descriptor) (*domain.Page[domain.Salary], error) {
	return ss.repo.List(ctx, desc)
}

func (ss *SalaryService) Get(ctx context.Context, id int64) (*domain.Salary, error) {
	return ss.repo.GetByID(ctx, id)
}

func (ss *SalaryService) Create(ctx context.Context, in CreateSalaryInput, actor *int64) (*domain.Salary, error) {
	errs := validate.Errors{}
	validate.RequiredID(errs, "employee_id", in.EmployeeID)
	validate.RequiredString(errs, "currency_code", in.CurrencyCode)
	validate.Positive(errs, "basic", in.Basic)
	validate.Positive(errs, "allowances", in.Allowances)
	validate.Positive(errs, "deductions", in.Deductions)
	effective := validate.Date(errs, "effective_date", in.EffectiveDate)
	if !errs.Empty() {
		return nil, apperror.Validation(errs)
	}

	if _, err := ss.employees.GetByID(ctx, in.EmployeeID); err != nil {
		if apperror.GetCode(err) != apperror.CodeNotFound {
			return nil, err
		}
		return nil, apperror.ValidationField("employee_id", "the selected employee does not exist")
	}
	if _, err := ss.currencies.GetByCode(ctx, in.CurrencyCode); err != nil {
		if apperror.GetCode(err) != apperror.CodeNotFound {
			return nil, err
		}
		return nil, apperror.ValidationField("currency_code", "the selected currency does not exist")
	}

	s := &domain.Salary{
		EmployeeID:    in.EmployeeID,
		CurrencyCode:  in.CurrencyCode,
		Basic:         in.Basic,
		Allowances:    in.Allowances,
		Deductions:    in.Deductions,
		EffectiveDate: effective,
	}
	s.Net = s.Basic + s.Allowances - s.Deductions
	s.CreatedBy = actor
	s.UpdatedBy = actor

	if err := ss.repo.Create(ctx, s); err != nil {
		return nil, err
	}
	recordAudit(ctx, ss.audit, "salaries", s.ID, auditActionCreate, actor)

	return ss.repo.GetByID(ctx, s.ID)
}

func (ss *SalaryService) Update(ctx context.Context, id int64, in UpdateSalaryInput, actor *int64) (*domain.Salary, error) {
	s, err := ss.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	errs := validate.Errors{}
	if in.Basic != nil {
		s.Basic = *in.Basic
		validate.Positive(errs, "basic", s.Basic)
	}
	if in.Allowances != nil {
		s.Allowances = *in.Allowances
		validate.Positive(errs, "allowances", s.Allowances)
	}
	if in.Deductions != nil {
		s.Deductions = *in.Deductions
		validate.Positive(errs, "deductions", s.Deductions)
	}
	if in.EffectiveDate != nil {
		s.EffectiveDate = validate.Date(errs, "effective_date", *in.EffectiveDate)
	}
	if in.CurrencyCode != nil {
		s.CurrencyCode = *in.CurrencyCode
		validate.RequiredString(errs, "currency_code", s.CurrencyCode)
	}
	if !errs.Empty() {
		return nil, apperror.Validation(errs)
	}

	if in.CurrencyCode != nil {
		if _, err := ss.currencies.GetByCode(ctx, s.CurrencyCode); err != nil {
			if apperror.GetCode(err) != apperror.CodeNotFound {
				return nil, err
			}
			return nil, apperror.ValidationField("currency_code", "the selected currency does not exist")
		}
	}

	s.Net = s.Basic + s.Allowances - s.Deductions
	s.UpdatedBy = actor
	if err := ss.repo.Update(ctx, s); err != nil {
		return nil, err
	}
	recordAudit(ctx, ss.audit, "salaries", s.ID, auditActionUpdate, actor)

	return ss.repo.GetByID(ctx, s.ID)
}

func (ss *SalaryService) Delete(ctx context.Context, id int64, actor *int64) error {
	if err := ss.repo.SoftDelete(ctx, id, actor); err != nil {
		return err
	}
	recordAudit(ctx, ss.audit, "salaries", id, auditActionDelete, actor)
	return nil
}
