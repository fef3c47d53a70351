package service

import (
	"context"
	"strings"

	"github.com/worklane/hrms/internal/apperror"
	"github.com/worklane/hrms/internal/domain"
	"github.com/worklane/hrms/internal/query"
	"github.com/worklane/hrms/internal/validate"
)

// CurrencyService handles business logic for currencies.
type CurrencyService struct {
	repo  domain.CurrencyRepository
	audit domain.AuditLogRepository
}

func NewCurrencyService(repo domain.CurrencyRepository, audit domain.AuditLogRepository) *CurrencyService {
	return &CurrencyService{repo: repo, audit: audit}
}

type CreateCurrencyInput struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

type UpdateCurrencyInput struct {
	Name   *string `json:"name"`
	Symbol *string `json:"symbol"`
}

func (cs *CurrencyService) List(ctx context.Context, desc query.Descriptor) (*domain.Page[domain.Currency], error) {
	return cs.repo.List(ctx, desc)
}

func (cs *CurrencyService) Get(ctx context.Context, id int64) (*domain.Currency, error) {
	return cs.repo.GetByID(ctx, id)
}

func (cs *CurrencyService) Create(ctx context.Context, in CreateCurrencyInput, actor *int64) (*domain.Currency, error) {
	in.Code = strings.ToUpper(strings.TrimSpace(in.Code))

	errs := validate.Errors{}
	if len(in.Code) != 3 {
		errs.Add("code", "the code field must be a three-letter ISO currency code")
	}
	validate.RequiredString(errs, "name", in.Name)
	validate.MaxLen(errs, "name", in.Name, 100)
	validate.MaxLen(errs, "symbol", in.Symbol, 8)
	if !errs.Empty() {
		return nil, apperror.Validation(errs)
	}

	c := &domain.Currency{
		Code:   in.Code,
		Name:   in.Name,
		Symbol: in.Symbol,
	}
	c.CreatedBy = actor
	c.UpdatedBy = actor

	if err := cs.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	recordAudit(ctx, cs.audit, "currencies", c.ID, auditActionCreate, actor)

	return cs.repo.GetByID(ctx, c.ID)
}

func (cs *CurrencyService) Update(ctx context.Context, id int64, in UpdateCurrencyInput, actor *int64) (*domain.Currency, error) {
	c, err := cs.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	errs := validate.Errors{}
	if in.Name != nil {
		c.Name = *in.Name
		validate.RequiredString(errs, "name", c.Name)
		validate.MaxLen(errs, "name", c.Name, 100)
	}
	if in.Symbol != nil {
		c.Symbol = *in.Symbol
		validate.MaxLen(errs, "symbol", c.Symbol, 8)
	}
	if !errs.Empty() {
		return nil, apperror.Validation(errs)
	}

	c.UpdatedBy = actor
	if err := cs.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	recordAudit(ctx, cs.audit, "currencies", c.ID, auditActionUpdate, actor)

	return cs.repo.GetByID(ctx, c.ID)
}

func (cs *CurrencyService) Delete(ctx context.Context, id int64, actor *int64) error {
	if err := cs.repo.SoftDelete(ctx, id, actor); err != nil {
		return err
	}
	recordAudit(ctx, cs.audit, "currencies", id, auditActionDelete, actor)
	return nil
}

func (cs *CurrencyService) Options(ctx context.Context) ([]domain.CurrencyOption, error) {
	return cs.repo.Options(ctx)
}
