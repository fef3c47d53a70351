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

var currencyQuery = query.Definition{
	Table:      "currencies",
	SoftDelete: true,
	Filters: []query.Filter{
		{Key: "code", Kind: query.Partial, Column: "currencies.code"},
		{Key: "name", Kind: query.Partial, Column: "currencies.name"},
	},
	Sorts: map[string]string{
		"code":       "currencies.code",
		"name":       "currencies.name",
		"created_at": "currencies.created_at",
	},
}

var currencyColumns = []string{
	"currencies.id", "currencies.code", "currencies.name", "currencies.symbol",
	"currencies.created_at", "currencies.updated_at", "currencies.deleted_at",
	"currencies.created_by", "currencies.updated_by", "currencies.deleted_by",
}

type currencyRepository struct {
	db *sql.DB
}

// NewCurrencyRepository creates a new instance of CurrencyRepository.
func NewCurrencyRepository(db *sql.DB) domain.CurrencyRepository {
	return &currencyRepository{db: db}
}

func scanCurrency(s rowScanner) (domain.Currency, error) {
	var c domain.Currency
	err := s.Scan(
		&c.ID, &c.Code, &c.Name, &c.Symbol,
		&c.CreatedAt, &c.UpdatedAt, &c.DeletedAt,
		&c.CreatedBy, &c.UpdatedBy, &c.DeletedBy,
	)
	return c, err
}

func (r *currencyRepository) List(ctx context.Context, desc query.Descriptor) (*domain.Page[domain.Currency], error) {
	return fetchPage(ctx, r.db, currencyQuery, desc, currencyColumns, scanCurrency)
}

func (r *currencyRepository) GetByID(ctx context.Context, id int64) (*domain.Currency, error) {
	stmt, args := builder.NewSQLBuilder().
		Select(currencyColumns...).
		From("currencies").
		Where("currencies.id = ?", id).
		Where("currencies.deleted_at IS NULL").
		Build()

	c, err := scanCurrency(r.db.QueryRowContext(ctx, stmt, args...))
	if err != nil {
		return nil, database.TranslateError(err, "currency")
	}
	return &c, nil
}

func (r *currencyRepository) GetByCode(ctx context.Context, code string) (*domain.Currency, error) {
	stmt, args := builder.NewSQLBuilder().
		Select(currencyColumns...).
		From("currencies").
		Where("currencies.code = ?", code).
		Where("currencies.deleted_at IS NULL").
		Build()

	c, err := scanCurrency(r.db.QueryRowContext(ctx, stmt, args...))
	if err != nil {
		return nil, database.TranslateError(err, "currency")
	}
	return &c, nil
}

func (r *currencyRepository) Create(ctx context.Context, c *domain.Currency) error {
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now

	stmt, args := builder.NewSQLBuilder().
		Insert("currencies",
			"code", "name", "symbol",
			"created_at", "updated_at", "created_by", "updated_by").
		Values(c.Code, c.Name, c.Symbol,
			c.CreatedAt, c.UpdatedAt, c.CreatedBy, c.UpdatedBy).
		Returning("id").
		Build()

	if err := r.db.QueryRowContext(ctx, stmt, args...).Scan(&c.ID); err != nil {
		return database.TranslateError(err, "currency")
	}
	return nil
}

func (r *currencyRepository) Update(ctx context.Context, c *domain.Currency) error {
	c.UpdatedAt = time.Now().UTC()

	stmt, args := builder.NewSQLBuilder().
		Update("currencies").
		Set("code", c.Code).
		Set("name", c.Name).
		Set("symbol", c.Symbol).
		Set("updated_at", c.UpdatedAt).
		Set("updated_by", c.UpdatedBy).
		Where("id = ?", c.ID).
		Where("deleted_at IS NULL").
		Build()

	res, err := r.db.ExecContext(ctx, stmt, args...)
	if err != nil {
		return database.TranslateError(err, "currency")
	}
	return database.TranslateError(requireAffected(res), "currency")
}

func (r *currencyRepository) SoftDelete(ctx context.Context, id int64, actor *int64) error {
	now := time.Now().UTC()
	stmt, args := builder.NewSQLBuilder().
		Update("currencies").
		Set("deleted_at", now).
		Set("deleted_by", actor).
		Set("updated_at", now).
		Where("id = ?", id).
		Where("deleted_at IS NULL").
		Build()

	res, err := r.db.ExecContext(ctx, stmt, args...)
	if err != nil {
		return database.TranslateError(err, "currency")
	}
	return database.TranslateError(requireAffected(res), "currency")
}

func (r *currencyRepository) Options(ctx context.Context) ([]domain.CurrencyOption, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT code, name FROM currencies WHERE deleted_at IS NULL ORDER BY code`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var options []domain.CurrencyOption
	for rows.Next() {
		var o domain.CurrencyOption
		if err := rows.Scan(&o.Code, &o.Name); err != nil {
			return nil, err
		}
		options = append(options, o)
	}
	return options, rows.Err()
}
