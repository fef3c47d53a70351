package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/worklane/hrms/internal/domain"
	"github.com/worklane/hrms/internal/query"
	"github.com/worklane/hrms/internal/repository/builder"
)

// rowScanner lets the per-resource scan functions serve both sql.Rows and
// sql.Row lookups.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// fetchPage runs the shared list pipeline for one resource: the definition's
// allow-lists are applied to a count query and to the windowed select, and
// the scanned rows are wrapped with pagination metadata.
func fetchPage[T any](
	ctx context.Context,
	db *sql.DB,
	def query.Definition,
	desc query.Descriptor,
	columns []string,
	scan func(rowScanner) (T, error),
) (*domain.Page[T], error) {
	countBuilder := builder.NewSQLBuilder().Select("1").From(def.Table)
	def.Apply(countBuilder, desc)
	countSQL, countArgs := countBuilder.BuildCount()

	var total int
	if err := db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count %s: %w", def.Table, err)
	}

	listBuilder := builder.NewSQLBuilder().Select(columns...).From(def.Table)
	def.Apply(listBuilder, desc)
	listBuilder.Limit(desc.PerPage).Offset(desc.Offset())
	listSQL, listArgs := listBuilder.Build()

	rows, err := db.QueryContext(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", def.Table, err)
	}
	defer rows.Close()

	items := make([]T, 0, desc.PerPage)
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", def.Table, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", def.Table, err)
	}

	return domain.NewPage(items, desc.Page, desc.PerPage, total), nil
}

// requireAffected converts a zero-row write into sql.ErrNoRows, used by
// update and delete paths that address one row by id.
func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
