// Package builder constructs parameterized Postgres statements ($n
// placeholders) through a small fluent API. Conditions are written with "?"
// markers and renumbered at build time.
package builder

import (
	"fmt"
	"strings"
)

type statementKind int

const (
	kindSelect statementKind = iota
	kindInsert
	kindUpdate
	kindDelete
)

type SQLBuilder struct {
	kind       statementKind
	table      string
	columns    []string
	values     []interface{}
	updateCols []string
	updateArgs []interface{}
	where      []string
	whereArgs  []interface{}
	joins      []string
	joinSeen   map[string]struct{}
	orderBy    []string
	limit      int
	offset     int
	hasOffset  bool
	returning  string
}

func NewSQLBuilder() *SQLBuilder {
	return &SQLBuilder{joinSeen: make(map[string]struct{})}
}

// Select specifies the columns to retrieve.
func (b *SQLBuilder) Select(cols ...string) *SQLBuilder {
	b.kind = kindSelect
	b.columns = cols
	return b
}

// From specifies the table to select from.
func (b *SQLBuilder) From(table string) *SQLBuilder {
	b.table = table
	return b
}

// Insert specifies the table and columns for insertion.
func (b *SQLBuilder) Insert(table string, cols ...string) *SQLBuilder {
	b.kind = kindInsert
	b.table = table
	b.columns = cols
	return b
}

// Values specifies the values for insertion, one per inserted column.
func (b *SQLBuilder) Values(vals ...interface{}) *SQLBuilder {
	b.values = append(b.values, vals...)
	return b
}

// Update specifies the table to update.
func (b *SQLBuilder) Update(table string) *SQLBuilder {
	b.kind = kindUpdate
	b.table = table
	return b
}

// Set adds a column assignment for an update.
func (b *SQLBuilder) Set(col string, val interface{}) *SQLBuilder {
	b.updateCols = append(b.updateCols, col)
	b.updateArgs = append(b.updateArgs, val)
	return b
}

// Delete specifies the table to delete from.
func (b *SQLBuilder) Delete(table string) *SQLBuilder {
	b.kind = kindDelete
	b.table = table
	return b
}

// Where adds a condition; multiple conditions are combined with AND.
func (b *SQLBuilder) Where(condition string, args ...interface{}) *SQLBuilder {
	b.where = append(b.where, condition)
	b.whereArgs = append(b.whereArgs, args...)
	return b
}

// Join adds a JOIN clause.
func (b *SQLBuilder) Join(joinType, table, on string) *SQLBuilder {
	b.joins = append(b.joins, fmt.Sprintf("%s JOIN %s ON %s", joinType, table, on))
	return b
}

// JoinOnce adds a JOIN clause unless an identical one is already present.
// Relation-path filters and sorts may request the same join independently.
func (b *SQLBuilder) JoinOnce(joinType, table, on string) *SQLBuilder {
	key := joinType + "|" + table + "|" + on
	if _, ok := b.joinSeen[key]; ok {
		return b
	}
	b.joinSeen[key] = struct{}{}
	return b.Join(joinType, table, on)
}

// OrderBy adds an ORDER BY term.
func (b *SQLBuilder) OrderBy(order string) *SQLBuilder {
	b.orderBy = append(b.orderBy, order)
	return b
}

func (b *SQLBuilder) Limit(limit int) *SQLBuilder {
	b.limit = limit
	return b
}

func (b *SQLBuilder) Offset(offset int) *SQLBuilder {
	b.offset = offset
	b.hasOffset = true
	return b
}

// Returning adds a RETURNING clause to an insert or update.
func (b *SQLBuilder) Returning(cols string) *SQLBuilder {
	b.returning = cols
	return b
}

// Build constructs the final SQL string and its arguments.
func (b *SQLBuilder) Build() (string, []interface{}) {
	var sb strings.Builder
	var args []interface{}
	next := 1

	switch b.kind {
	case kindSelect:
		sb.WriteString("SELECT ")
		sb.WriteString(strings.Join(b.columns, ", "))
		sb.WriteString(" FROM ")
		sb.WriteString(b.table)
		b.writeJoins(&sb)
	case kindInsert:
		sb.WriteString("INSERT INTO ")
		sb.WriteString(b.table)
		sb.WriteString(" (")
		sb.WriteString(strings.Join(b.columns, ", "))
		sb.WriteString(") VALUES (")
		placeholders := make([]string, len(b.values))
		for i := range b.values {
			placeholders[i] = fmt.Sprintf("$%d", next)
			next++
		}
		sb.WriteString(strings.Join(placeholders, ", "))
		sb.WriteString(")")
		args = append(args, b.values...)
	case kindUpdate:
		sb.WriteString("UPDATE ")
		sb.WriteString(b.table)
		sb.WriteString(" SET ")
		setClauses := make([]string, len(b.updateCols))
		for i, col := range b.updateCols {
			setClauses[i] = fmt.Sprintf("%s = $%d", col, next)
			next++
		}
		sb.WriteString(strings.Join(setClauses, ", "))
		args = append(args, b.updateArgs...)
	case kindDelete:
		sb.WriteString("DELETE FROM ")
		sb.WriteString(b.table)
	}

	if len(b.where) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(b.numberPlaceholders(strings.Join(b.where, " AND "), &next))
		args = append(args, b.whereArgs...)
	}

	if len(b.orderBy) > 0 {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(strings.Join(b.orderBy, ", "))
	}
	if b.limit > 0 {
		sb.WriteString(fmt.Sprintf(" LIMIT %d", b.limit))
	}
	if b.hasOffset && b.offset > 0 {
		sb.WriteString(fmt.Sprintf(" OFFSET %d", b.offset))
	}
	if b.returning != "" {
		sb.WriteString(" RETURNING ")
		sb.WriteString(b.returning)
	}

	return sb.String(), args
}

// BuildCount constructs a COUNT(*) statement over the same table, joins and
// conditions, ignoring ordering and windowing.
func (b *SQLBuilder) BuildCount() (string, []interface{}) {
	var sb strings.Builder
	next := 1

	sb.WriteString("SELECT COUNT(*) FROM ")
	sb.WriteString(b.table)
	b.writeJoins(&sb)

	if len(b.where) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(b.numberPlaceholders(strings.Join(b.where, " AND "), &next))
	}

	args := make([]interface{}, len(b.whereArgs))
	copy(args, b.whereArgs)
	return sb.String(), args
}

func (b *SQLBuilder) writeJoins(sb *strings.Builder) {
	for _, join := range b.joins {
		sb.WriteString(" ")
		sb.WriteString(join)
	}
}

func (b *SQLBuilder) numberPlaceholders(clause string, next *int) string {
	var sb strings.Builder
	parts := strings.Split(clause, "?")
	for i, part := range parts {
		sb.WriteString(part)
		if i < len(parts)-1 {
			sb.WriteString(fmt.Sprintf("$%d", *next))
			*next++
		}
	}
	return sb.String()
}
