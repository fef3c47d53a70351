package query

import (
	"strconv"
	"strings"
	"time"

	"github.com/worklane/hrms/internal/repository/builder"
)

type FilterKind int

const (
	// Exact matches the column value exactly.
	Exact FilterKind = iota
	// Partial matches a case-insensitive substring (ILIKE, wildcards both
	// sides).
	Partial
	// Scoped delegates to a named predicate function.
	Scoped
)

// Scope is a named predicate not reducible to a single column comparison.
// Scopes follow the lenient-drop policy: on an unusable value they leave the
// builder untouched.
type Scope func(b *builder.SQLBuilder, value string)

// Filter is one entry of a resource's filter allow-list.
type Filter struct {
	// Key as it appears in the query string; may be a dotted relation path.
	Key  string
	Kind FilterKind
	// Column is the qualified column the predicate applies to. Unused for
	// Scoped filters.
	Column string
	Scope  Scope
}

// Join describes how a relation name (the prefix of a dotted key) is joined
// into the list query. Joins are resolved from this registry at request time
// and deduplicated; they are declared once per resource at startup.
type Join struct {
	Table string
	On    string
}

// Definition is the declarative list-query configuration of one resource:
// its table, filter and sort allow-lists and the relation join registry.
type Definition struct {
	Table      string
	SoftDelete bool
	Filters    []Filter
	// Sorts maps permitted sort keys to the column used for ordering.
	Sorts map[string]string
	// Joins maps relation names to their join clause.
	Joins map[string]Join
}

// Apply resolves the descriptor's filters and sort against the allow-lists
// and applies the resulting predicates, joins and ordering to b. Keys absent
// from the allow-lists are silently dropped. For soft-deletable resources the
// exclusion of deleted rows is always appended.
func (d Definition) Apply(b *builder.SQLBuilder, desc Descriptor) {
	if d.SoftDelete {
		b.Where(d.Table + ".deleted_at IS NULL")
	}

	for _, f := range d.Filters {
		value, ok := desc.Filters[f.Key]
		if !ok || value == "" {
			continue
		}
		d.joinFor(b, f.Key)
		switch f.Kind {
		case Exact:
			b.Where(f.Column+" = ?", value)
		case Partial:
			b.Where(f.Column+" ILIKE ?", "%"+value+"%")
		case Scoped:
			if f.Scope != nil {
				f.Scope(b, value)
			}
		}
	}

	if desc.Sort != nil {
		if column, ok := d.Sorts[desc.Sort.Field]; ok {
			d.joinFor(b, desc.Sort.Field)
			direction := " ASC"
			if desc.Sort.Descending {
				direction = " DESC"
			}
			b.OrderBy(column + direction)
		}
	}
}

// joinFor ensures the join backing a dotted key is present. Plain keys and
// unknown relations are no-ops.
func (d Definition) joinFor(b *builder.SQLBuilder, key string) {
	relation, _, found := strings.Cut(key, ".")
	if !found {
		return
	}
	if join, ok := d.Joins[relation]; ok {
		b.JoinOnce("LEFT", join.Table, join.On)
	}
}

// DateRange is a scope over a date column taking one comma-delimited value
// "start,end" (both bounds required, YYYY-MM-DD). Malformed values are
// dropped.
func DateRange(column string) Scope {
	return func(b *builder.SQLBuilder, value string) {
		start, end, ok := parseDatePair(value)
		if !ok {
			return
		}
		b.Where(column+" BETWEEN ? AND ?", start, end)
	}
}

// OneOf is a scope matching the column against value only when value is in
// the permitted set.
func OneOf(column string, allowed ...string) Scope {
	return func(b *builder.SQLBuilder, value string) {
		for _, a := range allowed {
			if value == a {
				b.Where(column+" = ?", value)
				return
			}
		}
	}
}

// EqualsID is a scope matching a numeric id column; non-numeric values are
// dropped.
func EqualsID(column string) Scope {
	return func(b *builder.SQLBuilder, value string) {
		id, err := strconv.ParseInt(value, 10, 64)
		if err != nil || id <= 0 {
			return
		}
		b.Where(column+" = ?", id)
	}
}

func parseDatePair(value string) (time.Time, time.Time, bool) {
	rawStart, rawEnd, found := strings.Cut(value, ",")
	if !found {
		return time.Time{}, time.Time{}, false
	}
	start, err := time.Parse("2006-01-02", strings.TrimSpace(rawStart))
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	end, err := time.Parse("2006-01-02", strings.TrimSpace(rawEnd))
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}
