// Package query implements the declarative list-query subsystem shared by
// every resource endpoint: query-string parsing, allow-list driven filter and
// sort resolution, and offset pagination.
package query

import (
	"net/url"
	"strconv"
	"strings"
)

// Descriptor is the normalized form of a list request's query string. It is
// built fresh per request and never persisted.
type Descriptor struct {
	Filters map[string]string
	Sort    *Sort
	Page    int
	PerPage int
}

type Sort struct {
	Field      string
	Descending bool
}

// Parse decodes the supported query-string keys into a Descriptor:
//
//	filter[<key>]=<value>   filter keys may contain dots (relation paths)
//	sort=<[-]field>         leading "-" means descending
//	page=<int>              1-indexed, defaults to 1
//	per_page=<int>          defaults to defaultPerPage, clamped to maxPerPage
//
// Unrecognized keys and malformed numbers degrade to defaults; Parse never
// fails.
func Parse(values url.Values, defaultPerPage, maxPerPage int) Descriptor {
	d := Descriptor{
		Filters: make(map[string]string),
		Page:    1,
		PerPage: defaultPerPage,
	}

	for key, vals := range values {
		if len(vals) == 0 {
			continue
		}
		if name, ok := filterKey(key); ok {
			d.Filters[name] = vals[0]
		}
	}

	if raw := values.Get("sort"); raw != "" {
		field, descending := strings.CutPrefix(raw, "-")
		if field != "" {
			d.Sort = &Sort{Field: field, Descending: descending}
		}
	}

	if page, err := strconv.Atoi(values.Get("page")); err == nil && page > 0 {
		d.Page = page
	}
	if perPage, err := strconv.Atoi(values.Get("per_page")); err == nil && perPage > 0 {
		d.PerPage = perPage
	}
	if maxPerPage > 0 && d.PerPage > maxPerPage {
		d.PerPage = maxPerPage
	}

	return d
}

// Offset returns the 0-based row offset of the descriptor's page window.
func (d Descriptor) Offset() int {
	return (d.Page - 1) * d.PerPage
}

func filterKey(key string) (string, bool) {
	if !strings.HasPrefix(key, "filter[") || !strings.HasSuffix(key, "]") {
		return "", false
	}
	name := key[len("filter[") : len(key)-1]
	if name == "" {
		return "", false
	}
	return name, true
}
