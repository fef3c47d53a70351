package domain

// Page is one window of a paginated result set plus its pagination metadata.
type Page[T any] struct {
	Items    []T
	Page     int
	PerPage  int
	Total    int
	LastPage int
}

// NewPage computes the derived last-page value. LastPage is at least 1 even
// for an empty result set.
func NewPage[T any](items []T, page, perPage, total int) *Page[T] {
	lastPage := 1
	if perPage > 0 && total > 0 {
		lastPage = (total + perPage - 1) / perPage
	}
	return &Page[T]{
		Items:    items,
		Page:     page,
		PerPage:  perPage,
		Total:    total,
		LastPage: lastPage,
	}
}
