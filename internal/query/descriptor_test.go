package query

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		rawQuery string
		want     Descriptor
	}{
		{
			name:     "defaults",
			rawQuery: "",
			want:     Descriptor{Filters: map[string]string{}, Page: 1, PerPage: 15},
		},
		{
			name:     "filters",
			rawQuery: "filter[first_name]=ada&filter[department_id]=3",
			want: Descriptor{
				Filters: map[string]string{"first_name": "ada", "department_id": "3"},
				Page:    1,
				PerPage: 15,
			},
		},
		{
			name:     "dotted filter key",
			rawQuery: "filter[department.name]=eng",
			want: Descriptor{
				Filters: map[string]string{"department.name": "eng"},
				Page:    1,
				PerPage: 15,
			},
		},
		{
			name:     "sort ascending",
			rawQuery: "sort=hire_date",
			want: Descriptor{
				Filters: map[string]string{},
				Sort:    &Sort{Field: "hire_date"},
				Page:    1,
				PerPage: 15,
			},
		},
		{
			name:     "sort descending",
			rawQuery: "sort=-hire_date",
			want: Descriptor{
				Filters: map[string]string{},
				Sort:    &Sort{Field: "hire_date", Descending: true},
				Page:    1,
				PerPage: 15,
			},
		},
		{
			name:     "bare dash sort dropped",
			rawQuery: "sort=-",
			want:     Descriptor{Filters: map[string]string{}, Page: 1, PerPage: 15},
		},
		{
			name:     "pagination",
			rawQuery: "page=3&per_page=25",
			want:     Descriptor{Filters: map[string]string{}, Page: 3, PerPage: 25},
		},
		{
			name:     "per_page clamped to max",
			rawQuery: "per_page=5000",
			want:     Descriptor{Filters: map[string]string{}, Page: 1, PerPage: 100},
		},
		{
			name:     "malformed numbers fall back",
			rawQuery: "page=abc&per_page=-4",
			want:     Descriptor{Filters: map[string]string{}, Page: 1, PerPage: 15},
		},
		{
			name:     "unrecognized keys ignored",
			rawQuery: "foo=bar&filter=broken&filter[]=empty",
			want:     Descriptor{Filters: map[string]string{}, Page: 1, PerPage: 15},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := url.ParseQuery(tt.rawQuery)
			assert.NoError(t, err)

			got := Parse(values, 15, 100)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDescriptorOffset(t *testing.T) {
	assert.Equal(t, 0, Descriptor{Page: 1, PerPage: 15}.Offset())
	assert.Equal(t, 30, Descriptor{Page: 3, PerPage: 15}.Offset())
	assert.Equal(t, 75, Descriptor{Page: 4, PerPage: 25}.Offset())
}
