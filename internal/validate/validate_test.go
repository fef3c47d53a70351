package validate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRequiredString(t *testing.T) {
	errs := Errors{}
	RequiredString(errs, "name", "")
	RequiredString(errs, "code", "ENG")
	assert.Len(t, errs, 1)
	assert.Contains(t, errs["name"][0], "required")
}

func TestMaxLen(t *testing.T) {
	errs := Errors{}
	MaxLen(errs, "name", "abc", 3)
	MaxLen(errs, "code", "abcd", 3)
	assert.Empty(t, errs["name"])
	assert.Len(t, errs["code"], 1)
}

func TestEmail(t *testing.T) {
	tests := []struct {
		value string
		valid bool
	}{
		{"ada@example.com", true},
		{"", true}, // emptiness is RequiredString's concern
		{"not-an-email", false},
		{"a@b", false},
		{"two@@example.com", false},
	}
	for _, tt := range tests {
		errs := Errors{}
		Email(errs, "email", tt.value)
		assert.Equal(t, tt.valid, errs.Empty(), "value %q", tt.value)
	}
}

func TestDate(t *testing.T) {
	errs := Errors{}
	got := Date(errs, "hire_date", "2024-03-15")
	assert.True(t, errs.Empty())
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), got)

	errs = Errors{}
	Date(errs, "hire_date", "15/03/2024")
	assert.Len(t, errs["hire_date"], 1)

	errs = Errors{}
	Date(errs, "hire_date", "")
	assert.Contains(t, errs["hire_date"][0], "required")
}

func TestTimestamp(t *testing.T) {
	errs := Errors{}
	got := Timestamp(errs, "check_in", "2024-03-15T09:00:00Z")
	assert.True(t, errs.Empty())
	assert.Equal(t, time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC), got.UTC())

	errs = Errors{}
	Timestamp(errs, "check_in", "2024-03-15")
	assert.Len(t, errs["check_in"], 1)
}

func TestOptionalTimestamp(t *testing.T) {
	errs := Errors{}
	assert.Nil(t, OptionalTimestamp(errs, "check_out", ""))
	assert.True(t, errs.Empty())

	got := OptionalTimestamp(errs, "check_out", "2024-03-15T17:30:00Z")
	assert.NotNil(t, got)
	assert.True(t, errs.Empty())

	OptionalTimestamp(errs, "check_out", "bogus")
	assert.Len(t, errs["check_out"], 1)
}

func TestOneOf(t *testing.T) {
	errs := Errors{}
	OneOf(errs, "status", "approved", "pending", "approved", "rejected")
	assert.True(t, errs.Empty())

	OneOf(errs, "status", "granted", "pending", "approved", "rejected")
	assert.Len(t, errs["status"], 1)
}

func TestAddAccumulates(t *testing.T) {
	errs := Errors{}
	errs.Add("name", "first")
	errs.Add("name", "second")
	assert.Equal(t, []string{"first", "second"}, errs["name"])
	assert.False(t, errs.Empty())
}
