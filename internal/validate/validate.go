// Package validate collects per-field validation messages in the shape the
// HTTP layer reports them (field -> messages). Each resource service declares
// its rules with these helpers before any write reaches a repository.
package validate

import (
	"fmt"
	"regexp"
	"time"
	"unicode/utf8"
)

type Errors map[string][]string

func (e Errors) Add(field, message string) {
	e[field] = append(e[field], message)
}

func (e Errors) Empty() bool {
	return len(e) == 0
}

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

func RequiredString(e Errors, field, value string) {
	if value == "" {
		e.Add(field, "the "+field+" field is required")
	}
}

func MaxLen(e Errors, field, value string, max int) {
	if utf8.RuneCountInString(value) > max {
		e.Add(field, fmt.Sprintf("the %s field may not be greater than %d characters", field, max))
	}
}

func Email(e Errors, field, value string) {
	if value != "" && !emailPattern.MatchString(value) {
		e.Add(field, "the "+field+" field must be a valid email address")
	}
}

func RequiredID(e Errors, field string, value int64) {
	if value <= 0 {
		e.Add(field, "the "+field+" field is required")
	}
}

func Positive(e Errors, field string, value float64) {
	if value < 0 {
		e.Add(field, "the "+field+" field must not be negative")
	}
}

func OneOf(e Errors, field, value string, allowed ...string) {
	for _, a := range allowed {
		if value == a {
			return
		}
	}
	e.Add(field, "the selected "+field+" is invalid")
}

// Date parses a required YYYY-MM-DD value, recording an error on failure.
func Date(e Errors, field, value string) time.Time {
	if value == "" {
		e.Add(field, "the "+field+" field is required")
		return time.Time{}
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		e.Add(field, "the "+field+" field must be a date in YYYY-MM-DD format")
		return time.Time{}
	}
	return t
}

// Timestamp parses a required RFC3339 value, recording an error on failure.
func Timestamp(e Errors, field, value string) time.Time {
	if value == "" {
		e.Add(field, "the "+field+" field is required")
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		e.Add(field, "the "+field+" field must be an RFC3339 timestamp")
		return time.Time{}
	}
	return t
}

// OptionalTimestamp parses an RFC3339 value when present; an empty value
// yields a nil time without an error.
func OptionalTimestamp(e Errors, field, value string) *time.Time {
	if value == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		e.Add(field, "the "+field+" field must be an RFC3339 timestamp")
		return nil
	}
	return &t
}
