package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Code
	}{
		{"nil", nil, Code("")},
		{"not found", NotFound("employee"), CodeNotFound},
		{"validation", ValidationField("email", "invalid"), CodeValidation},
		{"conflict", Conflict("already decided"), CodeConflict},
		{"storage", Storage(errors.New("disk full")), CodeStorage},
		{"unclassified", errors.New("boom"), CodeInternal},
		{"wrapped", fmt.Errorf("context: %w", NotFound("leave")), CodeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetCode(tt.err))
		})
	}
}

func TestFieldErrors(t *testing.T) {
	err := Validation(map[string][]string{
		"email": {"the email field is required"},
		"name":  {"the name field is required", "too short"},
	})
	fields := FieldErrors(err)
	assert.Len(t, fields, 2)
	assert.Equal(t, []string{"the email field is required"}, fields["email"])

	assert.Nil(t, FieldErrors(errors.New("boom")))
	assert.Nil(t, FieldErrors(NotFound("employee")))
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "employee not found", NotFound("employee").Error())

	wrapped := Wrap(CodeInternal, "query failed", errors.New("bad connection"))
	assert.Equal(t, "query failed: bad connection", wrapped.Error())
	assert.ErrorContains(t, wrapped, "bad connection")
}

func TestUnwrap(t *testing.T) {
	inner := errors.New("inner")
	err := Wrap(CodeStorage, "outer", inner)
	assert.True(t, errors.Is(err, inner))
}
