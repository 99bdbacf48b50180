package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errKind = errors.New("kind")

type sample struct {
	Name  string `json:"name" validate:"required,min=6,max=10"`
	Email string `json:"email" validate:"required,email"`
	Age   *int   `json:"age" validate:"required,gte=0"`
}

func intPtr(v int) *int { return &v }

func TestValidator_Struct(t *testing.T) {
	v := New()

	tests := []struct {
		name    string
		input   sample
		field   string
		rule    string
		message string
	}{
		{
			name:    "missing name",
			input:   sample{Email: "a@example.com", Age: intPtr(1)},
			field:   "name",
			rule:    "required",
			message: `"name" is required`,
		},
		{
			name:    "short name",
			input:   sample{Name: "abc", Email: "a@example.com", Age: intPtr(1)},
			field:   "name",
			rule:    "min",
			message: `"name" length must be at least 6 characters long`,
		},
		{
			name:    "long name",
			input:   sample{Name: strings.Repeat("x", 11), Email: "a@example.com", Age: intPtr(1)},
			field:   "name",
			rule:    "max",
			message: `"name" length must be less than or equal to 10 characters long`,
		},
		{
			name:    "bad email",
			input:   sample{Name: "abcdefg", Email: "nope", Age: intPtr(1)},
			field:   "email",
			rule:    "email",
			message: `"email" must be a valid email`,
		},
		{
			name:    "missing age",
			input:   sample{Name: "abcdefg", Email: "a@example.com"},
			field:   "age",
			rule:    "required",
			message: `"age" is required`,
		},
		{
			name:    "negative age",
			input:   sample{Name: "abcdefg", Email: "a@example.com", Age: intPtr(-1)},
			field:   "age",
			rule:    "gte",
			message: `"age" must be greater than or equal to 0`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.input, errKind)
			require.Error(t, err)

			var verr *Error
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
			assert.Equal(t, tt.rule, verr.Rule)
			assert.Equal(t, tt.message, verr.Error())
			assert.ErrorIs(t, err, errKind)
		})
	}
}

func TestValidator_ReportsFirstViolationOnly(t *testing.T) {
	err := New().Struct(sample{}, errKind)

	var verr *Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "name", verr.Field)
}

func TestValidator_Valid(t *testing.T) {
	err := New().Struct(sample{Name: "abcdefg", Email: "a@example.com", Age: intPtr(0)}, errKind)
	assert.NoError(t, err)
}
