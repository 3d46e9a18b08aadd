package utils

import (
	"testing"

	"hotel-management/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type contactForm struct {
	Name  string  `json:"name" validate:"required"`
	Email *string `json:"email,omitempty" validate:"required_without=Phone,omitempty,email"`
	Phone *string `json:"phone,omitempty" validate:"required_without=Email,omitempty,min=7"`
	Role  string  `json:"role,omitempty" validate:"omitempty,oneof=admin guest"`
}

func TestValidate(t *testing.T) {
	email := "guest@example.com"
	badEmail := "not-an-email"

	assert.NoError(t, Validate(&contactForm{Name: "Guest", Email: &email}))

	err := Validate(&contactForm{})
	appErr, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, apperror.TypeRequiredFields, appErr.Type())
	assert.ElementsMatch(t, []string{"name", "email", "phone"}, appErr.Details["fields"])

	err = Validate(&contactForm{Name: "Guest", Email: &badEmail, Role: "owner"})
	appErr, ok = apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, apperror.TypeValidation, appErr.Type())
	assert.Equal(t, "email: Invalid email format; role: Must be one of: admin, guest", appErr.Message)
}
