package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type loginPayload struct {
	Name     string `json:"name" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8"`
}

type registerPayload struct {
	Password             string `json:"password" validate:"required,min=8,eqfield=PasswordConfirmation"`
	PasswordConfirmation string `json:"password_confirmation" validate:"required"`
}

func TestMessagesUsesJSONFieldNames(t *testing.T) {
	v := New()
	err := v.Struct(loginPayload{})
	require.Error(t, err)

	fields := Messages(err)
	assert.Equal(t, []string{"The name field is required."}, fields["name"])
	assert.Equal(t, []string{"The email field is required."}, fields["email"])
	assert.Equal(t, []string{"The password field is required."}, fields["password"])
}

func TestMessagesEmailAndLength(t *testing.T) {
	v := New()
	err := v.Struct(loginPayload{Name: "Alice", Email: "not-an-email", Password: "short"})
	require.Error(t, err)

	fields := Messages(err)
	assert.Equal(t, []string{"The email must be a valid email address."}, fields["email"])
	assert.Equal(t, []string{"The password must be at least 8 characters."}, fields["password"])
}

func TestMessagesPasswordConfirmation(t *testing.T) {
	v := New()
	err := v.Struct(registerPayload{Password: "password123", PasswordConfirmation: "different123"})
	require.Error(t, err)

	fields := Messages(err)
	assert.Equal(t, []string{"The password confirmation does not match."}, fields["password"])
}

func TestMessagesNonValidatorError(t *testing.T) {
	fields := Messages(errors.New("boom"))
	assert.Equal(t, []string{"The given data was invalid."}, fields["payload"])
}

func TestSelected(t *testing.T) {
	assert.Equal(t, map[string][]string{"device_id": {"The selected device_id is invalid."}}, Selected("device_id"))
}
