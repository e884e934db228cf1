package validator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() RegistrationInput {
	return RegistrationInput{
		Email:           "a@b.com",
		FirstName:       "John",
		LastName:        "Doe",
		Password:        "Secure123!",
		ConfirmPassword: "Secure123!",
	}
}

func fieldsOf(errs []FieldError) []string {
	out := make([]string, 0, len(errs))
	for _, e := range errs {
		out = append(out, e.Field)
	}
	return out
}

func TestValidateRegistrationValidInput(t *testing.T) {
	t.Parallel()

	res := ValidateRegistration(validInput())
	assert.True(t, res.Valid)
	assert.Empty(t, res.Errors)
}

func TestValidateRegistrationEmptyInput(t *testing.T) {
	t.Parallel()

	res := ValidateRegistration(RegistrationInput{})
	require.False(t, res.Valid)
	// Exactly one "required" error per field, nothing else.
	assert.ElementsMatch(t,
		[]string{"email", "firstName", "lastName", "password", "confirmPassword"},
		fieldsOf(res.Errors))
}

func TestValidateRegistrationEmailRules(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		email   string
		message string
	}{
		{"missing", "", "Email is required"},
		{"whitespace only", "   ", "Email is required"},
		{"no at sign", "plainaddress", "Invalid email format"},
		{"no domain dot", "a@b", "Invalid email format"},
		{"embedded space", "a b@c.com", "Invalid email format"},
		{"too long", strings.Repeat("a", 250) + "@b.com", "Email must be 254 characters or less"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput()
			in.Email = tc.email
			res := ValidateRegistration(in)
			require.False(t, res.Valid)
			require.Len(t, res.Errors, 1)
			assert.Equal(t, "email", res.Errors[0].Field)
			assert.Equal(t, tc.message, res.Errors[0].Message)
		})
	}
}

func TestValidateRegistrationLengthNotCheckedWhenShapeFails(t *testing.T) {
	t.Parallel()

	// An over-long string that is also shape-invalid reports only the
	// shape error.
	in := validInput()
	in.Email = strings.Repeat("a", 300)
	res := ValidateRegistration(in)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "Invalid email format", res.Errors[0].Message)
}

func TestValidateRegistrationNameRules(t *testing.T) {
	t.Parallel()

	t.Run("valid punctuation accepted", func(t *testing.T) {
		in := validInput()
		in.FirstName = "Mary Jane"
		in.LastName = "O'Brien-Smith"
		res := ValidateRegistration(in)
		assert.True(t, res.Valid)
	})

	t.Run("digits rejected", func(t *testing.T) {
		in := validInput()
		in.FirstName = "John3"
		res := ValidateRegistration(in)
		require.Len(t, res.Errors, 1)
		assert.Equal(t, "firstName", res.Errors[0].Field)
	})

	t.Run("length and charset both reported", func(t *testing.T) {
		in := validInput()
		in.LastName = strings.Repeat("x", 51) + "9"
		res := ValidateRegistration(in)
		require.Len(t, res.Errors, 2)
		assert.Equal(t, "lastName", res.Errors[0].Field)
		assert.Equal(t, "lastName", res.Errors[1].Field)
	})
}

func TestValidateRegistrationPasswordRules(t *testing.T) {
	t.Parallel()

	t.Run("every missing class is its own error", func(t *testing.T) {
		in := validInput()
		in.Password = "aaaaaaaa" // lowercase only, long enough
		in.ConfirmPassword = in.Password
		res := ValidateRegistration(in)
		require.False(t, res.Valid)
		assert.Len(t, res.Errors, 3) // uppercase, digit, special
		for _, e := range res.Errors {
			assert.Equal(t, "password", e.Field)
		}
	})

	t.Run("too short and missing classes accumulate", func(t *testing.T) {
		in := validInput()
		in.Password = "abc"
		in.ConfirmPassword = "abc"
		res := ValidateRegistration(in)
		// short + no uppercase + no digit + no special
		assert.Len(t, res.Errors, 4)
	})

	t.Run("too long", func(t *testing.T) {
		in := validInput()
		in.Password = "Aa1!" + strings.Repeat("x", 128)
		in.ConfirmPassword = in.Password
		res := ValidateRegistration(in)
		require.Len(t, res.Errors, 1)
		assert.Equal(t, "Password must be 128 characters or less", res.Errors[0].Message)
	})
}

func TestValidateRegistrationConfirmPassword(t *testing.T) {
	t.Parallel()

	t.Run("mismatch", func(t *testing.T) {
		in := validInput()
		in.ConfirmPassword = "Different123!"
		res := ValidateRegistration(in)
		require.Len(t, res.Errors, 1)
		assert.Equal(t, FieldError{"confirmPassword", "Passwords do not match"}, res.Errors[0])
	})

	t.Run("empty confirmation reports required, not mismatch", func(t *testing.T) {
		in := validInput()
		in.ConfirmPassword = ""
		res := ValidateRegistration(in)
		require.Len(t, res.Errors, 1)
		assert.Equal(t, "Password confirmation is required", res.Errors[0].Message)
	})
}
