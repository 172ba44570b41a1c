// Copyright (c) 2026 eZunder. All rights reserved.

package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezunder/ezunder/internal/platform/apperr"
	"github.com/ezunder/ezunder/internal/platform/validate"
)

/*
TestValidator_Required tests the mandatory field validation logic.
*/
func TestValidator_Required(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		value    string
		hasError bool
	}{
		{"valid_string", "name", "eZunder", false},
		{"empty_string", "name", "", true},
		{"whitespace_only", "name", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Required(tt.field, tt.value)

			if tt.hasError {
				assert.True(t, v.HasErrors())
				err := v.Err()
				require.NotNil(t, err)

				ae := apperr.As(err)
				require.NotNil(t, ae)
				assert.Equal(t, "VALIDATION_ERROR", ae.Code)
				assert.Equal(t, tt.field, ae.Details[0].Field)
			} else {
				assert.False(t, v.HasErrors())
				assert.Nil(t, v.Err())
			}
		})
	}
}

/*
TestValidator_Email checks the email format validation rule.
*/
func TestValidator_Email(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		isValid bool
	}{
		{"valid_email", "test@example.com", true},
		{"invalid_format", "invalid-email", false},
		{"missing_domain", "test@", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Email("email", tt.email)

			if tt.isValid {
				assert.False(t, v.HasErrors())
			} else {
				assert.True(t, v.HasErrors())
			}
		})
	}
}

/*
TestValidator_UUID checks the UUID format rule used for path and query IDs.
*/
func TestValidator_UUID(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		isValid bool
	}{
		{"valid_v7", "0191d2a3-8f4e-7cc1-b0aa-3de4a1c2b3d4", true},
		{"valid_uppercase", "0191D2A3-8F4E-7CC1-B0AA-3DE4A1C2B3D4", true},
		{"missing_hyphens", "0191d2a38f4e7cc1b0aa3de4a1c2b3d4", false},
		{"too_short", "0191d2a3-8f4e-7cc1-b0aa", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.UUID("projectId", tt.value)

			assert.Equal(t, !tt.isValid, v.HasErrors())
		})
	}
}

/*
TestValidator_OneOf covers the enum rules, including the optional variant
that accepts empty values for server-side defaults.
*/
func TestValidator_OneOf(t *testing.T) {
	statuses := []string{"draft", "active", "completed", "archived"}

	t.Run("member_passes", func(t *testing.T) {
		v := &validate.Validator{}
		v.OneOf("status", "active", statuses...)
		assert.False(t, v.HasErrors())
	})

	t.Run("non_member_fails", func(t *testing.T) {
		v := &validate.Validator{}
		v.OneOf("status", "paused", statuses...)
		assert.True(t, v.HasErrors())
	})

	t.Run("empty_fails_strict", func(t *testing.T) {
		v := &validate.Validator{}
		v.OneOf("status", "", statuses...)
		assert.True(t, v.HasErrors())
	})

	t.Run("empty_passes_optional", func(t *testing.T) {
		v := &validate.Validator{}
		v.OneOfOrEmpty("status", "", statuses...)
		assert.False(t, v.HasErrors())
	})
}

/*
TestValidator_Chain tests the fluent API (chaining multiple rules).
*/
func TestValidator_Chain(t *testing.T) {
	v := &validate.Validator{}

	// Multi-rule validation
	err := v.
		Required("firstName", "Ada").
		MinLen("firstName", "Ada", 1).
		MaxLen("firstName", "Ada", 100).
		Email("email", "ada@ezunder.app").
		Err()

	assert.NoError(t, err)
	assert.False(t, v.HasErrors())
}

/*
TestValidator_Chain_Failure tests error accumulation in the chain.
*/
func TestValidator_Chain_Failure(t *testing.T) {
	v := &validate.Validator{}

	err := v.
		Required("firstName", "").      // Fails
		MinLen("password", "a", 8).     // Fails
		Email("email", "not-an-email"). // Fails
		Err()

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)

	// Should accumulate all 3 errors
	assert.Len(t, ae.Details, 3)
}
