// Copyright (c) 2026 PeopleDesk. All rights reserved.
// Author: eng@peopledesk.io

package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peopledesk/peopledesk/internal/platform/apperr"
	"github.com/peopledesk/peopledesk/internal/platform/validate"
)

/*
TestValidator_Required verifies the emptiness rule, including whitespace-only
values.
*/
func TestValidator_Required(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{"empty_string", "", true},
		{"whitespace_only", "   \t\n", true},
		{"valid_value", "alice", false},
		{"value_with_spaces", "  alice  ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Required("username", tt.value)
			assert.Equal(t, tt.wantErr, v.HasErrors())
		})
	}
}

/*
TestValidator_Email verifies the address format rule.
*/
func TestValidator_Email(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{"valid_address", "alice@example.com", false},
		{"with_display_name", "Alice <alice@example.com>", false},
		{"missing_at", "alice.example.com", true},
		{"missing_domain", "alice@", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Email("email", tt.value)
			assert.Equal(t, tt.wantErr, v.HasErrors())
		})
	}
}

/*
TestValidator_Positive verifies the positive-key rule used for foreign key
references.
*/
func TestValidator_Positive(t *testing.T) {
	tests := []struct {
		name    string
		value   int64
		wantErr bool
	}{
		{"positive", 7, false},
		{"zero", 0, true},
		{"negative", -3, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Positive("role_id", tt.value)
			assert.Equal(t, tt.wantErr, v.HasErrors())
		})
	}
}

/*
TestValidator_OneOf verifies the membership rule used for status enums.
*/
func TestValidator_OneOf(t *testing.T) {
	v := &validate.Validator{}
	v.OneOf("status", "approved", "pending", "approved", "rejected")
	assert.False(t, v.HasErrors())

	v = &validate.Validator{}
	v.OneOf("status", "maybe", "pending", "approved", "rejected")
	assert.True(t, v.HasErrors())
}

/*
TestValidator_Chain verifies that a passing chain produces no error.
*/
func TestValidator_Chain(t *testing.T) {
	v := &validate.Validator{}
	err := v.Required("username", "alice").
		MinLen("username", "alice", 3).
		Email("email", "alice@example.com").
		Positive("role_id", 1).
		Err()

	assert.NoError(t, err)
}

/*
TestValidator_Chain_Failure verifies that all failing rules accumulate into a
single validation error with per-field details.
*/
func TestValidator_Chain_Failure(t *testing.T) {
	v := &validate.Validator{}
	err := v.Required("username", "").
		Email("email", "not-an-email").
		MinLen("password", "short", 8).
		Err()

	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "VALIDATION_ERROR", ae.Code)
	assert.Len(t, ae.Details, 3)

	fields := make([]string, 0, len(ae.Details))
	for _, detail := range ae.Details {
		fields = append(fields, detail.Field)
	}
	assert.ElementsMatch(t, []string{"username", "email", "password"}, fields)
}

/*
TestValidator_MaxLen verifies that length counting is by rune, not by byte.
*/
func TestValidator_MaxLen(t *testing.T) {
	v := &validate.Validator{}
	v.MaxLen("department", "données", 7) // 7 runes, 8 bytes
	assert.False(t, v.HasErrors())

	v = &validate.Validator{}
	v.MaxLen("department", "engineering", 5)
	assert.True(t, v.HasErrors())
}
