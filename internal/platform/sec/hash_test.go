// Copyright (c) 2026 PeopleDesk. All rights reserved.
// Author: eng@peopledesk.io

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/peopledesk/peopledesk/internal/platform/sec"
)

/*
TestHasher_RoundTrip verifies that a hashed password verifies against its
original plain text and nothing else.
*/
func TestHasher_RoundTrip(t *testing.T) {
	hasher := sec.NewHasher(bcrypt.MinCost)

	hash, err := hasher.Hash("correct horse battery staple")
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	assert.True(t, hasher.Verify("correct horse battery staple", hash))
	assert.False(t, hasher.Verify("wrong password", hash))
	assert.False(t, hasher.Verify("", hash))
}

/*
TestHasher_SaltedOutput verifies that hashing the same input twice yields
different strings (embedded random salt).
*/
func TestHasher_SaltedOutput(t *testing.T) {
	hasher := sec.NewHasher(bcrypt.MinCost)

	first, err := hasher.Hash("same-input")
	require.NoError(t, err)
	second, err := hasher.Hash("same-input")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, hasher.Verify("same-input", first))
	assert.True(t, hasher.Verify("same-input", second))
}

/*
TestHasher_Verify_MalformedHash verifies that structurally invalid stored
hashes are reported as plain failures, never panics or errors.
*/
func TestHasher_Verify_MalformedHash(t *testing.T) {
	hasher := sec.NewHasher(bcrypt.MinCost)

	tests := []struct {
		name string
		hash string
	}{
		{"empty_hash", ""},
		{"garbage_hash", "not-a-bcrypt-hash"},
		{"truncated_hash", "$2a$10$abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, hasher.Verify("any password", tt.hash))
		})
	}
}

/*
TestNewHasher_CostFallback verifies that an unset cost factor falls back to
the library default instead of producing weak hashes.
*/
func TestNewHasher_CostFallback(t *testing.T) {
	hasher := sec.NewHasher(0)

	hash, err := hasher.Hash("password")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}
