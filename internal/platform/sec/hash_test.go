// Copyright (c) 2026 eZunder. All rights reserved.

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezunder/ezunder/internal/platform/sec"
)

/*
TestHashPassword_RoundTrip verifies hashing and checking.
*/
func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := sec.HashPassword("correct-horse-battery-staple")
	require.NoError(t, err)

	assert.NotEqual(t, "correct-horse-battery-staple", hash)
	assert.True(t, sec.CheckPasswordHash("correct-horse-battery-staple", hash))
	assert.False(t, sec.CheckPasswordHash("wrong-password", hash))
}

/*
TestHashPassword_Salted ensures two hashes of the same input differ.
*/
func TestHashPassword_Salted(t *testing.T) {
	first, err := sec.HashPassword("same-password")
	require.NoError(t, err)
	second, err := sec.HashPassword("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

/*
TestGenerateSecureToken checks length and uniqueness of random tokens.
*/
func TestGenerateSecureToken(t *testing.T) {
	first, err := sec.GenerateSecureToken(32)
	require.NoError(t, err)
	second, err := sec.GenerateSecureToken(32)
	require.NoError(t, err)

	// Hex encoding doubles the byte length.
	assert.Len(t, first, 64)
	assert.NotEqual(t, first, second)
}
