package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStringContains(t *testing.T) {
	assert.True(t, StringContains("How much does it COST?", "price", "cost"))
	assert.False(t, StringContains("hello there", "price", "cost"))
	assert.False(t, StringContains("hello there"))
}

func TestNormalizePhoneNumber(t *testing.T) {
	got, err := NormalizePhoneNumber("+1 (555) 123-4567")
	assert.NoError(t, err)
	assert.Equal(t, "15551234567", got)

	got, err = NormalizePhoneNumber("15551234567")
	assert.NoError(t, err)
	assert.Equal(t, "15551234567", got)

	_, err = NormalizePhoneNumber("123")
	assert.Error(t, err)
}
