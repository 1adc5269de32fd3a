package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestChangeType_Constants tests all ChangeType constants
func TestChangeType_Constants(t *testing.T) {
	assert.Equal(t, ChangeType(0), ChangeCreated)
	assert.Equal(t, ChangeType(1), ChangeUpdated)
	assert.Equal(t, ChangeType(2), ChangeDeleted)
}

// TestChangeType_String tests string forms
func TestChangeType_String(t *testing.T) {
	assert.Equal(t, "created", ChangeCreated.String())
	assert.Equal(t, "updated", ChangeUpdated.String())
	assert.Equal(t, "deleted", ChangeDeleted.String())
	assert.Equal(t, "unknown", ChangeType(42).String())
}
