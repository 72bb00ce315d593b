package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNextSequence(t *testing.T) {
	db := setupTestDB(t, "sequence_basic")

	n, err := NextSequence(db, "order:1:2025-01-01")
	assert.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = NextSequence(db, "order:1:2025-01-01")
	assert.NoError(t, err)
	assert.Equal(t, int64(2), n)

	// key lain punya counter sendiri
	n, err = NextSequence(db, "shift:1")
	assert.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestSequenceKeys(t *testing.T) {
	day := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, "order:7:2025-03-14", OrderNumberKey(7, day))
	assert.Equal(t, "shift:7", ShiftNumberKey(7))
}
