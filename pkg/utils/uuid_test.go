package utils

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNewID(t *testing.T) {
	id := NewID()
	_, err := uuid.Parse(id)
	assert.NoError(t, err)
	assert.NotEqual(t, id, NewID())
}

func TestFormatReceiptNo(t *testing.T) {
	day := time.Date(2026, 3, 7, 15, 4, 5, 0, time.UTC)
	assert.Equal(t, "INV-20260307-0001", FormatReceiptNo("INV", day, 1))
	assert.Equal(t, "INV-20260307-0420", FormatReceiptNo("INV", day, 420))
	assert.Equal(t, "INV-20260307-12345", FormatReceiptNo("INV", day, 12345))
}

func TestParseReceiptNo(t *testing.T) {
	prefix, day, seq, ok := ParseReceiptNo("INV-20260307-0042")
	assert.True(t, ok)
	assert.Equal(t, "INV", prefix)
	assert.Equal(t, "20260307", day)
	assert.Equal(t, 42, seq)

	for _, bad := range []string{"", "INV-2026-0001", "INV-20261399-0001", "INV-20260307-x", "INV-20260307-0000"} {
		_, _, _, ok := ParseReceiptNo(bad)
		assert.False(t, ok, bad)
	}
}
