package numbering

import (
	"testing"
	"time"

	"github.com/sangkips/pos-ledger/internal/domain/entity"
	"github.com/sangkips/pos-ledger/pkg/utils"
	"github.com/stretchr/testify/assert"
)

func TestNextReceiptNoFirstOfDay(t *testing.T) {
	now := time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)
	assert.Equal(t, "INV-20261019-0001", NextReceiptNo(nil, now, time.UTC))
}

func TestNextReceiptNoCountsOnlySameDay(t *testing.T) {
	now := time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)
	existing := []entity.Transaction{
		{ReceiptNo: "INV-20261019-0002", DateTime: now.Add(-time.Hour)},
		{ReceiptNo: "INV-20261019-0001", DateTime: now.Add(-2 * time.Hour)},
		{ReceiptNo: "INV-20261018-0007", DateTime: now.Add(-24 * time.Hour)},
	}
	assert.Equal(t, "INV-20261019-0003", NextReceiptNo(existing, now, time.UTC))
}

func TestNextReceiptNoStrictlyIncreasing(t *testing.T) {
	now := time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)
	var ledger []entity.Transaction
	last := 0
	for i := 0; i < 25; i++ {
		no := NextReceiptNo(ledger, now, time.UTC)
		_, _, seq, ok := utils.ParseReceiptNo(no)
		assert.True(t, ok)
		assert.Equal(t, last+1, seq)
		last = seq
		ledger = append([]entity.Transaction{{ReceiptNo: no, DateTime: now}}, ledger...)
		now = now.Add(time.Minute)
	}
}

func TestNextReceiptNoSkipsIssuedSequences(t *testing.T) {
	now := time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)
	// Issued under another time zone setting: the day prefix matches but the
	// timestamp falls on the previous UTC day.
	existing := []entity.Transaction{
		{ReceiptNo: "INV-20261019-0001", DateTime: time.Date(2026, 10, 18, 20, 0, 0, 0, time.UTC)},
	}
	assert.Equal(t, "INV-20261019-0002", NextReceiptNo(existing, now, time.UTC))
}

func TestNextReceiptNoUsesLocation(t *testing.T) {
	bangkok := time.FixedZone("ICT", 7*60*60)
	now := time.Date(2026, 10, 19, 20, 0, 0, 0, time.UTC) // 03:00 on the 20th in Bangkok
	existing := []entity.Transaction{
		{ReceiptNo: "INV-20261019-0001", DateTime: time.Date(2026, 10, 19, 10, 0, 0, 0, time.UTC)},
	}
	assert.Equal(t, "INV-20261020-0001", NextReceiptNo(existing, now, bangkok))
	assert.Equal(t, "INV-20261019-0002", NextReceiptNo(existing, now, time.UTC))
}
