// Package numbering derives human-facing receipt numbers from the ledger.
package numbering

import (
	"time"

	"github.com/sangkips/pos-ledger/internal/domain/entity"
	"github.com/sangkips/pos-ledger/pkg/utils"
)

// Prefix starts every receipt number
const Prefix = "INV"

// NextReceiptNo returns INV-YYYYMMDD-NNNN for the calendar day of now in loc.
// The sequence is the number of existing transactions dated that day plus
// one, raised above any sequence already issued under the same day prefix.
// Callers must hold the ledger lock; two callers reading the same snapshot
// get the same number.
func NextReceiptNo(existing []entity.Transaction, now time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	day := now.In(loc)
	dayKey := day.Format("20060102")

	count, highest := 0, 0
	for i := range existing {
		if sameDay(existing[i].DateTime.In(loc), day) {
			count++
		}
		prefix, issuedDay, seq, ok := utils.ParseReceiptNo(existing[i].ReceiptNo)
		if ok && prefix == Prefix && issuedDay == dayKey && seq > highest {
			highest = seq
		}
	}

	seq := count + 1
	if seq <= highest {
		seq = highest + 1
	}
	return utils.FormatReceiptNo(Prefix, day, seq)
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
