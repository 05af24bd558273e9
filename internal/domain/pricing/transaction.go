package pricing

import "github.com/sangkips/pos-ledger/internal/domain/entity"

// Recompute prices a persisted transaction again from its own line items,
// discount and VAT rate.
func Recompute(tx *entity.Transaction) Result {
	lines := make([]Line, len(tx.Items))
	for i, item := range tx.Items {
		lines[i] = Line{
			UnitPrice: item.PricePerUnit,
			Quantity:  item.Quantity,
			VatType:   item.VatType,
		}
	}
	return Calculate(lines, tx.Discount, tx.VatRate)
}

// Matches reports whether the stored totals equal a fresh recomputation
func Matches(tx *entity.Transaction) bool {
	r := Recompute(tx)
	return r.Subtotal.Equal(tx.TotalAmount) &&
		r.VatAmount.Equal(tx.VatAmount) &&
		r.NetAmount.Equal(tx.NetAmount)
}
