package pricing

import (
	"testing"

	"github.com/sangkips/pos-ledger/internal/domain/entity"
	"github.com/sangkips/pos-ledger/internal/domain/enum"
	"github.com/stretchr/testify/assert"
)

func TestRecomputeMatchesStoredTotals(t *testing.T) {
	tx := &entity.Transaction{
		Discount: d("10"),
		VatRate:  seven,
		Items: []entity.LineItem{
			{Quantity: 2, PricePerUnit: d("35"), VatType: enum.VatTypeExcluded},
			{Quantity: 1, PricePerUnit: d("30"), VatType: enum.VatTypeIncluded},
		},
	}
	res := Recompute(tx)
	tx.TotalAmount = res.Subtotal
	tx.VatAmount = res.VatAmount
	tx.NetAmount = res.NetAmount
	assert.True(t, Matches(tx))

	tx.NetAmount = tx.NetAmount.Add(d("0.01"))
	assert.False(t, Matches(tx))
}
