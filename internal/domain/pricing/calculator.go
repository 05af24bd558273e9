// Package pricing computes line totals, discount allocation and VAT for a cart.
// All arithmetic is exact decimal; rounding is left to presentation.
package pricing

import (
	"fmt"

	"github.com/sangkips/pos-ledger/internal/domain/enum"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Line is one priced cart entry
type Line struct {
	UnitPrice decimal.Decimal
	Quantity  int
	VatType   enum.VatType
}

// LineResult carries the per-line figures shown on a receipt
type LineResult struct {
	LineTotal decimal.Decimal
	Discount  decimal.Decimal
	// Net is LineTotal minus Discount
	Net     decimal.Decimal
	Vat     decimal.Decimal
	VatType enum.VatType
}

// Result is the outcome of Calculate
type Result struct {
	Subtotal        decimal.Decimal
	DiscountApplied decimal.Decimal
	VatAmount       decimal.Decimal
	NetAmount       decimal.Decimal
	Lines           []LineResult
}

// LineTotal is unit price times quantity
func LineTotal(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
}

// ProrateDiscount splits discount across totals in proportion to each total's
// share of their sum. The last non-zero total takes the remainder so the
// shares add up to discount exactly. A zero sum yields zero for every line.
func ProrateDiscount(discount decimal.Decimal, totals []decimal.Decimal) []decimal.Decimal {
	shares := make([]decimal.Decimal, len(totals))
	subtotal := decimal.Zero
	last := -1
	for i, t := range totals {
		shares[i] = decimal.Zero
		subtotal = subtotal.Add(t)
		if !t.IsZero() {
			last = i
		}
	}
	if subtotal.IsZero() || last < 0 {
		return shares
	}

	allocated := decimal.Zero
	for i, t := range totals {
		if i == last {
			shares[i] = discount.Sub(allocated)
			break
		}
		shares[i] = discount.Mul(t).Div(subtotal)
		allocated = allocated.Add(shares[i])
	}
	return shares
}

// LineVat returns the VAT contained in (Included) or added to (Excluded) a
// discounted line amount at ratePercent.
func LineVat(amount decimal.Decimal, vatType enum.VatType, ratePercent decimal.Decimal) decimal.Decimal {
	switch vatType {
	case enum.VatTypeIncluded:
		return amount.Mul(ratePercent).Div(hundred.Add(ratePercent))
	case enum.VatTypeExcluded:
		return amount.Mul(ratePercent).Div(hundred)
	case enum.VatTypeNone:
		return decimal.Zero
	}
	panic(fmt.Sprintf("pricing: unhandled %s", vatType))
}

// Calculate prices a cart. Net amount is the discounted lines plus the VAT
// of Excluded lines; Included VAT is reported but already inside the price.
func Calculate(lines []Line, discount, ratePercent decimal.Decimal) Result {
	totals := make([]decimal.Decimal, len(lines))
	subtotal := decimal.Zero
	for i, l := range lines {
		totals[i] = LineTotal(l.UnitPrice, l.Quantity)
		subtotal = subtotal.Add(totals[i])
	}

	shares := ProrateDiscount(discount, totals)

	res := Result{
		Subtotal:        subtotal,
		DiscountApplied: decimal.Zero,
		VatAmount:       decimal.Zero,
		NetAmount:       decimal.Zero,
		Lines:           make([]LineResult, len(lines)),
	}
	for i, l := range lines {
		net := totals[i].Sub(shares[i])
		vat := LineVat(net, l.VatType, ratePercent)

		res.Lines[i] = LineResult{
			LineTotal: totals[i],
			Discount:  shares[i],
			Net:       net,
			Vat:       vat,
			VatType:   l.VatType,
		}
		res.DiscountApplied = res.DiscountApplied.Add(shares[i])
		res.VatAmount = res.VatAmount.Add(vat)
		res.NetAmount = res.NetAmount.Add(net)
		if l.VatType == enum.VatTypeExcluded {
			res.NetAmount = res.NetAmount.Add(vat)
		}
	}
	return res
}
