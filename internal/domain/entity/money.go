package entity

import "github.com/shopspring/decimal"

func init() {
	// Money fields are stored as JSON numbers, not quoted strings
	decimal.MarshalJSONWithoutQuotes = true
}
