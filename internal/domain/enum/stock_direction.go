package enum

// StockDirection selects whether line item quantities leave or return to stock
type StockDirection int

const (
	StockDeduct StockDirection = iota + 1
	StockRestore
)

func (d StockDirection) String() string {
	switch d {
	case StockDeduct:
		return "Deduct"
	case StockRestore:
		return "Restore"
	}
	return "Unknown"
}

// Sign is -1 for Deduct and +1 for Restore. It panics on any other value.
func (d StockDirection) Sign() int {
	switch d {
	case StockDeduct:
		return -1
	case StockRestore:
		return 1
	}
	panic("enum: unhandled StockDirection " + d.String())
}
