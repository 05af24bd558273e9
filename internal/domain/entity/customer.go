package entity

// Customer holds the identity printed on a full tax invoice
type Customer struct {
	ID      string `json:"id" validate:"required"`
	Name    string `json:"name" validate:"required"`
	TaxID   string `json:"taxId"`
	Branch  string `json:"branch"` // e.g. "Head Office" or "00001"
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

// Snapshot returns a detached copy for storing on a transaction
func (c Customer) Snapshot() *Customer {
	cp := c
	return &cp
}
