package entity

// ReceiptHeader holds the store/business header printed at the top of a receipt.
type ReceiptHeader struct {
	StoreName string `json:"storeName"`
	Address   string `json:"address,omitempty"`
	Phone     string `json:"phone,omitempty"`
	TaxID     string `json:"taxId,omitempty"`
}

// ReceiptItem represents a single line item on a receipt.
type ReceiptItem struct {
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unitPrice"`
	Total     string `json:"total"`
	VatType   string `json:"vatType"`
}

// Receipt is a value object representing a printable receipt.
// It is NOT a stored entity; it is composed from a transaction and the settings at render time.
// Money is pre-formatted with two decimals and never negative.
type Receipt struct {
	Header      ReceiptHeader `json:"header"`
	Title       string        `json:"title"`
	ReceiptNo   string        `json:"receiptNo"`
	Date        string        `json:"date"`
	Customer    *Customer     `json:"customer,omitempty"`
	TaxInvoice  bool          `json:"taxInvoice"`
	Voided      bool          `json:"voided"`
	PaymentType string        `json:"paymentType"`
	Status      string        `json:"status"`
	Items       []ReceiptItem `json:"items"`
	SubTotal    string        `json:"subTotal"`
	Discount    string        `json:"discount"`
	VATRate     string        `json:"vatRate"`
	VATBase     string        `json:"vatBase"`
	VAT         string        `json:"vat"`
	Total       string        `json:"total"`
	Note        string        `json:"note,omitempty"`
	Footer      string        `json:"footer,omitempty"`
}
