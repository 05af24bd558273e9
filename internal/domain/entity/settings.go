package entity

import "github.com/shopspring/decimal"

// Settings holds the shop identity printed on receipts and the flat VAT rate
type Settings struct {
	CompanyName   string          `json:"companyName" validate:"required"`
	Address       string          `json:"address"`
	TaxID         string          `json:"taxId"`
	Phone         string          `json:"phone"`
	FooterMessage string          `json:"footerMessage"`
	VatRate       decimal.Decimal `json:"vatRate" validate:"gte=0,lte=100"`
}

// DefaultSettings is returned until settings have been saved
func DefaultSettings() Settings {
	return Settings{
		CompanyName:   "My Local Shop Co., Ltd.",
		Address:       "123 Commerce Rd, Bangkok, 10110",
		TaxID:         "0105555555555",
		Phone:         "02-123-4567",
		FooterMessage: "Thank you for your business!",
		VatRate:       decimal.NewFromInt(7),
	}
}
