package enum

import (
	"encoding/json"
	"fmt"
)

// VatType represents how VAT relates to a selling price
type VatType int

const (
	// VatTypeIncluded prices already contain VAT
	VatTypeIncluded VatType = iota + 1
	// VatTypeExcluded prices get VAT added at sale time
	VatTypeExcluded
	// VatTypeNone prices are VAT exempt
	VatTypeNone
)

var vatTypeNames = map[VatType]string{
	VatTypeIncluded: "Included",
	VatTypeExcluded: "Excluded",
	VatTypeNone:     "None",
}

func (t VatType) String() string {
	if name, ok := vatTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("VatType(%d)", int(t))
}

// IsValid reports whether t is one of the three classifications
func (t VatType) IsValid() bool {
	_, ok := vatTypeNames[t]
	return ok
}

// ParseVatType maps a stored name to its VatType
func ParseVatType(s string) (VatType, error) {
	for t, name := range vatTypeNames {
		if name == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown vat type %q", s)
}

func (t VatType) MarshalJSON() ([]byte, error) {
	if !t.IsValid() {
		return nil, fmt.Errorf("cannot marshal %s", t)
	}
	return json.Marshal(t.String())
}

func (t *VatType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return fmt.Errorf("vat type must be a string: %w", err)
	}
	parsed, err := ParseVatType(str)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
