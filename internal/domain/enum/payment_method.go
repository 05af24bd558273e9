package enum

import (
	"encoding/json"
	"fmt"
)

// PaymentMethod represents how a sale was settled
type PaymentMethod int

const (
	PaymentMethodCash PaymentMethod = iota + 1
	PaymentMethodQR
)

var paymentMethodNames = map[PaymentMethod]string{
	PaymentMethodCash: "Cash",
	PaymentMethodQR:   "QR Transfer",
}

func (m PaymentMethod) String() string {
	if name, ok := paymentMethodNames[m]; ok {
		return name
	}
	return fmt.Sprintf("PaymentMethod(%d)", int(m))
}

func (m PaymentMethod) IsValid() bool {
	_, ok := paymentMethodNames[m]
	return ok
}

// ParsePaymentMethod maps a stored name to its PaymentMethod
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	for m, name := range paymentMethodNames {
		if name == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown payment method %q", s)
}

func (m PaymentMethod) MarshalJSON() ([]byte, error) {
	if !m.IsValid() {
		return nil, fmt.Errorf("cannot marshal %s", m)
	}
	return json.Marshal(m.String())
}

func (m *PaymentMethod) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return fmt.Errorf("payment method must be a string: %w", err)
	}
	parsed, err := ParsePaymentMethod(str)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
