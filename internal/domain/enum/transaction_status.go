package enum

import (
	"encoding/json"
	"fmt"
)

// TransactionStatus represents the status of a transaction. Voided is terminal.
type TransactionStatus int

const (
	TransactionStatusCompleted TransactionStatus = iota + 1
	TransactionStatusVoided
)

var transactionStatusNames = map[TransactionStatus]string{
	TransactionStatusCompleted: "Completed",
	TransactionStatusVoided:    "Voided",
}

func (s TransactionStatus) String() string {
	if name, ok := transactionStatusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("TransactionStatus(%d)", int(s))
}

func (s TransactionStatus) IsValid() bool {
	_, ok := transactionStatusNames[s]
	return ok
}

// ParseTransactionStatus maps a stored name to its TransactionStatus
func ParseTransactionStatus(str string) (TransactionStatus, error) {
	for s, name := range transactionStatusNames {
		if name == str {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown transaction status %q", str)
}

func (s TransactionStatus) MarshalJSON() ([]byte, error) {
	if !s.IsValid() {
		return nil, fmt.Errorf("cannot marshal %s", s)
	}
	return json.Marshal(s.String())
}

func (s *TransactionStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return fmt.Errorf("transaction status must be a string: %w", err)
	}
	parsed, err := ParseTransactionStatus(str)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
