package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const receiptDayLayout = "20060102"

// NewUUID generates a new UUID
func NewUUID() uuid.UUID {
	return uuid.New()
}

// NewID generates a new UUID in its canonical string form
func NewID() string {
	return uuid.New().String()
}

// FormatReceiptNo renders PREFIX-YYYYMMDD-NNNN. Sequences above 9999 keep all digits.
func FormatReceiptNo(prefix string, day time.Time, seq int) string {
	return fmt.Sprintf("%s-%s-%04d", prefix, day.Format(receiptDayLayout), seq)
}

// ParseReceiptNo splits a receipt number produced by FormatReceiptNo
func ParseReceiptNo(receiptNo string) (prefix, day string, seq int, ok bool) {
	parts := strings.Split(receiptNo, "-")
	if len(parts) != 3 || len(parts[1]) != len(receiptDayLayout) {
		return "", "", 0, false
	}
	if _, err := time.Parse(receiptDayLayout, parts[1]); err != nil {
		return "", "", 0, false
	}
	seq, err := strconv.Atoi(parts[2])
	if err != nil || seq < 1 {
		return "", "", 0, false
	}
	return parts[0], parts[1], seq, true
}
