package repository

import "context"

// Logical document keys. Each holds a whole collection that is rewritten on every change.
const (
	KeySettings     = "pos_settings"
	KeyProducts     = "pos_products"
	KeyTransactions = "pos_transactions"
	KeyCustomers    = "pos_customers"
)

// KeyValue is one entry of a batch write
type KeyValue struct {
	Key   string
	Value []byte
}

// KeyValueReader reads raw documents. ok is false when the key has never been written.
type KeyValueReader interface {
	Read(ctx context.Context, key string) (value []byte, ok bool, err error)
}

// KeyValueReadWriter is what the document repositories need
type KeyValueReadWriter interface {
	KeyValueReader
	Write(ctx context.Context, key string, value []byte) error
}

// KeyValueStore is the durable backend. WriteBatch applies all entries or none.
type KeyValueStore interface {
	KeyValueReadWriter
	WriteBatch(ctx context.Context, entries []KeyValue) error
	Close() error
}
