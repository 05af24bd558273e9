package repository

import (
	"context"
	"encoding/json"
	"fmt"

	domainRepo "github.com/sangkips/pos-ledger/internal/domain/repository"
	"github.com/sangkips/pos-ledger/pkg/apperror"
	"github.com/sangkips/pos-ledger/pkg/validator"
)

type invariantChecker interface {
	CheckInvariants() error
}

// recordCheck is an extra per-record rule applied on both read and write
type recordCheck[T any] func(record *T) error

// readCollection decodes the array stored under key and validates every
// record. found is false when the key has never been written.
func readCollection[T any](ctx context.Context, kv domainRepo.KeyValueReader, key string, checks ...recordCheck[T]) (items []T, found bool, err error) {
	raw, ok, err := kv.Read(ctx, key)
	if err != nil {
		return nil, false, apperror.NewStorageError("read "+key, err)
	}
	if !ok {
		return nil, false, nil
	}

	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, false, apperror.NewDecodeError(key, err)
	}
	for i := range items {
		if err := checkRecord(&items[i], checks...); err != nil {
			return nil, false, apperror.NewDecodeError(key, fmt.Errorf("record %d: %w", i, err))
		}
	}
	return items, true, nil
}

// writeCollection applies the read-side rules to every record before
// staging the array, so a written collection always decodes again.
func writeCollection[T any](ctx context.Context, kv domainRepo.KeyValueReadWriter, key string, items []T, checks ...recordCheck[T]) error {
	for i := range items {
		if err := checkRecord(&items[i], checks...); err != nil {
			return apperror.NewInvalidRecordError(key, i, err)
		}
	}
	if items == nil {
		items = []T{}
	}
	return writeJSON(ctx, kv, key, items)
}

// readDocument decodes the single object stored under key
func readDocument[T any](ctx context.Context, kv domainRepo.KeyValueReader, key string) (*T, error) {
	raw, ok, err := kv.Read(ctx, key)
	if err != nil {
		return nil, apperror.NewStorageError("read "+key, err)
	}
	if !ok {
		return nil, nil
	}

	var doc T
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, apperror.NewDecodeError(key, err)
	}
	if err := checkRecord(&doc); err != nil {
		return nil, apperror.NewDecodeError(key, err)
	}
	return &doc, nil
}

func writeDocument[T any](ctx context.Context, kv domainRepo.KeyValueReadWriter, key string, doc *T) error {
	if err := checkRecord(doc); err != nil {
		return apperror.NewInvalidRecordError(key, 0, err)
	}
	return writeJSON(ctx, kv, key, doc)
}

func checkRecord[T any](record *T, checks ...recordCheck[T]) error {
	if errs := validator.ValidateStruct(record); len(errs) > 0 {
		return apperror.NewValidationError(errs)
	}
	if c, ok := any(record).(invariantChecker); ok {
		if err := c.CheckInvariants(); err != nil {
			return err
		}
	}
	for _, check := range checks {
		if err := check(record); err != nil {
			return err
		}
	}
	return nil
}

func writeJSON(ctx context.Context, kv domainRepo.KeyValueReadWriter, key string, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return apperror.NewAppError(apperror.KindInternal, fmt.Sprintf("encode %q failed: %v", key, err))
	}
	if err := kv.Write(ctx, key, raw); err != nil {
		return apperror.NewStorageError("write "+key, err)
	}
	return nil
}
