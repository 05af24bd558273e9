package repository

import (
	"context"

	"github.com/sangkips/pos-ledger/internal/domain/entity"
)

// SettingsRepository defines the interface for settings data access
type SettingsRepository interface {
	// Get returns the saved settings or the defaults
	Get(ctx context.Context) (*entity.Settings, error)
	Save(ctx context.Context, settings *entity.Settings) error
}
