package repository

import (
	"context"

	"github.com/sangkips/pos-ledger/internal/domain/entity"
	domainRepo "github.com/sangkips/pos-ledger/internal/domain/repository"
)

type settingsRepository struct {
	kv       domainRepo.KeyValueReadWriter
	defaults entity.Settings
}

// NewSettingsRepository creates a repository over the pos_settings document.
// defaults is returned until settings are saved.
func NewSettingsRepository(kv domainRepo.KeyValueReadWriter, defaults entity.Settings) domainRepo.SettingsRepository {
	return &settingsRepository{kv: kv, defaults: defaults}
}

func (r *settingsRepository) Get(ctx context.Context) (*entity.Settings, error) {
	settings, err := readDocument[entity.Settings](ctx, r.kv, domainRepo.KeySettings)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		defaults := r.defaults
		return &defaults, nil
	}
	return settings, nil
}

func (r *settingsRepository) Save(ctx context.Context, settings *entity.Settings) error {
	return writeDocument(ctx, r.kv, domainRepo.KeySettings, settings)
}
