package service

import (
	"context"

	"github.com/sangkips/pos-ledger/internal/domain/entity"
	"github.com/sangkips/pos-ledger/internal/domain/repository"
	"github.com/sangkips/pos-ledger/pkg/validator"
	"go.uber.org/zap"
)

// SettingsService handles settings-related business logic
type SettingsService struct {
	uow repository.UnitOfWork
	log *zap.Logger
}

// NewSettingsService creates a new settings service
func NewSettingsService(uow repository.UnitOfWork, log *zap.Logger) *SettingsService {
	return &SettingsService{uow: uow, log: log}
}

// GetSettings returns the saved settings, or the defaults when none were saved
func (s *SettingsService) GetSettings(ctx context.Context) (*entity.Settings, error) {
	var settings *entity.Settings
	err := s.uow.Do(ctx, func(repos repository.Repositories) error {
		var err error
		settings, err = repos.Settings.Get(ctx)
		return err
	})
	return settings, err
}

// UpdateSettings validates and replaces the settings. The new VAT rate
// applies to later sales only.
func (s *SettingsService) UpdateSettings(ctx context.Context, settings *entity.Settings) error {
	if err := validator.Validate(settings); err != nil {
		return err
	}
	if err := s.uow.Do(ctx, func(repos repository.Repositories) error {
		return repos.Settings.Save(ctx, settings)
	}); err != nil {
		return err
	}

	s.log.Info("settings updated", zap.String("vat_rate", settings.VatRate.String()))
	return nil
}
