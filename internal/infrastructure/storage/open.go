package storage

import (
	"context"
	"fmt"

	"github.com/sangkips/pos-ledger/internal/config"
	domainRepo "github.com/sangkips/pos-ledger/internal/domain/repository"
	"github.com/sangkips/pos-ledger/internal/infrastructure/database"
	"go.uber.org/zap"
)

// Open builds the backend selected by cfg.Store.Driver
func Open(ctx context.Context, cfg *config.Config, log *zap.Logger) (domainRepo.KeyValueStore, error) {
	log = log.With(zap.String("driver", cfg.Store.Driver))

	switch cfg.Store.Driver {
	case config.DriverMemory:
		log.Warn("using in-memory store, data is lost on exit")
		return NewMemoryStore(), nil

	case config.DriverFile:
		s, err := NewFileStore(cfg.Store.Path)
		if err != nil {
			return nil, err
		}
		log.Info("opened file store", zap.String("path", cfg.Store.Path))
		return s, nil

	case config.DriverPostgres:
		db, err := database.NewPostgresDB(&cfg.Database, cfg.App.Debug, log)
		if err != nil {
			return nil, err
		}
		if err := database.AutoMigrate(db.WithContext(ctx), log); err != nil {
			if sqlDB, dbErr := db.DB(); dbErr == nil {
				sqlDB.Close()
			}
			return nil, err
		}
		return NewGormStore(db), nil

	case config.DriverRedis:
		client, err := NewRedisClient(&cfg.Redis, log)
		if err != nil {
			return nil, err
		}
		return NewRedisStore(client, cfg.Redis.KeyPrefix), nil
	}

	return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
}
