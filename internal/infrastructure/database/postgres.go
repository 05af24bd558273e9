package database

import (
	"fmt"
	"time"

	"github.com/sangkips/pos-ledger/internal/config"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Document is one stored collection, addressed by its logical key
type Document struct {
	Key       string `gorm:"column:doc_key;primaryKey;size:100"`
	Value     []byte `gorm:"not null"`
	UpdatedAt time.Time
}

func (Document) TableName() string {
	return "kv_documents"
}

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig, debug bool, log *zap.Logger) (*gorm.DB, error) {
	logLevel := logger.Warn
	if debug {
		logLevel = logger.Info
	}

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB to set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// A single terminal writes through one serialized unit of work
	sqlDB.SetMaxIdleConns(2)
	sqlDB.SetMaxOpenConns(10)

	log.Info("connected to PostgreSQL database", zap.String("host", cfg.Host), zap.String("database", cfg.Name))
	return db, nil
}

// AutoMigrate creates the document table
func AutoMigrate(db *gorm.DB, log *zap.Logger) error {
	log.Debug("running database migrations")

	if err := db.AutoMigrate(&Document{}); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Debug("database migrations completed")
	return nil
}
