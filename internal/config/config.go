package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sangkips/pos-ledger/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Store drivers
const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

type Config struct {
	App      AppConfig
	Store    StoreConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Logger   logger.Config
	Ledger   LedgerConfig
}

type AppConfig struct {
	Name  string
	Env   string
	Debug bool
}

type StoreConfig struct {
	Driver string
	// Path is the directory used by the file driver
	Path string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	Timezone string
}

type RedisConfig struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
}

type LedgerConfig struct {
	// Timezone decides which calendar day a receipt number belongs to
	Timezone       string
	DefaultVatRate decimal.Decimal
}

// Load reads .env when present, then the environment, over the defaults below
func Load() (*Config, error) {
	_ = godotenv.Load()
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	v.AutomaticEnv()

	// Set defaults
	v.SetDefault("APP_NAME", "pos-ledger")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_DEBUG", false)
	v.SetDefault("STORE_DRIVER", DriverFile)
	v.SetDefault("STORE_PATH", "./storage")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_NAME", "posledger")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_TIMEZONE", "Asia/Bangkok")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_KEY_PREFIX", "posledger:")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_ENCODING", "json")
	v.SetDefault("LOG_DISABLE_CALLER", false)
	v.SetDefault("LOG_DISABLE_STACKTRACE", true)
	v.SetDefault("TIMEZONE", "Local")
	v.SetDefault("DEFAULT_VAT_RATE", "7")

	vatRate, err := decimal.NewFromString(v.GetString("DEFAULT_VAT_RATE"))
	if err != nil {
		return nil, fmt.Errorf("invalid DEFAULT_VAT_RATE: %w", err)
	}
	if vatRate.IsNegative() || vatRate.GreaterThan(decimal.NewFromInt(100)) {
		return nil, fmt.Errorf("DEFAULT_VAT_RATE %s is outside 0-100", vatRate)
	}

	cfg := &Config{
		App: AppConfig{
			Name:  v.GetString("APP_NAME"),
			Env:   v.GetString("APP_ENV"),
			Debug: v.GetBool("APP_DEBUG"),
		},
		Store: StoreConfig{
			Driver: strings.ToLower(v.GetString("STORE_DRIVER")),
			Path:   v.GetString("STORE_PATH"),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			Name:     v.GetString("DB_NAME"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			SSLMode:  v.GetString("DB_SSL_MODE"),
			Timezone: v.GetString("DB_TIMEZONE"),
		},
		Redis: RedisConfig{
			Addr:      v.GetString("REDIS_ADDR"),
			Password:  v.GetString("REDIS_PASSWORD"),
			DB:        v.GetInt("REDIS_DB"),
			KeyPrefix: v.GetString("REDIS_KEY_PREFIX"),
		},
		Logger: logger.Config{
			Development:       v.GetString("APP_ENV") == "development",
			Level:             v.GetString("LOG_LEVEL"),
			Encoding:          v.GetString("LOG_ENCODING"),
			DisableCaller:     v.GetBool("LOG_DISABLE_CALLER"),
			DisableStacktrace: v.GetBool("LOG_DISABLE_STACKTRACE"),
		},
		Ledger: LedgerConfig{
			Timezone:       v.GetString("TIMEZONE"),
			DefaultVatRate: vatRate,
		},
	}

	switch cfg.Store.Driver {
	case DriverMemory, DriverFile, DriverPostgres, DriverRedis:
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.Store.Driver)
	}
	if _, err := cfg.Ledger.Location(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Location resolves the ledger time zone
func (c *LedgerConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", c.Timezone, err)
	}
	return loc, nil
}

func (c *DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.Timezone
}
