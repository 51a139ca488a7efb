package config

import (
	"os"
	"strconv"
	"strings"
)

const (
	CatalogSourceFile   = "file"
	CatalogSourceSQLite = "sqlite"
)

type Config struct {
	Server  ServerConfig
	Logger  LoggerConfig
	Catalog CatalogConfig
	Pricing PricingConfig
}

type ServerConfig struct {
	AppEnv string
}

type LoggerConfig struct {
	Level             string
	Encoding          string
	DisableCaller     bool
	DisableStacktrace bool
}

type CatalogConfig struct {
	Source    string
	File      string
	SQLiteDSN string
}

type PricingConfig struct {
	VATPct      float64
	MaxQuantity int
}

func LoadEnv() *Config {
	return &Config{
		Server: ServerConfig{
			AppEnv: getEnv("APP_ENV", "dev"),
		},
		Logger: LoggerConfig{
			Level:             getEnv("LOGGER_LEVEL", "info"),
			Encoding:          getEnv("LOGGER_ENCODING", "console"),
			DisableCaller:     getEnvBool("LOGGER_DISABLE_CALLER", false),
			DisableStacktrace: getEnvBool("LOGGER_DISABLE_STACKTRACE", true),
		},
		Catalog: CatalogConfig{
			Source:    strings.ToLower(getEnv("CATALOG_SOURCE", CatalogSourceFile)),
			File:      getEnv("CATALOG_FILE", "PCConfigs.json"),
			SQLiteDSN: getEnv("CATALOG_SQLITE_DSN", "file:repricer.db"),
		},
		Pricing: PricingConfig{
			VATPct:      getEnvFloat("PRICING_VAT_PCT", 20),
			MaxQuantity: getEnvInt("PRICING_MAX_QUANTITY", 3),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value, ok := os.LookupEnv(key); ok {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}
