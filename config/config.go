package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	AppName string
	AppEnv  string

	LogLevel string
	// Per-stream audit logs. Empty path means stderr.
	ScrapeLogPath string
	StoreLogPath  string

	DBUser     string `validate:"required"`
	DBPassword string
	DBHost     string `validate:"required"`
	DBPort     int
	DBName     string `validate:"required"`

	FetchAPIURL  string `validate:"required,url"`
	FetchAPIKey  string `validate:"required"`
	FetchTimeout time.Duration

	URLsFile string `validate:"required"`

	// EnsureSchema runs the idempotent DDL bootstrap at startup. Turn it
	// off when goose migrations own the schema.
	EnsureSchema bool
}

// envKeys maps Config fields to their viper/env keys for error reporting.
var envKeys = map[string]string{
	"DBUser":      "DB_USER",
	"DBHost":      "DB_HOST",
	"DBName":      "DB_NAME",
	"FetchAPIURL": "FETCH_API_URL",
	"FetchAPIKey": "FETCH_API_KEY",
	"URLsFile":    "URLS_FILE",
}

// MissingKeysError reports every absent or invalid required key at once.
type MissingKeysError struct {
	Keys []string
}

func (e *MissingKeysError) Error() string {
	return fmt.Sprintf("missing or invalid config keys: %s", strings.Join(e.Keys, ", "))
}

func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("APP_NAME", "storefront-catalog-miner")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("SCRAPE_LOG_PATH", "")
	v.SetDefault("STORE_LOG_PATH", "")

	v.SetDefault("DB_PORT", 5432)

	v.SetDefault("FETCH_API_URL", "https://app.scrapingbee.com/api/v1/")
	v.SetDefault("FETCH_TIMEOUT", "60s")

	v.SetDefault("URLS_FILE", "urls.txt")

	v.SetDefault("ENSURE_SCHEMA", true)

	return v
}

// ReadFile merges an env-format (KEY=value per line) config file into v.
// Environment variables still take precedence via AutomaticEnv.
func ReadFile(v *viper.Viper, path string) error {
	if strings.TrimSpace(path) == "" {
		return nil
	}
	v.SetConfigFile(path)
	v.SetConfigType("env")
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}
	return nil
}

func NewConfig(v *viper.Viper) (Config, error) {
	cfg := Config{
		AppName: v.GetString("APP_NAME"),
		AppEnv:  v.GetString("APP_ENV"),

		LogLevel:      v.GetString("LOG_LEVEL"),
		ScrapeLogPath: v.GetString("SCRAPE_LOG_PATH"),
		StoreLogPath:  v.GetString("STORE_LOG_PATH"),

		DBUser:     v.GetString("DB_USER"),
		DBPassword: v.GetString("DB_PASSWORD"),
		DBHost:     v.GetString("DB_HOST"),
		DBPort:     v.GetInt("DB_PORT"),
		DBName:     v.GetString("DB_NAME"),

		FetchAPIURL:  v.GetString("FETCH_API_URL"),
		FetchAPIKey:  v.GetString("FETCH_API_KEY"),
		FetchTimeout: v.GetDuration("FETCH_TIMEOUT"),

		URLsFile: v.GetString("URLS_FILE"),

		EnsureSchema: v.GetBool("ENSURE_SCHEMA"),
	}

	if err := validator.New().Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			missing := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				key, ok := envKeys[fe.StructField()]
				if !ok {
					key = fe.StructField()
				}
				missing = append(missing, key)
			}
			return Config{}, &MissingKeysError{Keys: missing}
		}
		return Config{}, err
	}

	if cfg.DBPort <= 0 || cfg.DBPort > 65535 {
		return Config{}, fmt.Errorf("invalid DB_PORT %d", cfg.DBPort)
	}
	if cfg.FetchTimeout <= 0 {
		return Config{}, fmt.Errorf("invalid FETCH_TIMEOUT %s", cfg.FetchTimeout)
	}

	return cfg, nil
}
