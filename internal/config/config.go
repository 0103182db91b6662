package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config represents the full application configuration surface.
type Config struct {
	Server    ServerConfig
	MongoDB   MongoDBConfig
	Meta      MetaConfig
	Reporting ReportingConfig
	Sheets    SheetsConfig
	Webhook   WebhookConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// MongoDBConfig holds settings for MongoDB. TxnDisabled opts out of session
// transactions for standalone mongod instances without a replica set.
type MongoDBConfig struct {
	URI         string
	DBName      string
	TxnDisabled bool
}

// MetaConfig overrides the built-in unit/category metadata. Empty slices
// fall back to the defaults.
type MetaConfig struct {
	Units        []string
	IntegerUnits []string
	Categories   []string
}

// ReportingConfig holds scheduler-related settings.
type ReportingConfig struct {
	CronSchedule string
}

// SheetsConfig configures the optional weekly-report spreadsheet export.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
	Range           string
}

// Enabled reports whether the sheet export should be wired.
func (c SheetsConfig) Enabled() bool {
	return c.CredentialsPath != "" && c.SpreadsheetID != ""
}

// WebhookConfig configures the optional outbound event endpoint.
type WebhookConfig struct {
	URL string
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Missing .env files are acceptable when configuration comes from the
		// environment directly.
		_ = godotenv.Load()
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		MongoDB: MongoDBConfig{
			URI:         getenvWithDefault("MONGODB_URI", "mongodb://localhost:27017"),
			DBName:      getenvWithDefault("MONGODB_DB_NAME", "stockroom"),
			TxnDisabled: getenvBool("TXN_DISABLED"),
		},
		Meta: MetaConfig{
			Units:        splitList(os.Getenv("UNITS")),
			IntegerUnits: splitList(os.Getenv("INTEGER_UNITS")),
			Categories:   splitList(os.Getenv("CATEGORIES")),
		},
		Reporting: ReportingConfig{
			// Monday morning, covering the week that just closed.
			CronSchedule: getenvWithDefault("REPORT_CRON_SCHEDULE", "0 6 * * 1"),
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("SHEETS_SPREADSHEET_ID"),
			Range:           getenvWithDefault("SHEETS_RANGE", "Receiving!A:Z"),
		},
		Webhook: WebhookConfig{
			URL: os.Getenv("WEBHOOK_URL"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	switch {
	case c.MongoDB.URI == "":
		return errors.New("MONGODB_URI must be provided")
	case c.MongoDB.DBName == "":
		return errors.New("MONGODB_DB_NAME must be provided")
	}

	if c.Reporting.CronSchedule == "" {
		return errors.New("REPORT_CRON_SCHEDULE must be provided")
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getenvBool(key string) bool {
	switch strings.ToLower(os.Getenv(key)) {
	case "1", "true", "yes":
		return true
	}
	return false
}

func splitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
