// Package config provides Viper-based hierarchical configuration management
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"fjacquet/daily-dollar/internal/models"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Storage backends
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// EnvPrefix prefixes every environment variable override.
const EnvPrefix = "DAILYDOLLAR"

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Data struct {
		Backend   string `mapstructure:"backend" yaml:"backend"`
		Directory string `mapstructure:"directory" yaml:"directory"`
		// FileName defaults to budget.json or budget.db depending on the backend.
		FileName      string `mapstructure:"file_name" yaml:"file_name"`
		BackupEnabled bool   `mapstructure:"backup_enabled" yaml:"backup_enabled"`
	} `mapstructure:"data" yaml:"data"`

	Budget struct {
		CategoriesFile        string `mapstructure:"categories_file" yaml:"categories_file"`
		DefaultPaycheckAmount string `mapstructure:"default_paycheck_amount" yaml:"default_paycheck_amount"`
		DefaultPaycheckDay    int    `mapstructure:"default_paycheck_day" yaml:"default_paycheck_day"`
	} `mapstructure:"budget" yaml:"budget"`

	Rollover struct {
		CatchUpMissedPeriods bool `mapstructure:"catch_up_missed_periods" yaml:"catch_up_missed_periods"`
	} `mapstructure:"rollover" yaml:"rollover"`

	CSV struct {
		Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	} `mapstructure:"csv" yaml:"csv"`
}

// InitializeConfig loads defaults, the first config.yaml found in the search
// path, and environment overrides.
func InitializeConfig() (*Config, error) {
	return Load("")
}

// Load is InitializeConfig with an explicit config file. An empty path uses
// the search path; a missing explicit file is an error.
func Load(configFile string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.daily-dollar")
		v.AddConfigPath(".daily-dollar")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file %s: %w", v.ConfigFileUsed(), err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("data.backend", BackendFile)
	v.SetDefault("data.directory", "")
	v.SetDefault("data.file_name", "")
	v.SetDefault("data.backup_enabled", true)

	v.SetDefault("budget.categories_file", "categories.yaml")
	v.SetDefault("budget.default_paycheck_amount", "3000")
	v.SetDefault("budget.default_paycheck_day", 1)

	v.SetDefault("rollover.catch_up_missed_periods", false)

	v.SetDefault("csv.delimiter", ",")
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	switch config.Data.Backend {
	case BackendFile, BackendSQLite, BackendMemory:
	default:
		return fmt.Errorf("invalid data backend: %s (must be 'file', 'sqlite' or 'memory')", config.Data.Backend)
	}

	if _, err := models.ParseAmount(config.Budget.DefaultPaycheckAmount); err != nil {
		return fmt.Errorf("budget.default_paycheck_amount: %w", err)
	}

	day := config.Budget.DefaultPaycheckDay
	if day < models.MinPaycheckDay || day > models.MaxPaycheckDay {
		return fmt.Errorf("budget.default_paycheck_day must be between 1 and 31, got: %d", day)
	}

	if utf8.RuneCountInString(config.CSV.Delimiter) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %s", config.CSV.Delimiter)
	}

	return nil
}

// DataDirectory is the configured data directory, or ~/.daily-dollar.
func (c *Config) DataDirectory() string {
	if c.Data.Directory != "" {
		return c.Data.Directory
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".daily-dollar"
	}
	return filepath.Join(home, ".daily-dollar")
}

// DataPath is the file holding the budget for the file and sqlite backends.
func (c *Config) DataPath() string {
	name := c.Data.FileName
	if name == "" {
		name = "budget.json"
		if c.Data.Backend == BackendSQLite {
			name = "budget.db"
		}
	}
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.DataDirectory(), name)
}

// PaycheckAmount is the validated default paycheck amount.
func (c *Config) PaycheckAmount() decimal.Decimal {
	amount, err := models.ParseAmount(c.Budget.DefaultPaycheckAmount)
	if err != nil {
		return decimal.Zero
	}
	return amount
}

// Delimiter is the export delimiter as a rune.
func (c *Config) Delimiter() rune {
	r, _ := utf8.DecodeRuneInString(c.CSV.Delimiter)
	return r
}

// ConfigureLoggingFromConfig configures logging based on the Config struct
func ConfigureLoggingFromConfig(config *Config) *logrus.Logger {
	logger := logrus.New()

	logLevel, err := logrus.ParseLevel(strings.ToLower(config.Log.Level))
	if err != nil {
		logger.Warnf("Invalid log level '%s', using 'info'", config.Log.Level)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	if strings.ToLower(config.Log.Format) == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger
}
