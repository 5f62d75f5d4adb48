package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Storage drivers
const (
	DriverLivingApps = "livingapps"
	DriverPostgres   = "postgres"
	DriverMemory     = "memory"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port         string `yaml:"port" env:"SERVER_PORT"`
		Mode         string `yaml:"mode" env:"SERVER_MODE"`
		ReadTimeout  string `yaml:"read_timeout" env:"SERVER_READ_TIMEOUT"`
		WriteTimeout string `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT"`
	} `yaml:"server"`

	LivingApps struct {
		BaseURL string `yaml:"base_url" env:"LIVINGAPPS_BASE_URL"`
		APIKey  string `yaml:"api_key" env:"LIVINGAPPS_API_KEY"`
		Timeout string `yaml:"timeout" env:"LIVINGAPPS_TIMEOUT"`
		Apps    struct {
			Dozenten    string `yaml:"dozenten" env:"LIVINGAPPS_APP_DOZENTEN"`
			Raeume      string `yaml:"raeume" env:"LIVINGAPPS_APP_RAEUME"`
			Teilnehmer  string `yaml:"teilnehmer" env:"LIVINGAPPS_APP_TEILNEHMER"`
			Kurse       string `yaml:"kurse" env:"LIVINGAPPS_APP_KURSE"`
			Anmeldungen string `yaml:"anmeldungen" env:"LIVINGAPPS_APP_ANMELDUNGEN"`
		} `yaml:"apps"`
	} `yaml:"livingapps"`

	Storage struct {
		Driver       string `yaml:"driver" env:"STORAGE_DRIVER"`
		SeedDemoData bool   `yaml:"seed_demo_data" env:"STORAGE_SEED_DEMO_DATA"`
	} `yaml:"storage"`

	Database struct {
		Host            string `yaml:"host" env:"DB_HOST"`
		Port            string `yaml:"port" env:"DB_PORT"`
		User            string `yaml:"user" env:"DB_USER"`
		Password        string `yaml:"password" env:"DB_PASSWORD"`
		DBName          string `yaml:"dbname" env:"DB_NAME"`
		SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
		MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
		MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
		MigrationsDir   string `yaml:"migrations_dir" env:"DB_MIGRATIONS_DIR"`
	} `yaml:"database"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`
}

// LoadConfig loads configuration from a file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	// A missing file is fine, defaults and env still apply
	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := applyEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	config.Storage.Driver = strings.ToLower(strings.TrimSpace(config.Storage.Driver))
	config.LivingApps.BaseURL = strings.TrimRight(strings.TrimSpace(config.LivingApps.BaseURL), "/")

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.Server.Port = "8080"
	config.Server.Mode = "development"
	config.Server.ReadTimeout = "10s"
	config.Server.WriteTimeout = "15s"

	config.LivingApps.BaseURL = "https://my.living-apps.de/rest"
	config.LivingApps.Timeout = "10s"

	config.Storage.Driver = DriverLivingApps

	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "kursverwaltung"
	config.Database.SSLMode = "disable"
	config.Database.MaxIdleConns = 2
	config.Database.MaxOpenConns = 10
	config.Database.ConnMaxLifetime = "1h"
	config.Database.MigrationsDir = "migrations"

	config.Logging.Level = "info"
	config.Logging.Format = "json"
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	switch config.Storage.Driver {
	case DriverLivingApps:
		if config.LivingApps.BaseURL == "" {
			return fmt.Errorf("livingapps base_url is required")
		}
		for name, id := range config.AppIDMap() {
			if strings.TrimSpace(id) == "" {
				return fmt.Errorf("livingapps app id for %s is required", name)
			}
		}
	case DriverPostgres:
		if config.Database.Host == "" {
			return fmt.Errorf("database host is required")
		}
		if _, err := time.ParseDuration(config.Database.ConnMaxLifetime); err != nil {
			return fmt.Errorf("invalid database conn_max_lifetime: %w", err)
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown storage driver %q", config.Storage.Driver)
	}

	for name, value := range map[string]string{
		"livingapps timeout":   config.LivingApps.Timeout,
		"server read_timeout":  config.Server.ReadTimeout,
		"server write_timeout": config.Server.WriteTimeout,
	} {
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("invalid %s: %w", name, err)
		}
	}

	return nil
}

// AppIDMap returns the configured LivingApps app id per entity key
func (c *Config) AppIDMap() map[string]string {
	return map[string]string{
		"dozenten":    c.LivingApps.Apps.Dozenten,
		"raeume":      c.LivingApps.Apps.Raeume,
		"teilnehmer":  c.LivingApps.Apps.Teilnehmer,
		"kurse":       c.LivingApps.Apps.Kurse,
		"anmeldungen": c.LivingApps.Apps.Anmeldungen,
	}
}

// IsProduction reports whether the server runs in production mode
func (c *Config) IsProduction() bool {
	return strings.ToLower(c.Server.Mode) == "production"
}

// GetPostgresConnectionString returns postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		sslMode,
	)
}
