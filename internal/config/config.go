package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v6"
	log "github.com/sirupsen/logrus"

	"glossa/internal/database"
	"glossa/internal/utils"
)

const (
	BackendSQLite = "sqlite"
	BackendXML    = "xml"

	VaultKeychain = "keychain"
	VaultFile     = "file"
)

// Config struct for the settings host.
type Config struct {
	SettingsBackend string    `env:"GLOSSA_SETTINGS_BACKEND" envDefault:"sqlite"`
	DatabasePath    string    `env:"GLOSSA_DB_PATH"`
	SettingsFile    string    `env:"GLOSSA_SETTINGS_FILE"`
	Vault           string    `env:"GLOSSA_VAULT" envDefault:"keychain"`
	VaultDir        string    `env:"GLOSSA_VAULT_DIR"`
	VaultPassword   string    `env:"GLOSSA_VAULT_PASSWORD"`
	LogLevel        log.Level `env:"GLOSSA_LOG_LEVEL" envDefault:"info"`
}

// Parse loads an optional .env from the project root and parses environment variables to a valid Config.
func Parse() (*Config, error) {
	if err := utils.LoadEnv(); err != nil {
		log.WithField("error", err).Debug("no .env loaded")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if cfg.DatabasePath == "" {
		cfg.DatabasePath = database.GetDefaultDBPath()
	}
	if cfg.SettingsFile == "" {
		cfg.SettingsFile = database.GetDefaultSettingsFilePath()
	}
	if cfg.VaultDir == "" {
		configDir, err := os.UserConfigDir()
		if err != nil {
			configDir = "."
		}
		cfg.VaultDir = filepath.Join(configDir, "glossa", "vault")
	}

	switch cfg.SettingsBackend {
	case BackendSQLite, BackendXML:
	default:
		return nil, fmt.Errorf("settings backend '%s' not supported", cfg.SettingsBackend)
	}

	switch cfg.Vault {
	case VaultKeychain:
	case VaultFile:
		if cfg.VaultPassword == "" {
			return nil, fmt.Errorf("GLOSSA_VAULT_PASSWORD is required for the file vault")
		}
	default:
		return nil, fmt.Errorf("vault '%s' not supported", cfg.Vault)
	}

	return cfg, nil
}

// ConfigureLogger applies the level and formatter to the standard logrus logger.
func ConfigureLogger(level log.Level) {
	log.SetLevel(level)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
}
