package main

import (
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm/logger"

	"glossa/internal/config"
	"glossa/internal/database"
	"glossa/internal/repositories"
	"glossa/internal/services"
)

// openSettingsRepository returns the configured persistence backend and a close func.
func openSettingsRepository(cfg *config.Config) (repositories.TranslationSettingsRepository, func() error, error) {
	switch cfg.SettingsBackend {
	case config.BackendXML:
		return repositories.NewXMLSettingsRepository(cfg.SettingsFile), func() error { return nil }, nil
	case config.BackendSQLite:
		db, err := database.Init(database.Config{
			Path:     cfg.DatabasePath,
			LogLevel: gormLogLevel(cfg.LogLevel, database.IsDevelopment()),
		})
		if err != nil {
			return nil, nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, fmt.Errorf("get sql db: %w", err)
		}
		return repositories.NewTranslationSettingsRepository(db), sqlDB.Close, nil
	default:
		return nil, nil, fmt.Errorf("settings backend '%s' not supported", cfg.SettingsBackend)
	}
}

// gormLogLevel shows SQL at debug, slow queries and warnings in dev builds,
// and only errors in prod builds.
func gormLogLevel(level log.Level, development bool) logger.LogLevel {
	switch {
	case level >= log.DebugLevel:
		return logger.Info
	case development:
		return logger.Warn
	default:
		return logger.Error
	}
}

func openSecretVault(cfg *config.Config) (services.SecretVault, error) {
	if cfg.Vault == config.VaultFile {
		return services.OpenFileVault(cfg.VaultDir, cfg.VaultPassword)
	}

	keychain := services.NewKeyringService()
	if keychain.Available() {
		return keychain, nil
	}
	if cfg.VaultPassword != "" {
		log.WithField("dir", cfg.VaultDir).Warn("OS keychain unavailable, falling back to file vault")
		return services.OpenFileVault(cfg.VaultDir, cfg.VaultPassword)
	}
	return nil, errors.New("OS keychain unavailable; set GLOSSA_VAULT=file and GLOSSA_VAULT_PASSWORD")
}
