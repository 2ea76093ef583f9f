package services

import (
	log "github.com/sirupsen/logrus"

	"glossa/internal/repositories"
)

// Services aggregates the services the host binds.
type Services struct {
	Settings SettingsStore
}

// NewServices constructs the service container around a settings repository and a vault.
func NewServices(repo repositories.TranslationSettingsRepository, vault SecretVault, logger *log.Logger) *Services {
	return &Services{
		Settings: NewSettingsStore(repo, vault, logger),
	}
}
