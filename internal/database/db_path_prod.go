//go:build prod

package database

import (
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
)

// GetDefaultDBPath returns the database path for production mode.
// In production, the database is stored in the user's config directory.
func GetDefaultDBPath() string {
	return inAppConfigDir("glossa.db")
}

// GetDefaultSettingsFilePath returns the XML settings path for production mode.
func GetDefaultSettingsFilePath() string {
	return inAppConfigDir(filepath.Join("options", "translation.xml"))
}

func IsDevelopment() bool {
	return false
}

func inAppConfigDir(name string) string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		log.WithField("error", err).Warn("failed to get user config dir, using fallback")
		return filepath.Base(name)
	}

	appDir := filepath.Join(configDir, "glossa")
	if err := os.MkdirAll(appDir, 0755); err != nil {
		log.WithFields(log.Fields{"error": err, "dir": appDir}).Warn("failed to create app config dir, using fallback")
		return filepath.Base(name)
	}

	return filepath.Join(appDir, name)
}
