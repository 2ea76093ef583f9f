//go:build !prod

package database

// GetDefaultDBPath returns the database path for development mode.
// In dev mode, the database is stored in the project root for easy access and debugging.
func GetDefaultDBPath() string {
	return "glossa.db"
}

// GetDefaultSettingsFilePath returns the XML settings path for development mode.
func GetDefaultSettingsFilePath() string {
	return "translation.xml"
}

func IsDevelopment() bool {
	return true
}
