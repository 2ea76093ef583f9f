package unit_tests

import (
	"os"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glossa/internal/config"
)

// unsetenv removes key for the duration of the test; an empty value would bypass envDefault.
func unsetenv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}

func TestParseConfig(t *testing.T) {
	t.Setenv("GLOSSA_SETTINGS_BACKEND", "xml")
	t.Setenv("GLOSSA_SETTINGS_FILE", "/tmp/glossa/translation.xml")
	t.Setenv("GLOSSA_VAULT", "file")
	t.Setenv("GLOSSA_VAULT_DIR", "/tmp/glossa/vault")
	t.Setenv("GLOSSA_VAULT_PASSWORD", "pw")
	t.Setenv("GLOSSA_LOG_LEVEL", "debug")

	cfg, err := config.Parse()
	require.NoError(t, err)

	assert.Equal(t, config.BackendXML, cfg.SettingsBackend)
	assert.Equal(t, "/tmp/glossa/translation.xml", cfg.SettingsFile)
	assert.Equal(t, config.VaultFile, cfg.Vault)
	assert.Equal(t, "/tmp/glossa/vault", cfg.VaultDir)
	assert.Equal(t, log.DebugLevel, cfg.LogLevel)
	assert.NotEmpty(t, cfg.DatabasePath)
}

func TestParseConfig_Defaults(t *testing.T) {
	unsetenv(t, "GLOSSA_SETTINGS_BACKEND")
	unsetenv(t, "GLOSSA_SETTINGS_FILE")
	unsetenv(t, "GLOSSA_VAULT")
	unsetenv(t, "GLOSSA_VAULT_DIR")
	unsetenv(t, "GLOSSA_LOG_LEVEL")

	cfg, err := config.Parse()
	require.NoError(t, err)

	assert.Equal(t, config.BackendSQLite, cfg.SettingsBackend)
	assert.Equal(t, config.VaultKeychain, cfg.Vault)
	assert.Equal(t, log.InfoLevel, cfg.LogLevel)
	assert.NotEmpty(t, cfg.SettingsFile)
	assert.NotEmpty(t, cfg.VaultDir)
}

func TestParseConfig_Invalid(t *testing.T) {
	cases := map[string]map[string]string{
		"unknown backend": {"GLOSSA_SETTINGS_BACKEND": "etcd"},
		"unknown vault":   {"GLOSSA_VAULT": "pass"},
		"file vault without password": {
			"GLOSSA_VAULT":          "file",
			"GLOSSA_VAULT_PASSWORD": "",
		},
		"bad log level": {"GLOSSA_LOG_LEVEL": "loud"},
	}
	for name, vars := range cases {
		t.Run(name, func(t *testing.T) {
			for k, v := range vars {
				t.Setenv(k, v)
			}
			_, err := config.Parse()
			assert.Error(t, err)
		})
	}
}
