package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	designskeyring "github.com/99designs/keyring"
	log "github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"

	"glossa/internal/database"
	"glossa/internal/events"
	"glossa/internal/models"
	"glossa/internal/repositories"
	"glossa/internal/services"
)

type recordedEvent struct {
	name string
	evt  events.SettingsEvent
}

func newTestVault() services.SecretVault {
	return services.NewFileVaultService(designskeyring.NewArrayKeyring(nil))
}

func newTestApp(t *testing.T, path string, vault services.SecretVault) (*App, *[]recordedEvent) {
	t.Helper()
	var got []recordedEvent
	t.Cleanup(func() { events.SetCustomEmitter(nil) })

	logger, _ := logtest.NewNullLogger()
	store := services.NewSettingsStore(repositories.NewXMLSettingsRepository(path), vault, logger)

	app := NewApp(store, nil)
	app.enableEmitter = func() {
		events.SetCustomEmitter(func(ctx context.Context, name string, evt events.SettingsEvent) {
			got = append(got, recordedEvent{name: name, evt: evt})
		})
	}
	return app, &got
}

func TestApp_StartupWarnsWhenAppKeyMissing(t *testing.T) {
	app, got := newTestApp(t, filepath.Join(t.TempDir(), "translation.xml"), newTestVault())

	app.startup(context.Background())

	require.Len(t, *got, 1)
	assert.Equal(t, events.SettingsAppKeyMissing, (*got)[0].name)
	assert.Equal(t, events.EventWarn, (*got)[0].evt.Type)
}

func TestApp_SettingsSurviveRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "translation.xml")
	vault := newTestVault()
	app, got := newTestApp(t, path, vault)
	ctx := context.Background()
	app.startup(ctx)

	update := app.GetTranslationSettings()
	update.AppID = "app-42"
	update.OverrideFont = true
	update.PrimaryFontFamily = "Consolas"
	update.AutoSelectionMode = models.AutoSelectionExclusive

	state, err := app.UpdateTranslationSettings(update)
	require.NoError(t, err)
	assert.Equal(t, "app-42", state.AppID)

	fontEvents := 0
	for _, e := range *got {
		if e.name == events.SettingsFontChanged {
			fontEvents++
		}
	}
	assert.Equal(t, 2, fontEvents)

	require.NoError(t, app.SetAppPrivateKey("s3cr3t"))
	app.shutdown(ctx)

	restarted, restartedEvents := newTestApp(t, path, vault)
	restarted.startup(ctx)

	loaded := restarted.GetTranslationSettings()
	assert.Equal(t, "app-42", loaded.AppID)
	assert.True(t, loaded.OverrideFont)
	assert.Equal(t, "Consolas", loaded.PrimaryFontFamily)
	assert.Equal(t, models.AutoSelectionExclusive, loaded.AutoSelectionMode)
	assert.True(t, loaded.PrivateKeyConfigured)
	assert.Empty(t, *restartedEvents, "no missing-key warning once a key is configured")
}

func TestApp_UpdateRejectsInvalidMode(t *testing.T) {
	app, _ := newTestApp(t, filepath.Join(t.TempDir(), "translation.xml"), newTestVault())
	app.startup(context.Background())

	update := app.GetTranslationSettings()
	update.AppID = "ignored"
	update.AutoSelectionMode = "WORD"

	_, err := app.UpdateTranslationSettings(update)
	assert.ErrorIs(t, err, models.ErrInvalidAutoSelectionMode)
	assert.Equal(t, "", app.GetTranslationSettings().AppID)
}

func TestApp_DismissAppKeyNotification(t *testing.T) {
	path := filepath.Join(t.TempDir(), "translation.xml")
	vault := newTestVault()
	app, _ := newTestApp(t, path, vault)
	ctx := context.Background()
	app.startup(ctx)

	require.NoError(t, app.DismissAppKeyNotification())
	app.shutdown(ctx)

	restarted, got := newTestApp(t, path, vault)
	restarted.startup(ctx)
	assert.Empty(t, *got)
}

func TestApp_StartupWarnsWhenVaultLostKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "translation.xml")
	content := `<application><component name="TranslationSettings"><option name="privateKeyConfigured" value="true"/></component></application>`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	app, got := newTestApp(t, path, newTestVault())
	app.startup(context.Background())

	require.Len(t, *got, 1)
	assert.Equal(t, events.SettingsAppKeyMissing, (*got)[0].name)
}

func TestApp_UnreadableSettingsAreNotOverwrittenOnShutdown(t *testing.T) {
	path := filepath.Join(t.TempDir(), "translation.xml")
	content := `<application>
  <component name="TranslationSettings">
    <option name="appId" value="user-app" />
    <option name="primaryFontFamily" value="Consolas" />
    <option name="overrideFont" value="yes" />
  </component>
</application>`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	ctx := context.Background()

	app, _ := newTestApp(t, path, newTestVault())
	app.startup(ctx)
	assert.Equal(t, "", app.GetTranslationSettings().AppID)
	app.shutdown(ctx)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, content, string(data))
}

func TestApp_ExplicitSaveAfterFailedLoadResumesShutdownSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "translation.xml")
	content := `<application><component name="TranslationSettings"><option name="overrideFont" value="yes"/></component></application>`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	ctx := context.Background()
	vault := newTestVault()

	app, _ := newTestApp(t, path, vault)
	app.startup(ctx)

	update := app.GetTranslationSettings()
	update.AppID = "re-entered"
	_, err := app.UpdateTranslationSettings(update)
	require.NoError(t, err)

	app.Settings.SetPrimaryFontFamily("Menlo")
	app.shutdown(ctx)

	restarted, _ := newTestApp(t, path, vault)
	restarted.startup(ctx)
	loaded := restarted.GetTranslationSettings()
	assert.Equal(t, "re-entered", loaded.AppID)
	assert.Equal(t, "Menlo", loaded.PrimaryFontFamily)
}

func TestGormLogLevel(t *testing.T) {
	assert.Equal(t, logger.Info, gormLogLevel(log.DebugLevel, false))
	assert.Equal(t, logger.Info, gormLogLevel(log.TraceLevel, true))
	assert.Equal(t, logger.Warn, gormLogLevel(log.InfoLevel, true))
	assert.Equal(t, logger.Error, gormLogLevel(log.InfoLevel, false))
	assert.True(t, database.IsDevelopment(), "tests build without the prod tag")
}
