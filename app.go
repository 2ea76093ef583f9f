package main

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"glossa/internal/events"
	"glossa/internal/models"
	"glossa/internal/services"
)

// App struct
type App struct {
	ctx             context.Context
	Settings        services.SettingsStore
	closeStorage    func() error
	unsubscribeFont func()
	// set when startup could not read the stored settings; shutdown then
	// leaves the file alone until the user saves explicitly
	loadFailed bool
	// emitter swap point for tests; nil enables the Wails runtime emitter
	enableEmitter func()
}

// NewApp creates a new App application struct
func NewApp(settings services.SettingsStore, closeStorage func() error) *App {
	return &App{
		Settings:      settings,
		closeStorage:  closeStorage,
		enableEmitter: events.EnableRuntimeEmitter,
	}
}

// startup is called when the app starts. The context is saved
// so we can call the runtime methods
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx
	if a.enableEmitter != nil {
		a.enableEmitter()
	}

	if err := a.Settings.Load(ctx); err != nil {
		a.loadFailed = true
		log.WithField("error", err).Error("failed to load translation settings, using defaults")
	}
	a.unsubscribeFont = a.Settings.OnFontChanged(events.FontChangeForwarder(ctx))

	state := a.Settings.State()
	if !state.DisableAppKeyNotification && a.Settings.AppPrivateKeyOrEmpty() == "" {
		events.Emit(ctx, events.SettingsAppKeyMissing, events.NewAppKeyMissing(state))
	}
}

// shutdown is called when the app is closing. Clean up resources here.
func (a *App) shutdown(ctx context.Context) {
	if a.unsubscribeFont != nil {
		a.unsubscribeFont()
		a.unsubscribeFont = nil
	}

	if a.loadFailed {
		log.Warn("translation settings were not loaded, skipping save on shutdown")
	} else if err := a.Settings.Save(ctx); err != nil {
		log.WithField("error", err).Error("failed to save translation settings")
	}

	if a.closeStorage != nil {
		if err := a.closeStorage(); err != nil {
			log.WithField("error", err).Error("failed to close settings storage")
		} else {
			log.Info("settings storage closed")
		}
		a.closeStorage = nil
	}
}

// GetTranslationSettings returns the current translation settings
func (a *App) GetTranslationSettings() models.TranslationSettings {
	return a.Settings.State()
}

// UpdateTranslationSettings applies the settings form and persists the result.
// Font listeners only fire for the font fields that actually changed.
func (a *App) UpdateTranslationSettings(update models.TranslationSettings) (models.TranslationSettings, error) {
	mode := update.AutoSelectionMode
	if mode == "" {
		mode = models.AutoSelectionInclusive
	}
	if err := a.Settings.SetAutoSelectionMode(mode); err != nil {
		return a.Settings.State(), err
	}

	a.Settings.SetAppID(update.AppID)
	a.Settings.SetDisableAppKeyNotification(update.DisableAppKeyNotification)
	a.Settings.SetOverrideFont(update.OverrideFont)
	a.Settings.SetPrimaryFontFamily(update.PrimaryFontFamily)
	a.Settings.SetPhoneticFontFamily(update.PhoneticFontFamily)

	if err := a.save(); err != nil {
		return a.Settings.State(), err
	}
	return a.Settings.State(), nil
}

// GetAppPrivateKey returns the stored translation app private key
func (a *App) GetAppPrivateKey() (string, error) {
	return a.Settings.AppPrivateKey()
}

// SetAppPrivateKey stores the app private key in the vault and persists the configured flag
func (a *App) SetAppPrivateKey(secret string) error {
	if err := a.Settings.SetAppPrivateKey(secret); err != nil {
		log.WithField("error", err).Error("failed to store app private key")
		return err
	}
	if err := a.save(); err != nil {
		return fmt.Errorf("app private key stored but settings not saved: %w", err)
	}
	return nil
}

// DismissAppKeyNotification stops the missing-key warning from showing again
func (a *App) DismissAppKeyNotification() error {
	a.Settings.SetDisableAppKeyNotification(true)
	return a.save()
}

// save persists an explicit user change. A successful save means the store
// now owns the file again, so shutdown may save too.
func (a *App) save() error {
	if err := a.Settings.Save(a.ctx); err != nil {
		return err
	}
	a.loadFailed = false
	return nil
}
