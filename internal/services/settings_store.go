package services

import (
	"context"
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"

	"glossa/internal/models"
	"glossa/internal/repositories"
)

// AppPrivateKeyName is the vault entry holding the translation app private key.
const AppPrivateKeyName = "app-private-key"

// FontChangeListener receives a snapshot of the settings after a font-related change.
type FontChangeListener func(settings models.TranslationSettings)

type SettingsStore interface {
	Load(ctx context.Context) error
	Save(ctx context.Context) error

	State() models.TranslationSettings
	LoadState(state models.TranslationSettings)

	AppID() string
	SetAppID(appID string)
	AppPrivateKey() (string, error)
	AppPrivateKeyOrEmpty() string
	SetAppPrivateKey(secret string) error
	PrivateKeyConfigured() bool
	SetPrivateKeyConfigured(configured bool)
	DisableAppKeyNotification() bool
	SetDisableAppKeyNotification(disable bool)

	OverrideFont() bool
	SetOverrideFont(overrideFont bool)
	PrimaryFontFamily() string
	SetPrimaryFontFamily(family string)
	PhoneticFontFamily() string
	SetPhoneticFontFamily(family string)

	AutoSelectionMode() models.AutoSelectionMode
	SetAutoSelectionMode(mode models.AutoSelectionMode) error

	OnFontChanged(listener FontChangeListener) (unsubscribe func())
	String() string
}

type settingsStore struct {
	repo   repositories.TranslationSettingsRepository
	vault  SecretVault
	logger *log.Logger

	mu       sync.RWMutex
	settings models.TranslationSettings

	listenersMu sync.Mutex
	listeners   []*listenerEntry
}

type listenerEntry struct {
	fn FontChangeListener
}

// NewSettingsStore returns a store holding default settings until Load or LoadState is called.
func NewSettingsStore(repo repositories.TranslationSettingsRepository, vault SecretVault, logger *log.Logger) SettingsStore {
	if logger == nil {
		logger = log.New()
	}
	return &settingsStore{
		repo:     repo,
		vault:    vault,
		logger:   logger,
		settings: models.DefaultTranslationSettings(),
	}
}

func (s *settingsStore) Load(ctx context.Context) error {
	state, err := s.repo.Get(ctx)
	if err != nil {
		return fmt.Errorf("load translation settings: %w", err)
	}
	s.LoadState(*state)
	s.logger.WithFields(log.Fields{"settings": s.String()}).Debug("translation settings loaded")
	return nil
}

func (s *settingsStore) Save(ctx context.Context) error {
	state := s.State()
	if err := s.repo.Update(ctx, &state); err != nil {
		return fmt.Errorf("save translation settings: %w", err)
	}
	return nil
}

func (s *settingsStore) State() models.TranslationSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// LoadState overwrites every field with state. No listeners are notified.
func (s *settingsStore) LoadState(state models.TranslationSettings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = state
}

func (s *settingsStore) AppID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings.AppID
}

func (s *settingsStore) SetAppID(appID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings.AppID = appID
}

func (s *settingsStore) AppPrivateKey() (string, error) {
	secret, err := s.vault.Get(AppPrivateKeyName)
	if err != nil {
		return "", &VaultError{Op: "get", Key: AppPrivateKeyName, Err: err}
	}
	return secret, nil
}

// AppPrivateKeyOrEmpty is AppPrivateKey for callers that treat an unreadable vault as "not set".
func (s *settingsStore) AppPrivateKeyOrEmpty() string {
	secret, err := s.AppPrivateKey()
	if err != nil {
		s.logger.
			WithFields(log.Fields{"error": err, "key": AppPrivateKeyName}).
			Info("couldn't get app private key")
		return ""
	}
	return secret
}

// SetAppPrivateKey writes secret to the vault, or removes the entry when secret is empty.
// PrivateKeyConfigured only changes once the vault accepted the write.
func (s *settingsStore) SetAppPrivateKey(secret string) error {
	if secret == "" {
		if err := s.vault.Delete(AppPrivateKeyName); err != nil {
			return &VaultError{Op: "delete", Key: AppPrivateKeyName, Err: err}
		}
	} else if err := s.vault.Set(AppPrivateKeyName, secret); err != nil {
		return &VaultError{Op: "set", Key: AppPrivateKeyName, Err: err}
	}

	s.SetPrivateKeyConfigured(secret != "")
	return nil
}

func (s *settingsStore) PrivateKeyConfigured() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings.PrivateKeyConfigured
}

func (s *settingsStore) SetPrivateKeyConfigured(configured bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings.PrivateKeyConfigured = configured
}

func (s *settingsStore) DisableAppKeyNotification() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings.DisableAppKeyNotification
}

func (s *settingsStore) SetDisableAppKeyNotification(disable bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings.DisableAppKeyNotification = disable
}

func (s *settingsStore) OverrideFont() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings.OverrideFont
}

func (s *settingsStore) SetOverrideFont(overrideFont bool) {
	s.updateFont(func(settings *models.TranslationSettings) bool {
		if settings.OverrideFont == overrideFont {
			return false
		}
		settings.OverrideFont = overrideFont
		return true
	})
}

func (s *settingsStore) PrimaryFontFamily() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings.PrimaryFontFamily
}

func (s *settingsStore) SetPrimaryFontFamily(family string) {
	s.updateFont(func(settings *models.TranslationSettings) bool {
		if settings.PrimaryFontFamily == family {
			return false
		}
		settings.PrimaryFontFamily = family
		return true
	})
}

func (s *settingsStore) PhoneticFontFamily() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings.PhoneticFontFamily
}

func (s *settingsStore) SetPhoneticFontFamily(family string) {
	s.updateFont(func(settings *models.TranslationSettings) bool {
		if settings.PhoneticFontFamily == family {
			return false
		}
		settings.PhoneticFontFamily = family
		return true
	})
}

func (s *settingsStore) AutoSelectionMode() models.AutoSelectionMode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings.AutoSelectionMode
}

func (s *settingsStore) SetAutoSelectionMode(mode models.AutoSelectionMode) error {
	if !mode.Valid() {
		return fmt.Errorf("%w: %q", models.ErrInvalidAutoSelectionMode, mode)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings.AutoSelectionMode = mode
	return nil
}

// OnFontChanged registers listener for font override and font family changes.
// Listeners run synchronously on the mutating goroutine, in registration order.
func (s *settingsStore) OnFontChanged(listener FontChangeListener) func() {
	entry := &listenerEntry{fn: listener}

	s.listenersMu.Lock()
	s.listeners = append(s.listeners, entry)
	s.listenersMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.listenersMu.Lock()
			defer s.listenersMu.Unlock()
			for i, e := range s.listeners {
				if e == entry {
					s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
					return
				}
			}
		})
	}
}

func (s *settingsStore) String() string {
	state := s.State()
	return fmt.Sprintf(
		"TranslationSettings{appId=%q, privateKeyConfigured=%t, overrideFont=%t, primaryFontFamily=%q, phoneticFontFamily=%q, disableAppKeyNotification=%t, autoSelectionMode=%s}",
		state.AppID,
		state.PrivateKeyConfigured,
		state.OverrideFont,
		state.PrimaryFontFamily,
		state.PhoneticFontFamily,
		state.DisableAppKeyNotification,
		state.AutoSelectionMode,
	)
}

// updateFont applies mutate under the write lock and notifies listeners if it reported a change.
func (s *settingsStore) updateFont(mutate func(settings *models.TranslationSettings) bool) {
	s.mu.Lock()
	changed := mutate(&s.settings)
	snapshot := s.settings
	s.mu.Unlock()

	if changed {
		s.publishFontChanged(snapshot)
	}
}

func (s *settingsStore) publishFontChanged(snapshot models.TranslationSettings) {
	s.listenersMu.Lock()
	listeners := make([]*listenerEntry, len(s.listeners))
	copy(listeners, s.listeners)
	s.listenersMu.Unlock()

	for _, l := range listeners {
		l.fn(snapshot)
	}
}
