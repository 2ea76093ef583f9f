package events

import (
	"time"

	"github.com/google/uuid"

	"glossa/internal/models"
)

type EventType string

const (
	EventInfo  EventType = "info"
	EventWarn  EventType = "warn"
	EventError EventType = "error"
)

const (
	SettingsFontChanged   = "events:settings:font"
	SettingsAppKeyMissing = "events:settings:appkey"
)

// SettingsEvent is the payload sent to the frontend when translation settings change.
type SettingsEvent struct {
	ID        string                     `json:"id"`
	Type      EventType                  `json:"type"`
	Message   string                     `json:"message"`
	Timestamp time.Time                  `json:"timestamp"`
	Settings  models.TranslationSettings `json:"settings"`
}

func CreateSettingsEvent(eventType EventType, message string, settings models.TranslationSettings) SettingsEvent {
	return SettingsEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Message:   message,
		Timestamp: time.Now(),
		Settings:  settings,
	}
}

// NewFontChanged creates the info event published after a font override change.
func NewFontChanged(settings models.TranslationSettings) SettingsEvent {
	return CreateSettingsEvent(EventInfo, "font override changed", settings)
}

// NewAppKeyMissing creates the warning shown once per start while no app key is configured.
func NewAppKeyMissing(settings models.TranslationSettings) SettingsEvent {
	return CreateSettingsEvent(EventWarn, "translation app key is not configured", settings)
}
