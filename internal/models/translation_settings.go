package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// AutoSelectionMode controls how text under the caret is picked up for translation.
type AutoSelectionMode string

const (
	AutoSelectionInclusive AutoSelectionMode = "INCLUSIVE"
	AutoSelectionExclusive AutoSelectionMode = "EXCLUSIVE"
)

var ErrInvalidAutoSelectionMode = errors.New("invalid auto selection mode")

func (m AutoSelectionMode) Valid() bool {
	return m == AutoSelectionInclusive || m == AutoSelectionExclusive
}

// ParseAutoSelectionMode accepts the mode names case-insensitively.
func ParseAutoSelectionMode(s string) (AutoSelectionMode, error) {
	mode := AutoSelectionMode(strings.ToUpper(strings.TrimSpace(s)))
	if !mode.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidAutoSelectionMode, s)
	}
	return mode, nil
}

// TranslationSettings is the persisted plugin settings record.
// The app private key lives in the secret vault, never here.
type TranslationSettings struct {
	ID                        uint              `gorm:"primaryKey" json:"-"` // single-row table (ID=1)
	Version                   int               `gorm:"not null;default:1" json:"-"`
	AppID                     string            `gorm:"not null;default:''" json:"appId"`
	PrivateKeyConfigured      bool              `gorm:"not null;default:false" json:"privateKeyConfigured"`
	OverrideFont              bool              `gorm:"not null;default:false" json:"overrideFont"`
	PrimaryFontFamily         string            `gorm:"not null;default:''" json:"primaryFontFamily"`
	PhoneticFontFamily        string            `gorm:"not null;default:''" json:"phoneticFontFamily"`
	DisableAppKeyNotification bool              `gorm:"not null;default:false" json:"disableAppKeyNotification"`
	AutoSelectionMode         AutoSelectionMode `gorm:"size:16;not null;default:INCLUSIVE" json:"autoSelectionMode"`
	UpdatedAt                 time.Time         `json:"updatedAt"`
}

func DefaultTranslationSettings() TranslationSettings {
	return TranslationSettings{
		ID:                1,
		Version:           1,
		AutoSelectionMode: AutoSelectionInclusive,
	}
}
