package repositories

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"unicode/utf8"

	"glossa/internal/models"
)

const settingsComponentName = "TranslationSettings"

const (
	optionAppID                     = "appId"
	optionPrivateKeyConfigured      = "privateKeyConfigured"
	optionOverrideFont              = "overrideFont"
	optionPrimaryFontFamily         = "primaryFontFamily"
	optionPhoneticFontFamily        = "phoneticFontFamily"
	optionDisableAppKeyNotification = "disableAppKeyNotification"
	optionAutoSelectionMode         = "autoSelectionMode"
)

type xmlApplication struct {
	XMLName    xml.Name       `xml:"application"`
	Components []xmlComponent `xml:"component"`
}

type xmlComponent struct {
	Name    string      `xml:"name,attr"`
	Options []xmlOption `xml:"option"`
}

type xmlOption struct {
	XMLName xml.Name `xml:"option"`
	Name    string   `xml:"name,attr"`
	Value   string   `xml:"value,attr"`
}

// xmlSettingsRepository keeps the settings record in a host-style XML config file.
// Only non-default values are written; absent options read back as defaults.
type xmlSettingsRepository struct {
	path string
	mu   sync.Mutex
}

func NewXMLSettingsRepository(path string) TranslationSettingsRepository {
	return &xmlSettingsRepository{path: path}
}

func (r *xmlSettingsRepository) Get(ctx context.Context) (*models.TranslationSettings, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	settings := models.DefaultTranslationSettings()

	data, err := os.ReadFile(r.path)
	if errors.Is(err, os.ErrNotExist) {
		return &settings, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read settings file: %w", err)
	}

	var doc xmlApplication
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse settings file %s: %w", r.path, err)
	}

	for _, component := range doc.Components {
		if component.Name != settingsComponentName {
			continue
		}
		for _, opt := range component.Options {
			if err := applyOption(&settings, opt); err != nil {
				return nil, err
			}
		}
	}
	return &settings, nil
}

// Update replaces the TranslationSettings component and keeps every other
// component of the file as it was.
func (r *xmlSettingsRepository) Update(ctx context.Context, settings *models.TranslationSettings) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if settings == nil {
		return errors.New("settings are required")
	}

	opts := toOptions(settings)
	if err := validateOptions(opts); err != nil {
		return err
	}
	inner, err := encodeOptions(opts)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.readRaw()
	if err != nil {
		return err
	}

	ours := rawElement{
		XMLName: xml.Name{Local: "component"},
		Attrs:   []xml.Attr{{Name: xml.Name{Local: "name"}, Value: settingsComponentName}},
		Inner:   inner,
	}
	replaced := false
	for i, el := range doc.Children {
		if el.XMLName.Local == "component" && el.attr("name") == settingsComponentName {
			doc.Children[i] = ours
			replaced = true
			break
		}
	}
	if !replaced {
		doc.Children = append(doc.Children, ours)
	}

	data, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(r.path), 0755); err != nil {
		return fmt.Errorf("create settings dir: %w", err)
	}
	return os.WriteFile(r.path, append([]byte(xml.Header), data...), 0644)
}

// rawApplication mirrors the file loosely so unknown components survive a save.
type rawApplication struct {
	XMLName  xml.Name     `xml:"application"`
	Attrs    []xml.Attr   `xml:",any,attr"`
	Children []rawElement `xml:",any"`
}

type rawElement struct {
	XMLName xml.Name
	Attrs   []xml.Attr `xml:",any,attr"`
	Inner   string     `xml:",innerxml"`
}

func (e rawElement) attr(name string) string {
	for _, a := range e.Attrs {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

// readRaw loads the current document. A file that is not XML at all is moved
// to <path>.bak so the save does not destroy it.
func (r *xmlSettingsRepository) readRaw() (*rawApplication, error) {
	doc := &rawApplication{}

	data, err := os.ReadFile(r.path)
	if errors.Is(err, os.ErrNotExist) {
		return doc, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read settings file: %w", err)
	}

	if err := xml.Unmarshal(data, doc); err != nil {
		if err := os.Rename(r.path, r.path+".bak"); err != nil {
			return nil, fmt.Errorf("back up unreadable settings file: %w", err)
		}
		return &rawApplication{}, nil
	}
	return doc, nil
}

func encodeOptions(opts []xmlOption) (string, error) {
	if len(opts) == 0 {
		return "", nil
	}
	data, err := xml.MarshalIndent(opts, "    ", "  ")
	if err != nil {
		return "", fmt.Errorf("encode settings: %w", err)
	}
	return "\n" + string(data) + "\n  ", nil
}

// validateOptions rejects values encoding/xml would silently rewrite.
func validateOptions(opts []xmlOption) error {
	for _, opt := range opts {
		if !utf8.ValidString(opt.Value) {
			return fmt.Errorf("option %s: value is not valid UTF-8", opt.Name)
		}
		for _, r := range opt.Value {
			if !isXMLChar(r) {
				return fmt.Errorf("option %s: character %U is not allowed in XML", opt.Name, r)
			}
		}
	}
	return nil
}

// isXMLChar reports whether r is in the XML 1.0 Char production.
func isXMLChar(r rune) bool {
	return r == 0x09 || r == 0x0A || r == 0x0D ||
		r >= 0x20 && r <= 0xD7FF ||
		r >= 0xE000 && r <= 0xFFFD ||
		r >= 0x10000 && r <= 0x10FFFF
}

func applyOption(settings *models.TranslationSettings, opt xmlOption) error {
	var err error
	switch opt.Name {
	case optionAppID:
		settings.AppID = opt.Value
	case optionPrimaryFontFamily:
		settings.PrimaryFontFamily = opt.Value
	case optionPhoneticFontFamily:
		settings.PhoneticFontFamily = opt.Value
	case optionPrivateKeyConfigured:
		settings.PrivateKeyConfigured, err = strconv.ParseBool(opt.Value)
	case optionOverrideFont:
		settings.OverrideFont, err = strconv.ParseBool(opt.Value)
	case optionDisableAppKeyNotification:
		settings.DisableAppKeyNotification, err = strconv.ParseBool(opt.Value)
	case optionAutoSelectionMode:
		settings.AutoSelectionMode, err = models.ParseAutoSelectionMode(opt.Value)
	}
	if err != nil {
		return fmt.Errorf("option %s: %w", opt.Name, err)
	}
	return nil
}

func toOptions(settings *models.TranslationSettings) []xmlOption {
	var opts []xmlOption
	addString := func(name, value string) {
		if value != "" {
			opts = append(opts, xmlOption{Name: name, Value: value})
		}
	}
	addBool := func(name string, value bool) {
		if value {
			opts = append(opts, xmlOption{Name: name, Value: "true"})
		}
	}

	addString(optionAppID, settings.AppID)
	addBool(optionPrivateKeyConfigured, settings.PrivateKeyConfigured)
	addBool(optionOverrideFont, settings.OverrideFont)
	addString(optionPrimaryFontFamily, settings.PrimaryFontFamily)
	addString(optionPhoneticFontFamily, settings.PhoneticFontFamily)
	addBool(optionDisableAppKeyNotification, settings.DisableAppKeyNotification)
	if settings.AutoSelectionMode != "" && settings.AutoSelectionMode != models.AutoSelectionInclusive {
		opts = append(opts, xmlOption{Name: optionAutoSelectionMode, Value: string(settings.AutoSelectionMode)})
	}
	return opts
}
