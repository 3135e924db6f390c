package services

import (
	"fmt"
	"time"

	"github.com/custodia-labs/ghs/internal/core/domain"
	"github.com/custodia-labs/ghs/internal/core/ports/driven"
	"github.com/custodia-labs/ghs/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	KeyAPIURL       = "github.api_url"
	KeyPerPage      = "github.per_page"
	KeyCacheEnabled = "cache.enabled"
	KeyCacheTTL     = "cache.ttl_minutes"

	KeyTabWidth      = "ui.tab_width"
	KeySpinnerFrames = "ui.spinner_frames"

	// KeyThemePrefix prefixes each of domain.ThemeSlots, e.g. "theme.match".
	KeyThemePrefix = "theme."
)

// SettingsService reads application settings from the config store.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get returns the current settings. Missing or out-of-range values fall
// back to their defaults.
func (s *SettingsService) Get() domain.AppSettings {
	settings := domain.DefaultAppSettings()
	if s.configStore == nil {
		return settings
	}

	if v := s.configStore.GetString(KeyAPIURL); v != "" {
		settings.GitHub.APIURL = v
	}
	if v := s.configStore.GetInt(KeyPerPage); v != 0 {
		settings.GitHub.PerPage = v
	}
	if _, ok := s.configStore.Get(KeyCacheEnabled); ok {
		settings.Cache.Enabled = s.configStore.GetBool(KeyCacheEnabled)
	}
	if v := s.configStore.GetInt(KeyCacheTTL); v != 0 {
		settings.Cache.TTL = time.Duration(v) * time.Minute
	}
	if v := s.configStore.GetInt(KeyTabWidth); v != 0 {
		settings.UI.TabWidth = v
	}
	if v := s.configStore.GetStringSlice(KeySpinnerFrames); len(v) > 0 {
		settings.UI.SpinnerFrames = v
	}
	for _, slot := range domain.ThemeSlots {
		v := s.configStore.GetString(KeyThemePrefix + slot)
		if v == "" {
			continue
		}
		if settings.UI.Colours == nil {
			settings.UI.Colours = make(map[string]string)
		}
		settings.UI.Colours[slot] = v
	}

	return settings.Normalise()
}

// Set stores a single configuration key.
func (s *SettingsService) Set(key string, value any) error {
	if s.configStore == nil {
		return domain.ErrInvalidInput
	}
	return s.configStore.Set(key, value)
}

// Reload re-reads the configuration from storage.
func (s *SettingsService) Reload() error {
	if s.configStore == nil {
		return nil
	}
	if err := s.configStore.Load(); err != nil {
		return fmt.Errorf("reload settings: %w", err)
	}
	return nil
}

// Path returns the configuration file path.
func (s *SettingsService) Path() string {
	if s.configStore == nil {
		return ""
	}
	return s.configStore.Path()
}
