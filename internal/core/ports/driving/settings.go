package driving

import "github.com/custodia-labs/ghs/internal/core/domain"

// SettingsService reads application settings from configuration.
type SettingsService interface {
	// Get returns the current settings with defaults applied.
	Get() domain.AppSettings

	// Set stores a single configuration key.
	Set(key string, value any) error

	// Reload re-reads the configuration from storage.
	Reload() error

	// Path returns the configuration file path.
	Path() string
}
