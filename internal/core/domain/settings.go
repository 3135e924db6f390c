package domain

import "time"

// Default setting values.
const (
	// DefaultAPIURL is the public GitHub REST API endpoint.
	DefaultAPIURL = "https://api.github.com/"

	// DefaultPerPage is the page size requested from the search API.
	DefaultPerPage = 30

	// MaxPerPage is the largest page size the search API accepts.
	MaxPerPage = 100

	// DefaultCacheTTL is how long fetched pages stay fresh in the cache.
	DefaultCacheTTL = 10 * time.Minute

	// DefaultTabWidth is the number of spaces a tab expands to in fragments.
	DefaultTabWidth = 4
)

// ThemeSlots are the colour names recognised in UISettings.Colours.
var ThemeSlots = []string{"accent", "match", "selected", "muted", "border", "error"}

// DefaultSpinnerFrames returns the loading animation frames.
func DefaultSpinnerFrames() []string {
	return []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
}

// AppSettings holds the user-configurable behaviour of ghs.
type AppSettings struct {
	GitHub GitHubSettings
	Cache  CacheSettings
	UI     UISettings
}

// GitHubSettings configures the code search backend.
type GitHubSettings struct {
	// APIURL is the REST API base URL, used for GitHub Enterprise installs.
	APIURL string

	// PerPage is the number of items requested per page.
	PerPage int
}

// CacheSettings configures the page cache.
type CacheSettings struct {
	Enabled bool
	TTL     time.Duration
}

// UISettings configures the terminal interface.
type UISettings struct {
	TabWidth      int
	SpinnerFrames []string

	// Colours maps theme slot names ("match", "accent", ...) to lipgloss
	// colour strings. Missing slots keep their default colour.
	Colours map[string]string
}

// DefaultAppSettings returns settings suitable for github.com.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		GitHub: GitHubSettings{
			APIURL:  DefaultAPIURL,
			PerPage: DefaultPerPage,
		},
		Cache: CacheSettings{
			Enabled: true,
			TTL:     DefaultCacheTTL,
		},
		UI: UISettings{
			TabWidth:      DefaultTabWidth,
			SpinnerFrames: DefaultSpinnerFrames(),
		},
	}
}

// Normalise clamps out-of-range values back to their defaults.
func (s AppSettings) Normalise() AppSettings {
	if s.GitHub.APIURL == "" {
		s.GitHub.APIURL = DefaultAPIURL
	}
	if s.GitHub.PerPage <= 0 || s.GitHub.PerPage > MaxPerPage {
		s.GitHub.PerPage = DefaultPerPage
	}
	if s.Cache.TTL <= 0 {
		s.Cache.TTL = DefaultCacheTTL
	}
	if s.UI.TabWidth <= 0 {
		s.UI.TabWidth = DefaultTabWidth
	}
	if len(s.UI.SpinnerFrames) == 0 {
		s.UI.SpinnerFrames = DefaultSpinnerFrames()
	}
	return s
}
