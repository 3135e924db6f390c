// Package cli provides the cobra command tree for ghs.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ghs/internal/core/ports/driving"
	"github.com/custodia-labs/ghs/internal/logger"
)

// EnvLogFile overrides the default TUI log file location.
const EnvLogFile = "GHS_LOG"

// skipServices marks commands that run without bootstrapping services.
const skipServices = "skip-services"

// version is set at build time via SetVersion.
var version = "dev"

// Services holds the core services the commands operate on.
type Services struct {
	Search       driving.SearchService
	History      driving.HistoryService
	Settings     driving.SettingsService
	ResultAction driving.ResultActionService

	// SearchErr explains why searching is unavailable, e.g. a missing
	// token. Search may still be set so that its cache can be managed.
	SearchErr error

	// ConfigChanges fires when the config file is rewritten. May be nil.
	ConfigChanges <-chan struct{}
}

// Options carries the global flags to a BootstrapFunc.
type Options struct {
	ConfigDir string
	NoCache   bool
}

// BootstrapFunc builds services once flags are parsed. The returned
// cleanup func releases stores and watchers and may be nil.
type BootstrapFunc func(ctx context.Context, opts Options) (*Services, func(), error)

var (
	searchService       driving.SearchService
	historyService      driving.HistoryService
	settingsService     driving.SettingsService
	resultActionService driving.ResultActionService
	searchErr           error
	configChanges       <-chan struct{}

	bootstrap BootstrapFunc
	cleanup   func()
)

// Global flags.
var (
	verbose   bool
	logFile   string
	configDir string
	noCache   bool
)

var rootCmd = &cobra.Command{
	Use:   "ghs [query]",
	Short: "Search GitHub code from the terminal",
	Long: `ghs is an interactive client for GitHub code search.

Run without a subcommand to open the terminal UI. An optional query is
submitted immediately. A token must be provided in GITHUB_TOKEN or GH_TOKEN.`,
	Args:              cobra.MaximumNArgs(1),
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	RunE:              runTUI,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	flags.StringVar(&logFile, "log-file", "",
		"TUI log file (default $"+EnvLogFile+" or <user cache dir>/ghs/ghs.log)")
	flags.StringVar(&configDir, "config", "", "config directory (default <user config dir>/ghs)")
	flags.BoolVar(&noCache, "no-cache", false, "bypass the page cache")
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// SetBootstrap registers the function that builds services after flag parsing.
func SetBootstrap(fn BootstrapFunc) {
	bootstrap = fn
}

// SetServices installs the services used by all commands.
func SetServices(s *Services) {
	if s == nil {
		s = &Services{}
	}
	searchService = s.Search
	historyService = s.History
	settingsService = s.Settings
	resultActionService = s.ResultAction
	searchErr = s.SearchErr
	configChanges = s.ConfigChanges
}

// Execute runs the root command and releases bootstrapped resources.
func Execute(ctx context.Context) error {
	defer func() {
		if cleanup != nil {
			cleanup()
			cleanup = nil
		}
	}()
	return rootCmd.ExecuteContext(ctx)
}

func setup(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	if bootstrap == nil || cmd.Annotations[skipServices] != "" {
		return nil
	}

	services, release, err := bootstrap(cmd.Context(), Options{
		ConfigDir: configDir,
		NoCache:   noCache,
	})
	if err != nil {
		return fmt.Errorf("initialising: %w", err)
	}
	SetServices(services)
	cleanup = release
	return nil
}

// requireSearch returns the search service or the reason it is missing.
func requireSearch() (driving.SearchService, error) {
	if searchErr != nil {
		return nil, searchErr
	}
	if searchService == nil {
		return nil, errors.New("search service not configured")
	}
	return searchService, nil
}

// logPath resolves where the TUI writes its log.
func logPath() (string, error) {
	if logFile != "" {
		return logFile, nil
	}
	if v := os.Getenv(EnvLogFile); v != "" {
		return v, nil
	}
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("getting cache directory: %w", err)
	}
	return filepath.Join(dir, "ghs", "ghs.log"), nil
}
