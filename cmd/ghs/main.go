// Command ghs is an interactive client for GitHub code search.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/custodia-labs/ghs/internal/adapters/driven/config/file"
	"github.com/custodia-labs/ghs/internal/adapters/driven/github"
	"github.com/custodia-labs/ghs/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/ghs/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/ghs/internal/adapters/driving/cli"
	"github.com/custodia-labs/ghs/internal/core/domain"
	"github.com/custodia-labs/ghs/internal/core/ports/driven"
	"github.com/custodia-labs/ghs/internal/core/services"
	"github.com/custodia-labs/ghs/internal/logger"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli.SetVersion(version)
	cli.SetBootstrap(bootstrap)

	if err := cli.Execute(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "ghs: %v\n", err)
		stop()
		os.Exit(1)
	}
}

// bootstrap wires adapters into the core services.
func bootstrap(_ context.Context, opts cli.Options) (*cli.Services, func(), error) {
	var closers []func() error
	release := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i](); err != nil {
				logger.Debug("release: %v", err)
			}
		}
	}

	configStore, err := file.NewConfigStore(opts.ConfigDir)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore)
	settings := settingsService.Get()

	historyStore, err := file.NewHistoryStore(opts.ConfigDir)
	if err != nil {
		return nil, nil, fmt.Errorf("opening history: %w", err)
	}

	var searchErr error
	var searcher driven.CodeSearcher
	gh, err := github.NewSearcher(github.ConfigFromSettings(settings))
	switch {
	case errors.Is(err, domain.ErrAuthRequired):
		searchErr = fmt.Errorf("%w: set %s or %s", err, github.EnvToken, github.EnvGHToken)
	case err != nil:
		return nil, nil, fmt.Errorf("configuring GitHub client: %w", err)
	default:
		searcher = gh
	}

	cache := openCache(settings, opts.NoCache, &closers)

	var changes <-chan struct{}
	if watcher, err := file.NewWatcher(configStore.Path()); err != nil {
		logger.Warn("Config changes will not be picked up: %v", err)
	} else {
		closers = append(closers, watcher.Close)
		changes = watcher.Changes()
	}

	return &cli.Services{
		Search:        services.NewSearchService(searcher, cache),
		History:       services.NewHistoryService(historyStore),
		Settings:      settingsService,
		ResultAction:  services.NewResultActionService(),
		SearchErr:     searchErr,
		ConfigChanges: changes,
	}, release, nil
}

// openCache returns the page cache, falling back to memory when the
// database cannot be opened. It returns nil when caching is off.
func openCache(settings domain.AppSettings, noCache bool, closers *[]func() error) driven.PageCache {
	if noCache || !settings.Cache.Enabled {
		return nil
	}

	store, err := sqlite.NewStore("", settings.Cache.TTL)
	if err != nil {
		logger.Warn("Page cache unavailable, using memory: %v", err)
		mem := memory.NewPageCache(settings.Cache.TTL)
		*closers = append(*closers, mem.Close)
		return mem
	}
	*closers = append(*closers, store.Close)
	return store.PageCache()
}
