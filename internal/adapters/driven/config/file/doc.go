// Package file provides file-based implementations of driven port interfaces.
// These adapters persist data under the per-user config directory,
// e.g. ~/.config/ghs on Linux.
//
// Adapters:
//   - ConfigStore: TOML-based configuration storage
//   - HistoryStore: JSON array of past queries
//   - Watcher: fsnotify-based change notifications for the config file
package file
