// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - CodeSearcher: Remote code search (GitHub REST API)
//   - HistoryStore: Search history persistence (JSON file)
//   - ConfigStore: Application configuration (TOML file)
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - PageCache: Fetched page cache (SQLite). Without it every page is fetched.
//   - ConfigWatcher: Config change notifications. Without it theme edits need a restart.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
