// Package services implements the driving ports on top of the driven ports.
//
// Services hold no UI state. The TUI event loop owns search state and
// history ordering; services only fetch, cache, persist and act on URLs.
package services
