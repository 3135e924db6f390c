// Package memory provides in-process implementations of the driven ports.
//
// They back the --no-cache mode and stand in for the file and SQLite
// adapters in tests.
package memory
