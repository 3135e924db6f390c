// Package domain defines the core business entities for ghs.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Query: A code search request (text plus optional page)
//   - CodeResults: The items and text matches returned for a query
//   - Pagination: Link relations describing the available result pages
//   - History: Previously submitted queries, most recent first
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
