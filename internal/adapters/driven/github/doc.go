// Package github implements driven.CodeSearcher on the GitHub REST API.
//
// # Architecture
//
//   - Searcher: issues code search requests through go-github
//   - RateLimiter: proactive and reactive throttling for the search quota
//   - Config: token and endpoint resolution
//
// # Authentication
//
// Code search requires an authenticated request. The token is read from
// GITHUB_TOKEN, falling back to GH_TOKEN, and sent as a bearer credential
// through an oauth2 static token source.
//
// # Rate Limiting
//
// The search API allows 30 authenticated requests per minute, tracked
// separately from the core 5,000/hour quota. The searcher throttles
// proactively with a token bucket and backs off when the response headers
// report the quota is nearly spent.
//
// # Pagination
//
// Each response carries a Link header with prev/next/first/last relations.
// It is parsed into a domain.Pagination so the caller can decide whether
// to request the next page.
package github
