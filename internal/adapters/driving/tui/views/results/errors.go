package results

import "errors"

// Error definitions for the results view.
var (
	// ErrNoSearchService indicates that no search service was provided.
	ErrNoSearchService = errors.New("search service is required")

	// ErrNoActionService indicates that no result action service was provided.
	ErrNoActionService = errors.New("result actions are not available")
)
