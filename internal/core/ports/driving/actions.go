package driving

import "context"

// ResultActionService provides actions on search result URLs.
// This is used by TUI and CLI adapters.
type ResultActionService interface {
	// OpenURL opens the URL in the default browser.
	OpenURL(ctx context.Context, url string) error

	// CopyURL copies the URL to the system clipboard.
	CopyURL(ctx context.Context, url string) error
}
