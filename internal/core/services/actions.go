package services

import (
	"context"
	"fmt"
	"net/url"
	"os/exec"
	"runtime"

	"github.com/atotto/clipboard"

	"github.com/custodia-labs/ghs/internal/core/domain"
	"github.com/custodia-labs/ghs/internal/core/ports/driving"
)

// Operating system identifiers.
const (
	osDarwin  = "darwin"
	osLinux   = "linux"
	osWindows = "windows"
)

// Ensure ResultActionService implements the interface.
var _ driving.ResultActionService = (*ResultActionService)(nil)

// ResultActionService opens and copies result URLs.
type ResultActionService struct {
	open func(string) error
	copy func(string) error
}

// NewResultActionService creates a result action service using the
// platform browser and clipboard.
func NewResultActionService() *ResultActionService {
	return &ResultActionService{
		open: openURL,
		copy: clipboard.WriteAll,
	}
}

// OpenURL opens the URL in the default browser.
func (s *ResultActionService) OpenURL(_ context.Context, rawURL string) error {
	if err := validateURL(rawURL); err != nil {
		return err
	}
	return s.open(rawURL)
}

// CopyURL copies the URL to the system clipboard.
func (s *ResultActionService) CopyURL(_ context.Context, rawURL string) error {
	if err := validateURL(rawURL); err != nil {
		return err
	}
	if err := s.copy(rawURL); err != nil {
		return fmt.Errorf("copy to clipboard: %w", err)
	}
	return nil
}

// validateURL only accepts absolute http(s) URLs so that nothing else is
// handed to the platform opener.
func validateURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" || (u.Scheme != "https" && u.Scheme != "http") {
		return fmt.Errorf("%w: not a web URL: %q", domain.ErrInvalidInput, rawURL)
	}
	return nil
}

// openURL opens a URL in the default browser.
func openURL(rawURL string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case osDarwin:
		cmd = exec.Command("open", rawURL)
	case osLinux:
		cmd = exec.Command("xdg-open", rawURL)
	case osWindows:
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", rawURL)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	return cmd.Start()
}
