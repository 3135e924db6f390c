package github

import (
	"os"
	"strings"

	"github.com/custodia-labs/ghs/internal/core/domain"
)

// Environment variables consulted for the API token, in order.
const (
	EnvToken   = "GITHUB_TOKEN"
	EnvGHToken = "GH_TOKEN"
)

// Config holds the settings needed to reach the search API.
type Config struct {
	// Token is the bearer credential. Required.
	Token string

	// APIURL is the REST base URL. Default: https://api.github.com/
	APIURL string

	// PerPage is the number of items per page. Default: 30
	PerPage int
}

// ConfigFromSettings builds a Config from application settings and the
// token found in the environment.
func ConfigFromSettings(settings domain.AppSettings) Config {
	return Config{
		Token:   TokenFromEnv(),
		APIURL:  settings.GitHub.APIURL,
		PerPage: settings.GitHub.PerPage,
	}
}

// TokenFromEnv returns the first non-empty token variable.
func TokenFromEnv() string {
	for _, name := range []string{EnvToken, EnvGHToken} {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			return v
		}
	}
	return ""
}

// Validate checks that the config can be used to build a searcher.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Token) == "" {
		return domain.ErrAuthRequired
	}
	return nil
}
