package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	gh "github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"

	"github.com/custodia-labs/ghs/internal/core/domain"
	"github.com/custodia-labs/ghs/internal/core/ports/driven"
	"github.com/custodia-labs/ghs/internal/logger"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// headerLink carries the pagination relations of a response.
const headerLink = "Link"

// Ensure Searcher implements the interface.
var _ driven.CodeSearcher = (*Searcher)(nil)

// Searcher runs code searches against the GitHub REST API.
type Searcher struct {
	gh          *gh.Client
	perPage     int
	rateLimiter *RateLimiter
}

// NewSearcher creates a searcher authenticated with cfg.Token.
func NewSearcher(cfg Config) (*Searcher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token})
	tc := oauth2.NewClient(context.Background(), ts)
	tc.Timeout = DefaultTimeout

	return newSearcher(tc, cfg)
}

// NewSearcherWithHTTPClient creates a searcher that sends requests through
// httpClient as-is. The client is responsible for authentication.
func NewSearcherWithHTTPClient(httpClient *http.Client, cfg Config) (*Searcher, error) {
	return newSearcher(httpClient, cfg)
}

func newSearcher(httpClient *http.Client, cfg Config) (*Searcher, error) {
	client := gh.NewClient(httpClient)

	if cfg.APIURL != "" && cfg.APIURL != domain.DefaultAPIURL {
		base, err := baseURL(cfg.APIURL)
		if err != nil {
			return nil, err
		}
		client.BaseURL = base
	}

	perPage := cfg.PerPage
	if perPage <= 0 || perPage > domain.MaxPerPage {
		perPage = domain.DefaultPerPage
	}

	return &Searcher{
		gh:          client,
		perPage:     perPage,
		rateLimiter: NewRateLimiter(),
	}, nil
}

// baseURL parses an API root, adding the trailing slash go-github requires.
func baseURL(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return nil, fmt.Errorf("%w: invalid API URL %q", domain.ErrInvalidInput, raw)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u, nil
}

// Search fetches one page of code search results with text matches.
func (s *Searcher) Search(ctx context.Context, query domain.Query) (*domain.SearchPage, error) {
	if err := s.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	opts := &gh.SearchOptions{
		TextMatch: true,
		ListOptions: gh.ListOptions{
			Page:    query.Page,
			PerPage: s.perPage,
		},
	}

	logger.Debug("GET search/code q=%q page=%d per_page=%d", query.Text, query.Page, s.perPage)
	result, resp, err := s.gh.Search.Code(ctx, query.Text, opts)

	var httpResp *http.Response
	if resp != nil {
		httpResp = resp.Response
	}
	if rlErr := s.rateLimiter.CheckRateLimit(httpResp); rlErr != nil {
		return nil, rlErr
	}
	if err != nil {
		return nil, s.wrapError(err, "search code")
	}

	page := &domain.SearchPage{
		Query:   query,
		Results: toCodeResults(result),
	}
	if httpResp != nil {
		page.Pagination = domain.ParseLinkHeader(httpResp.Header.Get(headerLink))
	}

	logger.Debug("Rate limit remaining: %d/%d", s.rateLimiter.Remaining(), s.rateLimiter.Limit())
	return page, nil
}

// wrapError converts go-github errors to our error types.
func (s *Searcher) wrapError(err error, operation string) error {
	var rateLimitErr *gh.RateLimitError
	if errors.As(err, &rateLimitErr) {
		return &RateLimitError{
			ResetAt:   rateLimitErr.Rate.Reset.Time,
			Remaining: rateLimitErr.Rate.Remaining,
			Limit:     rateLimitErr.Rate.Limit,
		}
	}

	var abuseErr *gh.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		return &RateLimitError{
			ResetAt:   time.Now().Add(abuseErr.GetRetryAfter()),
			Remaining: s.rateLimiter.Remaining(),
			Limit:     s.rateLimiter.Limit(),
		}
	}

	var ghErr *gh.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		apiErr := &APIError{
			StatusCode: ghErr.Response.StatusCode,
			Message:    ghErr.Message,
		}
		if ghErr.Response.Request != nil {
			apiErr.URL = ghErr.Response.Request.URL.String()
		}
		return apiErr
	}

	return fmt.Errorf("%s: %w", operation, err)
}
