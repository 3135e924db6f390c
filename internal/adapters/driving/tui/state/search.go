package state

import (
	"github.com/google/uuid"

	"github.com/custodia-labs/ghs/internal/core/domain"
)

// PaginationThreshold is how close to the end of the visible results the
// selection must be before the next page is requested.
const PaginationThreshold = 5

// Phase is the stage of the search lifecycle.
type Phase int

const (
	// PhaseIdle means no search has been submitted.
	PhaseIdle Phase = iota
	// PhaseLoading means the first page of a query is being fetched.
	PhaseLoading
	// PhaseLoaded means results are available.
	PhaseLoaded
	// PhaseLoadingMore means results are available and the next page is
	// being fetched.
	PhaseLoadingMore
)

// String returns the string representation of the phase.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseLoaded:
		return "loaded"
	case PhaseLoadingMore:
		return "loading_more"
	default:
		return "unknown"
	}
}

// Search tracks the current query, its merged results and the request in
// flight. Each request is tagged with an id; completions carrying any other
// id are stale and ignored.
type Search struct {
	phase      Phase
	query      domain.Query
	results    domain.CodeResults
	pagination *domain.Pagination
	page       int
	requestID  string
	newID      func() string
	// version counts changes to results.
	version int
}

// NewSearch creates an idle search.
func NewSearch() *Search {
	return &Search{newID: uuid.NewString}
}

// Submit starts a new query and returns the request to issue.
// Any previous results are discarded.
func (s *Search) Submit(text string) (domain.Query, string, error) {
	q := domain.NewQuery(text)
	if err := q.Validate(); err != nil {
		return domain.Query{}, "", err
	}
	if s.phase == PhaseLoadingMore {
		return domain.Query{}, "", ErrBusy
	}

	s.phase = PhaseLoading
	s.query = q
	s.results = domain.CodeResults{}
	s.pagination = nil
	s.page = 0
	s.requestID = s.newID()
	s.version++
	return q, s.requestID, nil
}

// Complete applies the first page of the in-flight query.
// It reports false, leaving the state untouched, when the response is stale.
func (s *Search) Complete(id string, page *domain.SearchPage) bool {
	if s.phase != PhaseLoading || id != s.requestID || page == nil {
		return false
	}

	s.phase = PhaseLoaded
	s.results = page.Results
	s.pagination = page.Pagination
	s.page = 1
	s.version++
	return true
}

// NeedsMore reports whether moving the selection to selected, out of
// visible entries, should fetch the next page.
func (s *Search) NeedsMore(selected, visible int) bool {
	if s.phase != PhaseLoaded || !s.pagination.HasNext() {
		return false
	}
	return selected >= max(visible-PaginationThreshold, 0)
}

// BeginMore moves to PhaseLoadingMore and returns the request for the next
// page. It reports false when there is nothing to fetch.
func (s *Search) BeginMore() (domain.Query, string, bool) {
	if s.phase != PhaseLoaded || !s.pagination.HasNext() {
		return domain.Query{}, "", false
	}

	s.phase = PhaseLoadingMore
	s.requestID = s.newID()
	return s.query.WithPage(s.page + 1), s.requestID, true
}

// CompleteMore appends a further page to the results.
// It reports false when the response is stale.
func (s *Search) CompleteMore(id string, page *domain.SearchPage) bool {
	if s.phase != PhaseLoadingMore || id != s.requestID || page == nil {
		return false
	}

	s.phase = PhaseLoaded
	s.results = s.results.Merge(page.Results)
	s.pagination = page.Pagination
	s.page++
	s.version++
	return true
}

// Current reports whether id identifies the request in flight.
// A failure for any other request can be dropped.
func (s *Search) Current(id string) bool {
	if s.phase != PhaseLoading && s.phase != PhaseLoadingMore {
		return false
	}
	return id == s.requestID
}

// Phase returns the current phase.
func (s *Search) Phase() Phase {
	return s.phase
}

// Query returns the submitted query.
func (s *Search) Query() domain.Query {
	return s.query
}

// Results returns the merged results. Only Loaded and LoadingMore carry any.
func (s *Search) Results() domain.CodeResults {
	return s.results
}

// HasResults reports whether the phase carries results.
func (s *Search) HasResults() bool {
	return s.phase == PhaseLoaded || s.phase == PhaseLoadingMore
}

// Pagination returns the links of the most recent page, or nil.
func (s *Search) Pagination() *domain.Pagination {
	return s.pagination
}

// Page returns the number of pages merged so far.
func (s *Search) Page() int {
	return s.page
}

// Version changes whenever the results do.
func (s *Search) Version() int {
	return s.version
}

// Loading reports whether any request is in flight.
func (s *Search) Loading() bool {
	return s.phase == PhaseLoading || s.phase == PhaseLoadingMore
}
