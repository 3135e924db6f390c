package domain

import "strings"

// Query is a single code search request.
// A Page of zero means the first page and is omitted from the request.
type Query struct {
	// Text is the raw search string as typed by the user.
	Text string

	// Page is the 1-based result page to fetch.
	Page int
}

// NewQuery creates a query for the first page of results.
func NewQuery(text string) Query {
	return Query{Text: strings.TrimSpace(text)}
}

// WithPage returns a copy of the query targeting the given page.
func (q Query) WithPage(page int) Query {
	q.Page = page
	return q
}

// Validate checks that the query can be sent to the search backend.
func (q Query) Validate() error {
	if strings.TrimSpace(q.Text) == "" {
		return ErrEmptyQuery
	}
	if q.Page < 0 {
		return ErrInvalidInput
	}
	return nil
}

// CodeResults is the ordered set of file hits returned for a query.
type CodeResults struct {
	// TotalCount is the total number of hits reported by the service.
	TotalCount int `json:"total_count"`

	// Items are the file hits in server order.
	Items []Item `json:"items"`
}

// Count returns the number of text matches across all items.
// Each text match is one navigable entry in the results view.
func (r CodeResults) Count() int {
	n := 0
	for i := range r.Items {
		n += len(r.Items[i].TextMatches)
	}
	return n
}

// Merge appends the items of next after the receiver's items.
// Order is preserved and nothing is deduplicated or re-sorted.
func (r CodeResults) Merge(next CodeResults) CodeResults {
	items := make([]Item, 0, len(r.Items)+len(next.Items))
	items = append(items, r.Items...)
	items = append(items, next.Items...)

	total := r.TotalCount
	if next.TotalCount > total {
		total = next.TotalCount
	}

	return CodeResults{TotalCount: total, Items: items}
}

// Item is a single repository file hit.
type Item struct {
	Name        string      `json:"name"`
	Path        string      `json:"path"`
	HTMLURL     string      `json:"html_url"`
	Repository  Repository  `json:"repository"`
	TextMatches []TextMatch `json:"text_matches"`
}

// Repository identifies the repository owning an item.
type Repository struct {
	Name     string `json:"name"`
	FullName string `json:"full_name"`
	Owner    Owner  `json:"owner"`
}

// Owner is the account owning a repository.
type Owner struct {
	Login string `json:"login"`
}

// TextMatch is a fragment of file content containing one or more matches.
type TextMatch struct {
	// Fragment is the matched context as returned by the service.
	Fragment string `json:"fragment"`

	// Matches are ascending, non-overlapping byte ranges into Fragment.
	Matches []MatchSegment `json:"matches"`
}

// MatchSegment is one matched substring inside a fragment.
type MatchSegment struct {
	Text string `json:"text"`

	// Indices holds the start and end byte offsets relative to the fragment.
	Indices [2]int `json:"indices"`
}

// Start returns the start byte offset of the match.
func (m MatchSegment) Start() int {
	return m.Indices[0]
}

// End returns the end byte offset of the match.
func (m MatchSegment) End() int {
	return m.Indices[1]
}

// SearchPage is the result of fetching one page of a query.
type SearchPage struct {
	// Query is the request that produced this page.
	Query Query `json:"-"`

	// Results holds the items of this page only.
	Results CodeResults `json:"results"`

	// Pagination is nil when the response carried no link relations.
	Pagination *Pagination `json:"pagination,omitempty"`
}
