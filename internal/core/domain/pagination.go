package domain

import (
	"strconv"
	"strings"
)

// Pagination holds the link relations describing available result pages.
// Each field is empty when the corresponding relation is absent.
type Pagination struct {
	Prev  string `json:"prev,omitempty"`
	Next  string `json:"next,omitempty"`
	First string `json:"first,omitempty"`
	Last  string `json:"last,omitempty"`
}

// ParseLinkHeader extracts the prev/next/first/last relations from a
// Link header of comma-separated `<url>; rel="..."` entries.
// It returns nil when no relation could be found.
func ParseLinkHeader(header string) *Pagination {
	if strings.TrimSpace(header) == "" {
		return nil
	}

	var p Pagination
	found := false

	for _, entry := range strings.Split(header, ",") {
		url, rel, ok := splitLinkEntry(entry)
		if !ok {
			continue
		}

		switch {
		case strings.Contains(rel, `rel="prev"`):
			p.Prev = url
		case strings.Contains(rel, `rel="next"`):
			p.Next = url
		case strings.Contains(rel, `rel="first"`):
			p.First = url
		case strings.Contains(rel, `rel="last"`):
			p.Last = url
		default:
			continue
		}
		found = true
	}

	if !found {
		return nil
	}
	return &p
}

// splitLinkEntry splits `<url>; rel="x"` into the url and the remainder.
func splitLinkEntry(entry string) (url, rel string, ok bool) {
	entry = strings.TrimSpace(entry)
	start := strings.Index(entry, "<")
	end := strings.Index(entry, ">")
	if start < 0 || end <= start {
		return "", "", false
	}
	return entry[start+1 : end], entry[end+1:], true
}

// HasNext reports whether a further page is available.
func (p *Pagination) HasNext() bool {
	return p != nil && p.Next != ""
}

// LastPage returns the page number of the last page by locating
// `page=<N>` in the query string of the last link.
func (p *Pagination) LastPage() (int, bool) {
	if p == nil || p.Last == "" {
		return 0, false
	}
	return pageParam(p.Last)
}

// pageParam finds the value of the page query parameter in a URL.
func pageParam(url string) (int, bool) {
	q := strings.Index(url, "?")
	if q < 0 {
		return 0, false
	}

	for _, pair := range strings.Split(url[q+1:], "&") {
		value, ok := strings.CutPrefix(pair, "page=")
		if !ok {
			continue
		}
		n, err := strconv.Atoi(value)
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return 0, false
}
