package github

import (
	gh "github.com/google/go-github/v80/github"

	"github.com/custodia-labs/ghs/internal/core/domain"
)

// toCodeResults converts a go-github search result into domain results.
// Items keep server order.
func toCodeResults(r *gh.CodeSearchResult) domain.CodeResults {
	if r == nil {
		return domain.CodeResults{Items: []domain.Item{}}
	}

	items := make([]domain.Item, 0, len(r.CodeResults))
	for _, cr := range r.CodeResults {
		if cr == nil {
			continue
		}
		items = append(items, toItem(cr))
	}

	return domain.CodeResults{
		TotalCount: r.GetTotal(),
		Items:      items,
	}
}

func toItem(cr *gh.CodeResult) domain.Item {
	item := domain.Item{
		Name:        cr.GetName(),
		Path:        cr.GetPath(),
		HTMLURL:     cr.GetHTMLURL(),
		TextMatches: make([]domain.TextMatch, 0, len(cr.TextMatches)),
	}

	if repo := cr.GetRepository(); repo != nil {
		item.Repository = domain.Repository{
			Name:     repo.GetName(),
			FullName: repo.GetFullName(),
			Owner:    domain.Owner{Login: repo.GetOwner().GetLogin()},
		}
	}

	for _, tm := range cr.TextMatches {
		if tm == nil {
			continue
		}
		item.TextMatches = append(item.TextMatches, toTextMatch(tm))
	}

	return item
}

func toTextMatch(tm *gh.TextMatch) domain.TextMatch {
	out := domain.TextMatch{
		Fragment: tm.GetFragment(),
		Matches:  make([]domain.MatchSegment, 0, len(tm.Matches)),
	}

	for _, m := range tm.Matches {
		if m == nil || len(m.Indices) < 2 {
			continue
		}
		out.Matches = append(out.Matches, domain.MatchSegment{
			Text:    m.GetText(),
			Indices: [2]int{m.Indices[0], m.Indices[1]},
		})
	}

	return out
}
