package state

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/ghs/internal/core/domain"
)

func TestFilter_BeginFromInactive(t *testing.T) {
	f := NewFilter()

	f.Begin()

	assert.Equal(t, FilterEditing, f.Mode())
}

func TestFilter_EscapeEmptyEditing(t *testing.T) {
	f := NewFilter()
	f.Begin()

	assert.True(t, f.Escape())
	assert.Equal(t, FilterInactive, f.Mode())
}

func TestFilter_EscapeNonEmptyEditing(t *testing.T) {
	f := NewFilter()
	f.Begin()
	f.SetInput("main")

	assert.True(t, f.Escape())
	assert.Equal(t, FilterApplied, f.Mode())
	assert.Equal(t, "main", f.Input())
}

func TestFilter_Commit(t *testing.T) {
	f := NewFilter()
	f.Commit()
	assert.Equal(t, FilterInactive, f.Mode(), "commit outside editing is ignored")

	f.Begin()
	f.Commit()
	assert.Equal(t, FilterApplied, f.Mode())
}

func TestFilter_EscapeApplied(t *testing.T) {
	f := NewFilter()
	f.Begin()
	f.SetInput("main")
	f.Commit()

	assert.True(t, f.Escape())
	assert.Equal(t, FilterInactive, f.Mode())
	assert.Empty(t, f.Input())
}

func TestFilter_EscapeInactive(t *testing.T) {
	f := NewFilter()

	assert.False(t, f.Escape())
}

func TestFilter_BeginFromApplied(t *testing.T) {
	f := NewFilter()
	f.Begin()
	f.SetInput("main")
	f.Commit()

	f.Begin()

	assert.Equal(t, FilterEditing, f.Mode())
	assert.Equal(t, "main", f.Input())
}

func TestFilter_SetInput(t *testing.T) {
	f := NewFilter()
	assert.False(t, f.SetInput("x"), "not editing")

	f.Begin()
	assert.True(t, f.SetInput("x"))
	assert.False(t, f.SetInput("x"))
	assert.True(t, f.SetInput(""))
}

func TestFilterMode_String(t *testing.T) {
	assert.Equal(t, "inactive", FilterInactive.String())
	assert.Equal(t, "editing", FilterEditing.String())
	assert.Equal(t, "applied", FilterApplied.String())
	assert.Equal(t, "unknown", FilterMode(7).String())
}

func TestFilter_Matches(t *testing.T) {
	item := &domain.Item{
		Path:       "cmd/Server/main.go",
		Repository: domain.Repository{FullName: "Acme/Widgets"},
	}
	tm := &domain.TextMatch{Fragment: "func ListenAndServe()"}

	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{name: "empty", input: "", expected: true},
		{name: "path case-insensitive", input: "server/MAIN", expected: true},
		{name: "repository", input: "acme/widgets", expected: true},
		{name: "fragment", input: "listenandserve", expected: true},
		{name: "no match", input: "database", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFilter()
			f.Begin()
			f.SetInput(tt.input)

			assert.Equal(t, tt.expected, f.Matches(item, tm))
		})
	}
}

func TestFilter_Matches_Inactive(t *testing.T) {
	f := NewFilter()
	f.Begin()
	f.SetInput("nothing matches this")
	f.Escape()
	f.Escape()

	assert.True(t, f.Matches(&domain.Item{}, &domain.TextMatch{}))
}

func TestVisible(t *testing.T) {
	results := domain.CodeResults{Items: []domain.Item{
		{Path: "a.go", TextMatches: []domain.TextMatch{{Fragment: "alpha"}, {Fragment: "beta"}}},
		{Path: "b.go", TextMatches: []domain.TextMatch{{Fragment: "gamma"}}},
		{Path: "c.go"},
	}}

	all := Visible(results, nil)
	assert.Len(t, all, 3)
	assert.Equal(t, "a.go", all[1].Item.Path)
	assert.Equal(t, "beta", all[1].Match.Fragment)

	f := NewFilter()
	f.Begin()
	f.SetInput("MMA")

	filtered := Visible(results, f)
	if assert.Len(t, filtered, 1) {
		assert.Equal(t, "b.go", filtered[0].Item.Path)
	}
}
