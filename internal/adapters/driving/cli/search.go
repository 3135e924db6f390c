package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ghs/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/ghs/internal/core/domain"
	"github.com/custodia-labs/ghs/internal/highlight"
	"github.com/custodia-labs/ghs/internal/logger"
)

var (
	searchPage int
	searchJSON bool
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search GitHub code and print the results",
	Long: `Runs a single GitHub code search and prints each matching fragment with
the matched text highlighted. Use --page to fetch later pages and --json for
machine-readable output.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchPage, "page", "p", 1, "result page to fetch")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	search, err := requireSearch()
	if err != nil {
		return err
	}

	query := domain.NewQuery(args[0])
	if searchPage > 1 {
		query = query.WithPage(searchPage)
	}

	page, err := search.Search(cmd.Context(), query)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	recordHistory(cmd, query.Text)

	if searchJSON {
		return outputSearchJSON(cmd, page)
	}
	outputSearchText(cmd, page, max(searchPage, 1))
	return nil
}

// recordHistory adds query to the stored history. Failures are logged only.
func recordHistory(cmd *cobra.Command, query string) {
	if historyService == nil {
		return
	}
	stored, err := historyService.Load(cmd.Context())
	if err != nil {
		logger.Warn("load history: %v", err)
		return
	}
	h := domain.NewHistory(stored)
	h.Add(query)
	if err := historyService.Save(cmd.Context(), h.Searches); err != nil {
		logger.Debug("save history: %v", err)
	}
}

func outputSearchJSON(cmd *cobra.Command, page *domain.SearchPage) error {
	data, err := json.MarshalIndent(page, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchText(cmd *cobra.Command, page *domain.SearchPage, current int) {
	items := page.Results.Items
	if len(items) == 0 {
		cmd.Println("No results found.")
		return
	}

	s := outputStyles()
	opts := highlight.Options{TabWidth: s.Theme().TabWidth}

	for i := range items {
		item := &items[i]
		cmd.Println(s.Title.Render(item.Repository.FullName + " " + item.Path))
		cmd.Println(s.Muted.Render(item.HTMLURL))
		for _, tm := range item.TextMatches {
			for _, line := range highlight.Fragment(tm, opts) {
				cmd.Println("  " + renderLine(s, line))
			}
			cmd.Println()
		}
	}

	cmd.Println(pageSummary(page, current))
}

func renderLine(s *styles.Styles, line highlight.RenderedLine) string {
	var b strings.Builder
	for _, span := range line.Spans {
		if span.Match {
			b.WriteString(s.Match.Render(span.Text))
		} else {
			b.WriteString(span.Text)
		}
	}
	return b.String()
}

func pageSummary(page *domain.SearchPage, current int) string {
	summary := fmt.Sprintf("%d matches (%d total)", page.Results.Count(), page.Results.TotalCount)
	if last, ok := page.Pagination.LastPage(); ok {
		summary += fmt.Sprintf(", page %d/%d", current, last)
	} else {
		summary += fmt.Sprintf(", page %d", current)
	}
	if page.Pagination.HasNext() {
		summary += fmt.Sprintf("; next: --page %d", current+1)
	}
	return summary
}

func outputStyles() *styles.Styles {
	if settingsService == nil {
		return styles.DefaultStyles()
	}
	return styles.NewStyles(styles.ThemeFromSettings(settingsService.Get().UI))
}
