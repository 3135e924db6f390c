package results

import (
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/noborus/ov/oviewer"

	"github.com/custodia-labs/ghs/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/ghs/internal/adapters/driving/tui/state"
	"github.com/custodia-labs/ghs/internal/highlight"
)

// fragmentPager hands the terminal to ov while a fragment is viewed.
type fragmentPager struct {
	content string
	run     func(string) error
}

var _ tea.ExecCommand = (*fragmentPager)(nil)

func (p *fragmentPager) Run() error {
	return p.run(p.content)
}

// ov opens the terminal itself, so the streams bubbletea offers are unused.
func (p *fragmentPager) SetStdin(io.Reader)  {}
func (p *fragmentPager) SetStdout(io.Writer) {}
func (p *fragmentPager) SetStderr(io.Writer) {}

// runPager shows content in ov until the user quits it.
func runPager(content string) error {
	root, err := oviewer.NewRoot(strings.NewReader(content))
	if err != nil {
		return fmt.Errorf("open pager: %w", err)
	}

	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}

// viewFragment suspends the TUI and shows the whole fragment in a pager.
func (v *View) viewFragment(e state.Entry) tea.Cmd {
	p := &fragmentPager{content: v.pagerContent(e), run: v.pager}
	return tea.Exec(p, func(err error) tea.Msg {
		return messages.PagerClosed{Err: err}
	})
}

// pagerContent is a header naming the file followed by the fragment with
// matches styled.
func (v *View) pagerContent(e state.Entry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n%s\n\n", e.Item.Repository.FullName, e.Item.Path, e.Item.HTMLURL)

	opts := highlight.Options{TabWidth: v.styles.Theme().TabWidth}
	for _, line := range highlight.Fragment(*e.Match, opts) {
		for _, span := range line.Spans {
			if span.Match {
				b.WriteString(v.styles.Match.Render(span.Text))
			} else {
				b.WriteString(span.Text)
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
