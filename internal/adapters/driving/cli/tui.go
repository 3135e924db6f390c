package cli

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/ghs/internal/adapters/driving/tui"
	"github.com/custodia-labs/ghs/internal/logger"
)

// ErrNotTerminal is returned when the TUI is started without a terminal.
var ErrNotTerminal = errors.New("the interactive UI needs a terminal; use 'ghs search' instead")

// ErrPanic is returned when the TUI panics.
var ErrPanic = errors.New("tui panic")

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui [query]",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface.

Controls:
  ↑/↓      - Recall history (prompt) / move selection (results)
  Enter    - Search / open result in browser
  /        - Filter results
  v        - View fragment in a pager
  y        - Copy result URL
  Esc      - Back / clear filter / quit
  Ctrl+C   - Quit`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTUI,
}

// isTerminal reports whether stdin and stdout are attached to a terminal.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// runApp runs the bubbletea program. Replaced in tests.
var runApp = func(app *tui.App) error {
	return app.Run()
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) (err error) {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
			err = fmt.Errorf("%w: %v", ErrPanic, r)
		}
	}()

	search, err := requireSearch()
	if err != nil {
		return err
	}
	if !isTerminal() {
		return ErrNotTerminal
	}

	path, err := logPath()
	if err != nil {
		return err
	}
	closer, err := logger.ToFile(path)
	if err != nil {
		return fmt.Errorf("opening log: %w", err)
	}
	defer closer.Close()
	logger.Section("TUI session")

	ports := tui.NewPorts(search, historyService, resultActionService, settingsService)

	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(cmd.Context()).WithConfigChanges(configChanges)
	if len(args) == 1 {
		app.WithQuery(args[0])
	}

	return runApp(app)
}
