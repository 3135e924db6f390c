package cli

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ghs/internal/core/domain"
)

// tokenEnvVars are checked in order when reporting token status.
var tokenEnvVars = []string{"GITHUB_TOKEN", "GH_TOKEN"}

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change settings",
	Long: `View the active configuration, or change a single key.

Keys use the dotted form of the config file, e.g. github.per_page,
cache.ttl_minutes, ui.tab_width or theme.match.`,
	Args: cobra.NoArgs,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration key",
	Long: `Set a configuration key in the config file.

Integers and booleans are stored as such; a comma-separated value is stored
as a list (used by ui.spinner_frames).`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings := settingsService.Get()

	cmd.Println("Current Settings")
	cmd.Println("================")
	if path := settingsService.Path(); path != "" {
		cmd.Printf("Config file: %s\n", path)
	}
	cmd.Println()

	cmd.Println("[GitHub]")
	cmd.Printf("  API URL: %s\n", settings.GitHub.APIURL)
	cmd.Printf("  Per page: %d\n", settings.GitHub.PerPage)
	cmd.Printf("  Token: %s\n", tokenStatus())
	cmd.Println()

	cmd.Println("[Cache]")
	if settings.Cache.Enabled {
		cmd.Printf("  Enabled: yes\n")
		cmd.Printf("  TTL: %s\n", settings.Cache.TTL)
	} else {
		cmd.Printf("  Enabled: no\n")
	}
	cmd.Println()

	cmd.Println("[UI]")
	cmd.Printf("  Tab width: %d\n", settings.UI.TabWidth)
	cmd.Printf("  Spinner: %s\n", strings.Join(settings.UI.SpinnerFrames, ""))
	for _, slot := range domain.ThemeSlots {
		if c, ok := settings.UI.Colours[slot]; ok {
			cmd.Printf("  Colour %s: %s\n", slot, c)
		}
	}

	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key, value := args[0], parseValue(args[1])
	if err := settingsService.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	cmd.Printf("Set %s = %v\n", key, value)
	return nil
}

// parseValue converts a command-line value into the type stored in config.
func parseValue(s string) any {
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	if strings.Contains(s, ",") {
		parts := strings.Split(s, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out
	}
	return s
}

func tokenStatus() string {
	for _, name := range tokenEnvVars {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			return fmt.Sprintf("%s (%s)", maskToken(v), name)
		}
	}
	return "(not set)"
}

// maskToken masks a token for display, showing only first/last 4 chars.
func maskToken(token string) string {
	if len(token) <= 8 {
		return "****"
	}
	return token[:4] + "..." + token[len(token)-4:]
}
