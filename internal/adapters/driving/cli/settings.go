package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ganzhi/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the corpus, knowledge, location and MCP settings.

Settings are stored in ~/.ganzhi/config.toml. GANZHI_* environment variables
override them for a single run.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a single setting",
	Long: `Set a single setting.

Available keys:
  corpus.path         - corpus file (.toml, .yaml), blank for the built-in corpus
  corpus.sqlite       - keep the corpus in sqlite (true/false)
  corpus.sqlite_dir   - directory holding corpus.db (blank = ~/.ganzhi/data)
  corpus.watch        - reload the corpus file when it changes (true/false)
  knowledge.limit     - documents included in composed knowledge
  location.latitude   - default birthplace latitude
  location.longitude  - default birthplace longitude
  mcp.port            - default HTTP port for 'ganzhi mcp serve' (0 = stdio)`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsWizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Interactive setup wizard",
	Long:  `Run an interactive wizard to configure all settings step by step.`,
	RunE:  runSettingsWizard,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsWizardCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Corpus]")
	path := settings.Corpus.Path
	if path == "" {
		path = "(built-in)"
	}
	cmd.Printf("  Path: %s\n", path)
	cmd.Printf("  SQLite: %s\n", yesNo(settings.Corpus.SQLite))
	if settings.Corpus.SQLiteDir != "" {
		cmd.Printf("  SQLite directory: %s\n", settings.Corpus.SQLiteDir)
	}
	cmd.Printf("  Watch: %s\n", yesNo(settings.Corpus.Watch))
	cmd.Println()

	cmd.Println("[Knowledge]")
	cmd.Printf("  Limit: %d\n", settings.Knowledge.Limit)
	cmd.Println()

	cmd.Println("[Location]")
	cmd.Printf("  Latitude: %g\n", settings.Location.Latitude)
	cmd.Printf("  Longitude: %g\n", settings.Location.Longitude)
	cmd.Println()

	cmd.Println("[MCP]")
	if settings.MCP.Port > 0 {
		cmd.Printf("  Port: %d\n", settings.MCP.Port)
	} else {
		cmd.Println("  Port: stdio")
	}

	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if err := applySetting(settings, args[0], args[1]); err != nil {
		return err
	}

	if err := settingsService.Save(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	cmd.Printf("Set %s = %s\n", args[0], args[1])
	return nil
}

// applySetting parses value and stores it under key in settings.
func applySetting(settings *domain.AppSettings, key, value string) error {
	invalid := func(err error) error {
		return fmt.Errorf("%w: %s: %v", domain.ErrInvalidInput, key, err)
	}

	switch key {
	case "corpus.path":
		settings.Corpus.Path = strings.TrimSpace(value)
	case "corpus.sqlite_dir":
		dir := strings.TrimSpace(value)
		if info, err := os.Stat(dir); dir != "" && err == nil && !info.IsDir() {
			return invalid(errors.New("not a directory"))
		}
		settings.Corpus.SQLiteDir = dir
	case "corpus.sqlite", "corpus.watch":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return invalid(err)
		}
		if key == "corpus.sqlite" {
			settings.Corpus.SQLite = b
		} else {
			settings.Corpus.Watch = b
		}
	case "knowledge.limit":
		n, err := strconv.Atoi(value)
		if err != nil {
			return invalid(err)
		}
		if n < 1 {
			return invalid(errors.New("must be at least 1"))
		}
		settings.Knowledge.Limit = n
	case "location.latitude", "location.longitude":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return invalid(err)
		}
		bound := 90.0
		if key == "location.longitude" {
			bound = 180
		}
		if f < -bound || f > bound {
			return invalid(fmt.Errorf("must be between %g and %g", -bound, bound))
		}
		if key == "location.latitude" {
			settings.Location.Latitude = f
		} else {
			settings.Location.Longitude = f
		}
	case "mcp.port":
		n, err := strconv.Atoi(value)
		if err != nil {
			return invalid(err)
		}
		if n < 0 || n > 65535 {
			return invalid(errors.New("must be between 0 and 65535"))
		}
		settings.MCP.Port = n
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
	return nil
}

func runSettingsWizard(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Ganzhi Settings Wizard")
	cmd.Println("======================")
	cmd.Println("Press enter to keep the current value.")
	cmd.Println()

	reader := bufio.NewReader(cmd.InOrStdin())

	steps := []struct {
		key     string
		prompt  string
		current string
	}{
		{"location.latitude", "Default birthplace latitude", strconv.FormatFloat(settings.Location.Latitude, 'g', -1, 64)},
		{"location.longitude", "Default birthplace longitude", strconv.FormatFloat(settings.Location.Longitude, 'g', -1, 64)},
		{"knowledge.limit", "Documents per composed knowledge", strconv.Itoa(settings.Knowledge.Limit)},
		{"corpus.path", "Corpus file (blank = built-in)", settings.Corpus.Path},
		{"corpus.sqlite", "Keep the corpus in sqlite", strconv.FormatBool(settings.Corpus.SQLite)},
		{"corpus.sqlite_dir", "Sqlite directory (blank = ~/.ganzhi/data)", settings.Corpus.SQLiteDir},
		{"mcp.port", "MCP HTTP port (0 = stdio)", strconv.Itoa(settings.MCP.Port)},
	}

	for _, step := range steps {
		cmd.Printf("%s [%s]: ", step.prompt, step.current)
		input := readLine(reader)
		if input == "" {
			continue
		}
		if err := applySetting(settings, step.key, input); err != nil {
			return err
		}
	}

	if err := settingsService.Save(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	cmd.Println()
	cmd.Println("Configuration Complete!")
	return nil
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
