// Package cli provides the ganzhi command line interface.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ganzhi/internal/core/domain"
	"github.com/custodia-labs/ganzhi/internal/core/ports/driving"
	"github.com/custodia-labs/ganzhi/internal/logger"
)

// version is set at build time via SetVersion.
var version = "dev"

// Watcher keeps the knowledge index in step with the corpus file.
type Watcher interface {
	Start(ctx context.Context) error
	Stop()
}

// DecodeFunc parses a corpus file, choosing the format from its name.
type DecodeFunc func(name string, data []byte) ([]domain.Document, error)

// Services holds the driving ports the commands run against.
// Pillars, Knowledge and Settings are required by most commands; the rest
// are optional and the commands that need them report when they are missing.
type Services struct {
	Pillars   driving.PillarService
	Knowledge driving.KnowledgeService
	Reading   driving.ReadingService
	Corpus    driving.CorpusService
	Settings  driving.SettingsService

	// Watcher is set when the corpus is a file that can be watched.
	Watcher Watcher

	// Decode parses files for corpus import.
	Decode DecodeFunc
}

var (
	pillarService    driving.PillarService
	knowledgeService driving.KnowledgeService
	readingService   driving.ReadingService
	corpusService    driving.CorpusService
	settingsService  driving.SettingsService
	corpusWatcher    Watcher
	decodeCorpus     DecodeFunc
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "ganzhi",
	Short: "Four pillars calculator with a knowledge index",
	Long: `ganzhi converts a birth date, time and place into the four pillars
(四柱八字) of the sexagenary calendar, corrected to local solar time, and
retrieves reference documents relevant to them.

Readings can be prepared for an external model with 'ganzhi analyse' or
served to AI assistants with 'ganzhi mcp serve'.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if verbose {
			logger.SetVerbose(true)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// SetServices injects the services used by the commands.
func SetServices(s Services) {
	pillarService = s.Pillars
	knowledgeService = s.Knowledge
	readingService = s.Reading
	corpusService = s.Corpus
	settingsService = s.Settings
	corpusWatcher = s.Watcher
	decodeCorpus = s.Decode
}

// SetVersion sets the version reported by 'ganzhi version' and the MCP server.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command. Cancelling ctx stops long-running
// commands such as 'ganzhi mcp serve'.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// currentSettings returns the stored settings, or the defaults when no
// settings service is configured or the store cannot be read.
func currentSettings() domain.AppSettings {
	if settingsService == nil {
		return domain.DefaultAppSettings()
	}
	settings, err := settingsService.Get()
	if err != nil {
		logger.Warn("Reading settings failed, using defaults: %v", err)
		return settingsService.GetDefaults()
	}
	return *settings
}
