// Package env reads GANZHI_* environment variables that override the
// settings stored in config.toml.
package env

import (
	"fmt"

	envparse "github.com/caarlos0/env/v11"

	"github.com/custodia-labs/ganzhi/internal/core/domain"
	"github.com/custodia-labs/ganzhi/internal/core/ports/driving"
)

// Prefix is prepended to every variable name.
const Prefix = "GANZHI_"

// Overrides holds the variables that were set. Nil fields leave the
// corresponding setting alone.
type Overrides struct {
	CorpusPath     *string  `env:"CORPUS_PATH"`
	CorpusSQLite   *bool    `env:"CORPUS_SQLITE"`
	CorpusDir      *string  `env:"CORPUS_SQLITE_DIR"`
	CorpusWatch    *bool    `env:"CORPUS_WATCH"`
	KnowledgeLimit *int     `env:"KNOWLEDGE_LIMIT"`
	Latitude       *float64 `env:"LATITUDE"`
	Longitude      *float64 `env:"LONGITUDE"`
	MCPPort        *int     `env:"MCP_PORT"`

	// Home replaces ~/.ganzhi as the config directory.
	Home string `env:"HOME"`

	// Debug turns on verbose logging.
	Debug bool `env:"DEBUG"`
}

// Load parses overrides from the process environment.
func Load() (*Overrides, error) {
	return parse(envparse.Options{Prefix: Prefix})
}

// LoadFrom parses overrides from environ instead of the process environment.
// Keys include the prefix, e.g. "GANZHI_LONGITUDE".
func LoadFrom(environ map[string]string) (*Overrides, error) {
	return parse(envparse.Options{Prefix: Prefix, Environment: environ})
}

func parse(opts envparse.Options) (*Overrides, error) {
	var o Overrides
	if err := envparse.ParseWithOptions(&o, opts); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return &o, nil
}

// Apply writes every set override onto settings.
func (o *Overrides) Apply(settings *domain.AppSettings) {
	if o == nil || settings == nil {
		return
	}
	if o.CorpusPath != nil {
		settings.Corpus.Path = *o.CorpusPath
	}
	if o.CorpusSQLite != nil {
		settings.Corpus.SQLite = *o.CorpusSQLite
	}
	if o.CorpusDir != nil {
		settings.Corpus.SQLiteDir = *o.CorpusDir
	}
	if o.CorpusWatch != nil {
		settings.Corpus.Watch = *o.CorpusWatch
	}
	if o.KnowledgeLimit != nil {
		settings.Knowledge.Limit = *o.KnowledgeLimit
	}
	if o.Latitude != nil {
		settings.Location.Latitude = *o.Latitude
	}
	if o.Longitude != nil {
		settings.Location.Longitude = *o.Longitude
	}
	if o.MCPPort != nil {
		settings.MCP.Port = *o.MCPPort
	}
}

// Settings is a settings service whose Get reports the overridden values.
// Save is passed through unchanged.
type Settings struct {
	driving.SettingsService
	overrides *Overrides
}

// Ensure Settings implements the interface.
var _ driving.SettingsService = (*Settings)(nil)

// Wrap layers the overrides over svc.
func (o *Overrides) Wrap(svc driving.SettingsService) *Settings {
	return &Settings{SettingsService: svc, overrides: o}
}

// Get returns the stored settings with the overrides applied.
func (s *Settings) Get() (*domain.AppSettings, error) {
	settings, err := s.SettingsService.Get()
	if err != nil {
		return nil, err
	}
	s.overrides.Apply(settings)
	return settings, nil
}
