package services

import (
	"fmt"

	"github.com/custodia-labs/ganzhi/internal/core/domain"
	"github.com/custodia-labs/ganzhi/internal/core/ports/driven"
	"github.com/custodia-labs/ganzhi/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyCorpusPath      = "corpus.path"
	keyCorpusSQLite    = "corpus.sqlite"
	keyCorpusSQLiteDir = "corpus.sqlite_dir"
	keyCorpusWatch     = "corpus.watch"
	keyKnowledgeLimit  = "knowledge.limit"
	keyLatitude        = "location.latitude"
	keyLongitude       = "location.longitude"
	keyMCPPort         = "mcp.port"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
// A nil config store yields default settings and rejects Save.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
	}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	settings := domain.DefaultAppSettings()
	if s.configStore == nil {
		return &settings, nil
	}

	settings.Corpus = domain.CorpusSettings{
		Path:      s.configStore.GetString(keyCorpusPath),
		SQLite:    s.getBool(keyCorpusSQLite, settings.Corpus.SQLite),
		SQLiteDir: s.configStore.GetString(keyCorpusSQLiteDir),
		Watch:     s.getBool(keyCorpusWatch, settings.Corpus.Watch),
	}
	settings.Knowledge.Limit = s.getInt(keyKnowledgeLimit, settings.Knowledge.Limit)
	settings.Location = domain.LocationSettings{
		Latitude:  s.getFloat(keyLatitude, settings.Location.Latitude),
		Longitude: s.getFloat(keyLongitude, settings.Location.Longitude),
	}
	settings.MCP.Port = s.getInt(keyMCPPort, settings.MCP.Port)

	return &settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if s.configStore == nil {
		return fmt.Errorf("save settings: %w", domain.ErrNotFound)
	}

	values := []struct {
		key   string
		value any
	}{
		{keyCorpusPath, settings.Corpus.Path},
		{keyCorpusSQLite, settings.Corpus.SQLite},
		{keyCorpusSQLiteDir, settings.Corpus.SQLiteDir},
		{keyCorpusWatch, settings.Corpus.Watch},
		{keyKnowledgeLimit, settings.Knowledge.Limit},
		{keyLatitude, settings.Location.Latitude},
		{keyLongitude, settings.Location.Longitude},
		{keyMCPPort, settings.MCP.Port},
	}

	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}

	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetFloat(key)
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}
