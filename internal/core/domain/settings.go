package domain

// Default setting values.
const (
	// DefaultKnowledgeLimit is the number of documents composed into knowledge text.
	DefaultKnowledgeLimit = 5

	// DefaultSearchLimit is the number of results returned by ad-hoc searches.
	DefaultSearchLimit = 10

	// ReferenceLatitude and ReferenceLongitude locate the reference meridian (Beijing).
	ReferenceLatitude  = 39.9042
	ReferenceLongitude = 116.4074
)

// CorpusSettings controls where the knowledge corpus is loaded from.
type CorpusSettings struct {
	// Path is a TOML or YAML corpus file. Empty uses the embedded default corpus.
	Path string

	// SQLite loads the corpus from the local database instead of Path.
	SQLite bool

	// SQLiteDir is the directory holding corpus.db. Empty uses ~/.ganzhi/data.
	SQLiteDir string

	// Watch rebuilds the index when Path changes.
	Watch bool
}

// KnowledgeSettings controls knowledge composition.
type KnowledgeSettings struct {
	// Limit is the number of ranked documents composed into a reading.
	Limit int
}

// LocationSettings is the default birth location when none is given.
type LocationSettings struct {
	Latitude  float64
	Longitude float64
}

// MCPSettings configures the MCP server.
type MCPSettings struct {
	// Port is the HTTP port. Zero serves over stdio.
	Port int
}

// AppSettings aggregates all application settings.
type AppSettings struct {
	Corpus    CorpusSettings
	Knowledge KnowledgeSettings
	Location  LocationSettings
	MCP       MCPSettings
}

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Knowledge: KnowledgeSettings{
			Limit: DefaultKnowledgeLimit,
		},
		Location: LocationSettings{
			Latitude:  ReferenceLatitude,
			Longitude: ReferenceLongitude,
		},
	}
}
