package driven

import "github.com/custodia-labs/ganzhi/internal/core/domain"

// Normaliser turns the contents of a file into corpus documents.
// Each normaliser handles specific file extensions (e.g. .md, .toml).
type Normaliser interface {
	// Extensions returns the lower-case file extensions handled, with the dot.
	Extensions() []string

	// Normalise parses data read from the file called name.
	Normalise(name string, data []byte) ([]domain.Document, error)
}

// NormaliserRegistry selects the normaliser for a file by its extension.
type NormaliserRegistry interface {
	// Normalise parses data with the normaliser registered for name's
	// extension. Unknown extensions yield domain.ErrUnsupportedFormat.
	Normalise(name string, data []byte) ([]domain.Document, error)

	// Register adds a normaliser, replacing any earlier one for the same
	// extensions.
	Register(normaliser Normaliser)

	// SupportedExtensions returns all extensions that can be normalised.
	SupportedExtensions() []string
}
