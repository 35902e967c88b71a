package file

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/custodia-labs/ganzhi/internal/core/ports/driven"
)

// Ensure PromptStore implements the interface.
var _ driven.PromptStore = (*PromptStore)(nil)

// promptExt is the file extension of prompt templates.
const promptExt = ".tmpl"

// PromptStore loads analysis prompt templates from user-editable files.
// Missing or unreadable files fall back to the built-in templates.
//
// The directory and default files are created lazily on the first Load,
// not in the constructor.
type PromptStore struct {
	mu        sync.RWMutex
	promptDir string
	cache     map[string]string
	initOnce  sync.Once
	initErr   error
}

// defaultPrompts are written on first use and served when a file is missing.
var defaultPrompts = map[string]string{
	driven.PromptAnalysis: driven.DefaultAnalysisPrompt,
}

// NewPromptStore creates a new file-based prompt store.
// If promptDir is empty, defaults to ~/.ganzhi/prompts/.
func NewPromptStore(promptDir string) (*PromptStore, error) {
	if promptDir == "" {
		dir, err := DefaultDir()
		if err != nil {
			return nil, fmt.Errorf("get home directory: %w", err)
		}
		promptDir = filepath.Join(dir, "prompts")
	}

	return &PromptStore{
		promptDir: promptDir,
		cache:     make(map[string]string),
	}, nil
}

// Load returns the prompt template for the given name.
func (s *PromptStore) Load(name string) (string, error) {
	s.initOnce.Do(s.initialise)
	if s.initErr != nil {
		if prompt, ok := defaultPrompts[name]; ok {
			return prompt, nil
		}
		return "", fmt.Errorf("prompt store init failed: %w", s.initErr)
	}

	s.mu.RLock()
	prompt, ok := s.cache[name]
	s.mu.RUnlock()
	if ok {
		return prompt, nil
	}

	prompt, err := s.loadFromFile(name)
	if err != nil {
		if fallback, ok := defaultPrompts[name]; ok {
			return fallback, nil
		}
		return "", fmt.Errorf("load prompt %q: %w", name, err)
	}

	s.mu.Lock()
	if cached, ok := s.cache[name]; ok {
		prompt = cached
	} else {
		s.cache[name] = prompt
	}
	s.mu.Unlock()

	return prompt, nil
}

// Reload clears the prompt cache, forcing fresh loads from disk.
func (s *PromptStore) Reload() {
	s.mu.Lock()
	s.cache = make(map[string]string)
	s.mu.Unlock()
}

// Dir returns the prompt directory path.
func (s *PromptStore) Dir() string {
	return s.promptDir
}

// initialise creates the prompt directory, default templates and README.
// Existing files are never overwritten.
func (s *PromptStore) initialise() {
	if err := os.MkdirAll(s.promptDir, 0700); err != nil {
		s.initErr = fmt.Errorf("create prompt directory: %w", err)
		return
	}

	for name, content := range defaultPrompts {
		if err := writeIfMissing(filepath.Join(s.promptDir, name+promptExt), content); err != nil {
			s.initErr = fmt.Errorf("create default prompt %q: %w", name, err)
			return
		}
	}

	if err := writeIfMissing(filepath.Join(s.promptDir, "README.md"), readme); err != nil {
		s.initErr = err
	}
}

func (s *PromptStore) loadFromFile(name string) (string, error) {
	data, err := os.ReadFile(filepath.Join(s.promptDir, name+promptExt))
	if err != nil {
		return "", err
	}
	prompt := strings.TrimSpace(string(data))
	if prompt == "" {
		return "", fmt.Errorf("prompt %q is empty", name)
	}
	return prompt, nil
}

func writeIfMissing(path, content string) error {
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return nil
	}
	return os.WriteFile(path, []byte(content), 0600)
}

const readme = `# ganzhi prompts

This directory holds the templates ganzhi renders when preparing a reading.

## Files

- ` + "`analysis.tmpl`" + ` - the analysis request sent along with a reading

## Template fields

Templates use Go text/template syntax. Available fields:

- ` + "`{{.Year}}`, `{{.Month}}`, `{{.Day}}`, `{{.Hour}}`" + ` - the four pillars, e.g. 甲子
- ` + "`{{.SolarDate}}`" + ` - the Gregorian birth date
- ` + "`{{.LunarDate}}`" + ` - the lunar birth date
- ` + "`{{.LocalTime}}`" + ` - the longitude corrected local time
- ` + "`{{.Gender}}`" + ` - as given, may be empty
- ` + "`{{.Knowledge}}`" + ` - retrieved reference text, may be empty

Delete a file to restore its default on the next run.
`
