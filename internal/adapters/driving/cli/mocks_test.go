package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ganzhi/internal/adapters/driven/calendar/lunar"
	"github.com/custodia-labs/ganzhi/internal/adapters/driven/corpus/file"
	"github.com/custodia-labs/ganzhi/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/ganzhi/internal/adapters/driven/tokenizer/fields"
	"github.com/custodia-labs/ganzhi/internal/core/domain"
	"github.com/custodia-labs/ganzhi/internal/core/services"
	"github.com/custodia-labs/ganzhi/internal/normalisers"
)

// testServices exposes the stores behind setupTestServices.
type testServices struct {
	corpus   *memory.CorpusStore
	config   *memory.ConfigStore
	settings *services.SettingsService
}

// setupTestServices wires the real services over in-memory stores and the
// built-in corpus. The services are cleared when the test ends.
func setupTestServices(t *testing.T) *testServices {
	t.Helper()

	corpus := memory.NewCorpusStore(file.DefaultDocuments()...)
	knowledge := services.NewKnowledgeService(corpus, fields.New())
	require.NoError(t, knowledge.Reload(context.Background()))

	pillars := services.NewPillarService(lunar.New())
	config := memory.NewConfigStore(nil)
	settings := services.NewSettingsService(config)

	SetServices(Services{
		Pillars:   pillars,
		Knowledge: knowledge,
		Reading:   services.NewReadingService(pillars, knowledge),
		Corpus:    services.NewCorpusService(corpus, knowledge),
		Settings:  settings,
		Decode:    normalisers.Default().Normalise,
	})
	t.Cleanup(func() { SetServices(Services{}) })

	return &testServices{corpus: corpus, config: config, settings: settings}
}

// executeCommand runs the root command with args and returns everything
// written to stdout and stderr. Flags are restored to their defaults afterwards.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return executeCommandWithInput(t, "", args...)
}

func executeCommandWithInput(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(strings.NewReader(input))
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		resetFlags(rootCmd)
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue) //nolint:errcheck // defaults always parse
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// failingKnowledgeService implements driving.KnowledgeService with every call failing.
type failingKnowledgeService struct {
	err error
}

func (m *failingKnowledgeService) Search(_ context.Context, _ string, _ int) ([]domain.ScoredResult, error) {
	return nil, m.err
}

func (m *failingKnowledgeService) Compose(_ context.Context, _ domain.PillarResult) (string, error) {
	return "", m.err
}

func (m *failingKnowledgeService) Documents(_ context.Context) ([]domain.IndexedDocument, error) {
	return nil, m.err
}

func (m *failingKnowledgeService) Status(_ context.Context) domain.IndexStatus {
	return domain.IndexStatus{}
}

func (m *failingKnowledgeService) Reload(_ context.Context) error {
	return m.err
}

// mockWatcher implements Watcher for testing.
type mockWatcher struct {
	startErr error
	started  bool
	stopped  bool
}

func (m *mockWatcher) Start(_ context.Context) error {
	if m.startErr != nil {
		return m.startErr
	}
	m.started = true
	return nil
}

func (m *mockWatcher) Stop() {
	m.stopped = true
}

var errBoom = errors.New("boom")
