// Command ganzhi computes four pillars and retrieves reference knowledge.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/custodia-labs/ganzhi/internal/adapters/driven/calendar/lunar"
	"github.com/custodia-labs/ganzhi/internal/adapters/driven/config/env"
	configfile "github.com/custodia-labs/ganzhi/internal/adapters/driven/config/file"
	corpusfile "github.com/custodia-labs/ganzhi/internal/adapters/driven/corpus/file"
	"github.com/custodia-labs/ganzhi/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/ganzhi/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/ganzhi/internal/adapters/driven/tokenizer/gse"
	"github.com/custodia-labs/ganzhi/internal/adapters/driven/watcher"
	"github.com/custodia-labs/ganzhi/internal/adapters/driving/cli"
	"github.com/custodia-labs/ganzhi/internal/core/domain"
	"github.com/custodia-labs/ganzhi/internal/core/ports/driven"
	"github.com/custodia-labs/ganzhi/internal/core/services"
	"github.com/custodia-labs/ganzhi/internal/logger"
	"github.com/custodia-labs/ganzhi/internal/normalisers"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cleanup, err := wire(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer cleanup()

	if err := cli.Execute(ctx); err != nil {
		return 1
	}
	return 0
}

// wire builds the adapters and services and hands them to the CLI.
// The returned function releases what wire opened.
func wire(ctx context.Context) (func(), error) {
	overrides, err := env.Load()
	if err != nil {
		return nil, err
	}
	if overrides.Debug {
		logger.SetVerbose(true)
	}

	configStore := openConfigStore(overrides.Home)
	settingsService := overrides.Wrap(services.NewSettingsService(configStore))
	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("reading settings: %w", err)
	}

	tokenizer := gse.New()
	pillars := services.NewPillarService(lunar.New())

	corpus, closeCorpus := openCorpus(ctx, settings.Corpus)

	knowledge := services.NewKnowledgeService(corpus, tokenizer)
	knowledge.SetComposeLimit(settings.Knowledge.Limit)
	if err := knowledge.Reload(ctx); err != nil {
		// Commands that need the index report it; the rest still work.
		logger.Warn("Knowledge index not loaded: %v", err)
	}

	reading := services.NewReadingService(pillars, knowledge)
	if prompts, err := configfile.NewPromptStore(promptDir(overrides.Home)); err != nil {
		logger.Warn("Prompt store unavailable, using built-in prompt: %v", err)
	} else {
		reading.SetPromptStore(prompts)
	}

	svcs := cli.Services{
		Pillars:   pillars,
		Knowledge: knowledge,
		Reading:   reading,
		Settings:  settingsService,
		Decode:    normalisers.Default().Normalise,
	}
	if writable, ok := corpus.(driven.WritableCorpusStore); ok {
		svcs.Corpus = services.NewCorpusService(writable, knowledge)
	}
	if settings.Corpus.Path != "" && !settings.Corpus.SQLite {
		w, err := watcher.New(settings.Corpus.Path, knowledge)
		if err != nil {
			logger.Warn("Corpus watcher unavailable: %v", err)
		} else {
			svcs.Watcher = w
		}
	}

	cli.SetVersion(version)
	cli.SetServices(svcs)

	return closeCorpus, nil
}

// openConfigStore opens the TOML config, falling back to an in-memory store
// so the CLI keeps working on a read-only home directory.
func openConfigStore(home string) driven.ConfigStore {
	store, err := configfile.NewConfigStore(home)
	if err != nil {
		logger.Warn("Config file unavailable, settings will not persist: %v", err)
		return memory.NewConfigStore(nil)
	}
	return store
}

func promptDir(home string) string {
	if home == "" {
		return ""
	}
	return filepath.Join(home, "prompts")
}

// openCorpus selects the corpus backend: sqlite when enabled (seeded with the
// built-in documents on first use), otherwise the configured file or the
// built-in corpus. A database that cannot be opened falls back to the
// built-in corpus so that every command, settings included, still runs.
func openCorpus(ctx context.Context, settings domain.CorpusSettings) (driven.CorpusStore, func()) {
	if !settings.SQLite {
		return corpusfile.NewStore(settings.Path), func() {}
	}

	store, err := openDatabase(ctx, settings.SQLiteDir)
	if err != nil {
		logger.Warn("Corpus database unavailable, using the %s: %v", corpusfile.DefaultName, err)
		return corpusfile.NewStore(""), func() {}
	}

	return store, func() {
		if err := store.Close(); err != nil {
			logger.Warn("Closing corpus database: %v", err)
		}
	}
}

func openDatabase(ctx context.Context, dir string) (*sqlite.Store, error) {
	store, err := sqlite.NewStore(dir)
	if err != nil {
		return nil, fmt.Errorf("opening corpus database: %w", err)
	}

	seeded, err := store.Seed(ctx, corpusfile.DefaultDocuments())
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("seeding corpus database: %w", err)
	}
	if seeded {
		logger.Info("Seeded %s with the %s", store.Path(), corpusfile.DefaultName)
	}
	return store, nil
}
