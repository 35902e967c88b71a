package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/ganzhi/internal/core/domain"
	"github.com/custodia-labs/ganzhi/internal/core/ports/driven"
	"github.com/custodia-labs/ganzhi/internal/core/ports/driving"
	"github.com/custodia-labs/ganzhi/internal/logger"
)

// Ensure ReadingService implements the interface.
var _ driving.ReadingService = (*ReadingService)(nil)

// PromptData is the data the analysis prompt template is executed with.
type PromptData struct {
	Year      string
	Month     string
	Day       string
	Hour      string
	SolarDate string
	LunarDate string
	LocalTime string
	Gender    string
	Knowledge string
}

// NewPromptData flattens a reading's inputs into template fields.
func NewPromptData(birth domain.BirthRecord, p domain.PillarResult, knowledge string) PromptData {
	return PromptData{
		Year:      p.Year.String(),
		Month:     p.Month.String(),
		Day:       p.Day.String(),
		Hour:      p.Hour.String(),
		SolarDate: p.SolarDisplay,
		LunarDate: p.LunarDisplay,
		LocalTime: p.LocalTime.String(),
		Gender:    birth.Gender,
		Knowledge: knowledge,
	}
}

// ReadingService combines pillars, knowledge and the analysis prompt.
type ReadingService struct {
	pillars   driving.PillarService
	knowledge driving.KnowledgeService
	prompts   driven.PromptStore
	now       func() time.Time
}

// NewReadingService creates a new reading service.
// The knowledge service is optional (can be nil); readings then carry no knowledge.
func NewReadingService(pillars driving.PillarService, knowledge driving.KnowledgeService) *ReadingService {
	return &ReadingService{
		pillars:   pillars,
		knowledge: knowledge,
		now:       time.Now,
	}
}

// SetPromptStore sets the store the analysis template is loaded from.
// If not set, driven.DefaultAnalysisPrompt is used.
func (s *ReadingService) SetPromptStore(store driven.PromptStore) {
	s.prompts = store
}

// Analyse computes the pillars for birth and prepares a reading.
func (s *ReadingService) Analyse(ctx context.Context, birth domain.BirthRecord) (*domain.Reading, error) {
	logger.Section("Reading")
	logger.Debug("Birth record: %+v", birth)

	result, err := s.pillars.Compute(ctx, birth)
	if err != nil {
		logger.Warn("Pillar computation failed: %v", err)
		return nil, fmt.Errorf("compute pillars: %w", err)
	}
	logger.Info("Pillars: %s", result)

	knowledge, err := s.compose(ctx, *result)
	if err != nil {
		return nil, fmt.Errorf("compose knowledge: %w", err)
	}

	prompt, err := s.renderPrompt(NewPromptData(birth, *result, knowledge))
	if err != nil {
		return nil, fmt.Errorf("render prompt: %w", err)
	}

	return &domain.Reading{
		ID:        uuid.NewString(),
		Birth:     birth,
		Pillars:   *result,
		Knowledge: knowledge,
		Prompt:    prompt,
		CreatedAt: s.now(),
	}, nil
}

// compose returns the knowledge text, degrading to none when no index is loaded.
func (s *ReadingService) compose(ctx context.Context, p domain.PillarResult) (string, error) {
	if s.knowledge == nil {
		logger.Warn("Knowledge service not configured, reading carries no knowledge")
		return "", nil
	}

	knowledge, err := s.knowledge.Compose(ctx, p)
	if errors.Is(err, domain.ErrIndexUnavailable) {
		logger.Warn("Knowledge index not loaded, reading carries no knowledge")
		return "", nil
	}
	if err != nil {
		return "", err
	}
	if knowledge == "" {
		logger.Debug("No knowledge matched the pillars")
	}
	return knowledge, nil
}

func (s *ReadingService) renderPrompt(data PromptData) (string, error) {
	text := driven.DefaultAnalysisPrompt
	if s.prompts != nil {
		stored, err := s.prompts.Load(driven.PromptAnalysis)
		if err != nil {
			logger.Warn("Loading analysis prompt failed, using default: %v", err)
		} else {
			text = stored
		}
	}

	tmpl, err := template.New(driven.PromptAnalysis).Option("missingkey=error").Parse(text)
	if err != nil {
		return "", fmt.Errorf("parse %s template: %w", driven.PromptAnalysis, err)
	}

	var b strings.Builder
	if err := tmpl.Execute(&b, data); err != nil {
		return "", fmt.Errorf("execute %s template: %w", driven.PromptAnalysis, err)
	}
	return b.String(), nil
}
