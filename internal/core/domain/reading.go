package domain

import "time"

// Reading bundles everything needed to request a narrative interpretation
// from an external model: the pillars, the matched knowledge and the
// rendered prompt. Nothing in ganzhi sends it anywhere.
type Reading struct {
	// ID uniquely identifies the reading.
	ID string `json:"id"`

	Birth   BirthRecord  `json:"birth"`
	Pillars PillarResult `json:"pillars"`

	// Knowledge is the composed reference text, empty when nothing matched.
	Knowledge string `json:"knowledge"`

	// Prompt is the analysis prompt rendered from the pillars and knowledge.
	Prompt string `json:"prompt"`

	CreatedAt time.Time `json:"created_at"`
}
