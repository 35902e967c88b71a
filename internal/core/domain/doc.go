// Package domain defines the core business entities for ganzhi.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - BirthRecord: The validated input for a pillar computation
//   - Pillar: A heavenly stem / earthly branch pair
//   - PillarResult: The four pillars plus date and time displays
//   - Document: A short reference text in the knowledge corpus
//   - ScoredResult: A document matched by the relevance ranker
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
