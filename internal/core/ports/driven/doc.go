// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - CalendarConverter: Lunar/solar conversion and year/month/day pillars
//   - Tokenizer: Word segmentation shared by indexing and querying
//   - CorpusStore: Source of the knowledge corpus
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - ConfigStore: Application configuration. Defaults apply without it.
//   - PromptStore: Analysis prompt templates. The embedded default applies without it.
//   - NormaliserRegistry: Import formats for corpus files. Only corpus import needs it.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
