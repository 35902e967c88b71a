// Package file provides file-based implementations of driven port interfaces.
// These adapters persist data under the ganzhi config directory (~/.ganzhi).
//
// Adapters:
//   - ConfigStore: TOML-based configuration storage
//   - PromptStore: user-editable analysis prompt templates
package file
