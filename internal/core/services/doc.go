// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The sexagenary arithmetic (TrueSolarTime, HourBranch, HourStem), the
// DocumentIndex and ComposeKnowledge are pure functions of their inputs:
// they never log, block or touch shared mutable state. The service types
// wrap them with configuration, logging and the live index.
//
// Services are pure Go with no CGO or external dependencies.
package services
