// Package services implements the driving port interfaces.
// The refresh orchestrator contains the trigger-then-poll control flow
// and calls out through the driven ports.
package services
