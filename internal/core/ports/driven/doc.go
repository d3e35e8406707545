// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them:
//
//   - TokenProvider: exchanges service principal credentials for a bearer token
//   - RefreshAPI: triggers refreshes and queries refresh history on the service
//
// Import rules: this package may import domain only, never an adapter
// or connector package.
package driven
