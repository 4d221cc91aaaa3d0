// Package cli defines the Cobra command tree for the addonrepo CLI. Each file
// in this package registers one top-level command (update, watch, validate,
// etc.) with the root command. Command implementations delegate to internal
// packages for business logic and only handle flag parsing, config layering
// and console output.
package cli
