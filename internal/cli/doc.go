// Package cli defines the Cobra command tree for the nexusagent CLI. Each file
// in this package registers one top-level command (nodes, credentials, flow,
// etc.) with the root command. Command implementations delegate to internal
// packages for discovery and lookups and only handle flag parsing, I/O
// formatting, and user interaction.
package cli
